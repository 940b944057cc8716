package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorstep/internal/config"
	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
	"github.com/san-kum/taylorstep/internal/step"
	"github.com/san-kum/taylorstep/internal/systems"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// liveModel watches the step controller's own tail estimate step by
// step rather than replaying a finished trajectory, so what's on
// screen is the same δt decision the integrator loop makes internally.
type liveModel struct {
	name       string
	driver     *jet.Driver
	controller *step.Controller
	order      int
	x          []scalar.Scalar
	t, dt      float64
	tmax       float64
	absTol     float64
	fps        int
	dtHistory  []float64
	quitting   bool
	err        error
}

func newLiveModel(name string, sys systems.System, order int, x0 []scalar.Scalar, dt0, tmax, absTol float64, fps int) liveModel {
	return liveModel{
		name:       name,
		driver:     jet.NewDriver(order, sys.RHS),
		controller: step.NewController(),
		order:      order,
		x:          x0,
		dt:         dt0,
		tmax:       tmax,
		absTol:     absTol,
		fps:        fps,
	}
}

func (m liveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.quitting || m.t >= m.tmax || m.err != nil {
			return m, nil
		}
		if err := m.advance(); err != nil {
			m.err = err
			return m, nil
		}
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

func (m *liveModel) advance() error {
	jets, err := m.driver.Compute(m.t, m.x)
	if err != nil {
		return err
	}

	aNm1, aN := 0.0, 0.0
	for _, p := range jets {
		if a := p.Coeff(m.order - 1).Abs(); a > aNm1 {
			aNm1 = a
		}
		if a := p.Coeff(m.order).Abs(); a > aN {
			aN = a
		}
	}

	dt, tolErr := m.controller.Choose(aNm1, aN, m.order, m.absTol)
	if tolErr != nil && tolErr != step.ErrNoConstraint {
		return tolErr
	}
	dt = m.controller.Clamp(dt, m.t, m.tmax)
	if dt <= 0 {
		m.t = m.tmax
		return nil
	}

	delta := m.x[0].One().Scale(dt)
	m.x = poly.EvalVector(jets, delta)
	m.t += dt
	m.dt = dt
	m.dtHistory = append(m.dtHistory, dt)
	if len(m.dtHistory) > 40 {
		m.dtHistory = m.dtHistory[len(m.dtHistory)-40:]
	}
	return nil
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("taylorstep live: %s", m.name)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.6g / %.6g", m.t, m.tmax)) + "\n")
	b.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.6g", m.dt)) + "\n")
	b.WriteString(labelStyle.Render("order") + valueStyle.Render(fmt.Sprintf("%d", m.order)) + "\n")
	for i, v := range m.x {
		b.WriteString(labelStyle.Render(fmt.Sprintf("x%d", i)) + valueStyle.Render(v.String()) + "\n")
	}
	if m.err != nil {
		b.WriteString(fmt.Sprintf("\nerror: %v\n", m.err))
	} else if m.t >= m.tmax {
		b.WriteString("\ndone.\n")
	}
	b.WriteString(helpStyle.Render("q to quit"))
	return b.String()
}

func runLive(cmd *cobra.Command, args []string) error {
	name := args[0]
	sc, err := resolveScenario(cmd, name)
	if err != nil {
		return err
	}
	sys, err := systems.Get(name)
	if err != nil {
		return err
	}

	order := sc.Order
	if order == 0 {
		order = config.DefaultOrder
	}

	m := newLiveModel(name, sys, order, toScalarState(sc.GetInitState()), sc.Dt0, sc.Tmax, sc.AbsTol, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
