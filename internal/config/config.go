package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt0     = 0.01
	DefaultTmax    = 10.0
	DefaultAbsTol  = 1e-10
	DefaultRelTol  = 1e-10
	DefaultOrder   = 16
	DefaultMaxStep = 1_000_000
)

// Scenario describes one integration run: which right-hand side to use,
// its initial state, and the tolerance/step parameters the controller
// and integrator loop need.
type Scenario struct {
	System      string            `yaml:"system"`
	ScalarFam   string            `yaml:"scalar"` // "float64", "complex128", "bigfloat"
	Order       int               `yaml:"order"`  // 0 lets the integrator pick a dynamic order (relative-tolerance runs)
	Dt0         float64           `yaml:"dt0"`
	Tmax        float64           `yaml:"tmax"`
	AbsTol      float64           `yaml:"abs_tol"`
	RelTol      float64           `yaml:"rel_tol"` // 0 disables relative tolerance
	MaxSteps    int               `yaml:"max_steps"`
	Grid        []float64         `yaml:"grid,omitempty"` // non-empty switches to grid-landing mode
	InitState   InitStateConfig   `yaml:"init_state"`
	Variational VariationalConfig `yaml:"variational"`
}

// InitStateConfig holds the named initial-condition fields every built-in
// system reads from; a given system only uses the subset it needs.
type InitStateConfig struct {
	X0     float64 `yaml:"x0"`
	V0     float64 `yaml:"v0"`
	Theta0 float64 `yaml:"theta0"`
	Omega0 float64 `yaml:"omega0"`
	PosX   float64 `yaml:"pos_x"`
	PosY   float64 `yaml:"pos_y"`
	VelX   float64 `yaml:"vel_x"`
	VelY   float64 `yaml:"vel_y"`
}

// VariationalConfig parameterizes an optional Lyapunov-spectrum run
// alongside the physical trajectory.
type VariationalConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ReorthInterval float64 `yaml:"reorth_interval"`
	UseMGS         bool    `yaml:"use_mgs"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		System:    "quadratic",
		ScalarFam: "float64",
		Order:     DefaultOrder,
		Dt0:       DefaultDt0,
		Tmax:      DefaultTmax,
		AbsTol:    DefaultAbsTol,
		RelTol:    DefaultRelTol,
		MaxSteps:  DefaultMaxStep,
		InitState: InitStateConfig{X0: 1.0},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// GetInitState projects the named fields into the ordered state vector
// each built-in system's right-hand side expects.
func (s *Scenario) GetInitState() []float64 {
	switch s.System {
	case "pendulum":
		return []float64{s.InitState.Theta0, s.InitState.Omega0}
	case "complex_oscillator":
		return []float64{s.InitState.X0, s.InitState.V0}
	case "kepler":
		return []float64{s.InitState.PosX, s.InitState.PosY, s.InitState.VelX, s.InitState.VelY}
	case "constant_drift":
		return []float64{s.InitState.X0}
	default: // "quadratic" and any other scalar system
		return []float64{s.InitState.X0}
	}
}
