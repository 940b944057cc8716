package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/taylorstep/internal/taylorint"
)

// ExportData is the JSON shape a run exports to, independent of the
// directory layout Store.Save writes: every scalar is rendered through
// its String() method since the state values may be float64, complex128,
// or arbitrary precision.
type ExportData struct {
	System     string     `json:"system"`
	Order      int        `json:"order"`
	Dt0        float64    `json:"dt0"`
	Tmax       float64    `json:"tmax"`
	Steps      int        `json:"steps"`
	Times      []float64  `json:"times"`
	States     [][]string `json:"states"`
	StepsTaken int        `json:"steps_taken"`
	Warnings   int        `json:"warnings"`
}

func toExportData(system string, order int, dt0, tmax float64, traj *taylorint.Trajectory) ExportData {
	states := make([][]string, len(traj.States))
	for i, x := range traj.States {
		row := make([]string, len(x))
		for j, v := range x {
			row[j] = v.String()
		}
		states[i] = row
	}

	return ExportData{
		System:     system,
		Order:      order,
		Dt0:        dt0,
		Tmax:       tmax,
		Steps:      len(traj.Times),
		Times:      traj.Times,
		States:     states,
		StepsTaken: traj.StepsTaken,
		Warnings:   len(traj.Warnings),
	}
}

func ExportJSON(path, system string, order int, dt0, tmax float64, traj *taylorint.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeExport(file, system, order, dt0, tmax, traj)
}

func ExportJSONStdout(system string, order int, dt0, tmax float64, traj *taylorint.Trajectory) error {
	return encodeExport(os.Stdout, system, order, dt0, tmax, traj)
}

func encodeExport(w io.Writer, system string, order int, dt0, tmax float64, traj *taylorint.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toExportData(system, order, dt0, tmax, traj))
}
