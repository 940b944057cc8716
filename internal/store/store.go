package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/taylorstep/internal/taylorint"
)

// Store persists a completed integration run as a metadata.json plus a
// states.csv under its own directory, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// RunMetadata is the JSON-serialized header of a persisted run; the
// state trace itself lives alongside it in states.csv.
type RunMetadata struct {
	ID         string    `json:"id"`
	System     string    `json:"system"`
	Timestamp  time.Time `json:"timestamp"`
	Order      int       `json:"order"`
	Dt0        float64   `json:"dt0"`
	Tmax       float64   `json:"tmax"`
	AbsTol     float64   `json:"abs_tol"`
	RelTol     float64   `json:"rel_tol"`
	StepsTaken int       `json:"steps_taken"`
	Warnings   int       `json:"warnings"`
}

// Save writes traj's metadata and state trace under a fresh run
// directory and returns its ID.
func (s *Store) Save(system string, order int, dt0, tmax, absTol, relTol float64, traj *taylorint.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		System:     system,
		Timestamp:  time.Now(),
		Order:      order,
		Dt0:        dt0,
		Tmax:       tmax,
		AbsTol:     absTol,
		RelTol:     relTol,
		StepsTaken: traj.StepsTaken,
		Warnings:   len(traj.Warnings),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(traj.States) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range traj.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, state := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 9, 64)}
		for _, v := range state {
			row = append(row, v.String())
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads back a persisted run's state trace as raw strings,
// since a column may hold a float64, complex128, or arbitrary-precision
// rendering depending on which scalar family produced it.
func (s *Store) LoadStates(runID string) (times []float64, states [][]string, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]string{}, nil
	}

	times = make([]float64, 0, len(records)-1)
	states = make([][]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		states = append(states, append([]string(nil), record[1:]...))
	}

	return times, states, nil
}
