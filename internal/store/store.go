// Package store persists simulation runs: JSON metadata plus CSV traces of
// the probed polarization, one directory per run.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata captures what produced a trace.
type RunMetadata struct {
	ID        string    `json:"id"`
	Preset    string    `json:"preset,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	Component string    `json:"component"`
	TermTypes []string  `json:"term_types"`
	TermIDs   []int     `json:"term_ids"`
}

// Trace is one named time series sampled once per step.
type Trace struct {
	Name   string
	Values []float64
}

// Save writes metadata and traces for one run, returning the run ID.
func (s *Store) Save(meta RunMetadata, times []float64, traces []Trace) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	meta.ID = runID
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for _, tr := range traces {
		header = append(header, tr.Name)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
		for _, tr := range traces {
			val := 0.0
			if i < len(tr.Values) {
				val = tr.Values[i]
			}
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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

// LoadTrace reads back a run's time axis and traces.
func (s *Store) LoadTrace(runID string) ([]float64, []Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("store: empty trace for %s", runID)
	}

	header := rows[0]
	traces := make([]Trace, len(header)-1)
	for i := range traces {
		traces[i].Name = header[i+1]
	}
	times := make([]float64, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if len(row) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		for i := range traces {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, nil, err
			}
			traces[i].Values = append(traces[i].Values, v)
		}
	}
	return times, traces, nil
}
