// Package storage persists simulation runs as per-run directories holding
// metadata and the sampled trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/thermosim/internal/thermo"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     thermo.Params      `json:"params"`
	Start      float64            `json:"start"`
	End        float64            `json:"end"`
	Samples    int                `json:"samples"`
	Tolerance  float64            `json:"tolerance"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(scenario, integrator string, params thermo.Params, cfg thermo.Config, result *thermo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Integrator: integrator,
		Timestamp:  time.Now(),
		Params:     params,
		Start:      cfg.Start,
		End:        cfg.End,
		Samples:    cfg.Samples,
		Tolerance:  cfg.Tolerance,
		Steps:      result.Steps,
		Metrics:    result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "temp", "power"}); err != nil {
		return "", err
	}

	tr := result.Trajectory
	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Temps[i], 'f', 6, 64),
			strconv.FormatFloat(result.Powers[i], 'f', 6, 64),
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

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back the sampled run: times, temperatures, and the
// power draw at each sample.
func (s *Store) LoadTrajectory(runID string) (thermo.Trajectory, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return thermo.Trajectory{}, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return thermo.Trajectory{}, nil, err
	}

	if len(records) < 2 {
		return thermo.Trajectory{}, []float64{}, nil
	}

	tr := thermo.Trajectory{
		Times: make([]float64, 0, len(records)-1),
		Temps: make([]float64, 0, len(records)-1),
	}
	powers := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		T, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		P, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		tr.Times = append(tr.Times, t)
		tr.Temps = append(tr.Temps, T)
		powers = append(powers, P)
	}

	return tr, powers, nil
}
