package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/thermosim/internal/thermo"
)

type ExportData struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Params     thermo.Params      `json:"params"`
	Samples    int                `json:"samples"`
	Times      []float64          `json:"times"`
	Temps      []float64          `json:"temps"`
	Powers     []float64          `json:"powers"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr thermo.Trajectory, powers []float64) error {
	data := ExportData{
		ID:         meta.ID,
		Scenario:   meta.Scenario,
		Integrator: meta.Integrator,
		Params:     meta.Params,
		Samples:    tr.Len(),
		Times:      tr.Times,
		Temps:      tr.Temps,
		Powers:     powers,
		Metrics:    meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, tr thermo.Trajectory, powers []float64) error {
	return ExportJSON(os.Stdout, meta, tr, powers)
}
