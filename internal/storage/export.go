package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/mergersrc/internal/sim"
)

type ExportData struct {
	Meta          RunMetadata `json:"meta"`
	Times         []float64   `json:"times"`
	KineticEnergy []float64   `json:"kinetic_energy"`
	EnergySource  []float64   `json:"energy_source"`
}

// ExportJSON writes a run summary and its series as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	meta.Metrics = result.Metrics
	data := ExportData{
		Meta:          meta,
		Times:         result.Times,
		KineticEnergy: result.KineticEnergy,
		EnergySource:  result.EnergySource,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
