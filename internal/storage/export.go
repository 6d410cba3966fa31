package storage

import (
	"encoding/json"
	"io"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

type ExportData struct {
	Model      string             `json:"model"`
	Method     string             `json:"method"`
	Step       float64            `json:"step"`
	Start      float64            `json:"start"`
	Final      float64            `json:"final"`
	Samples    int                `json:"samples"`
	Times      []float64          `json:"times"`
	States     []ode.State        `json:"states"`
	FinalState []float64          `json:"final_state"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta RunMetadata, times []float64, states []ode.State) error {
	data := ExportData{
		Model:      meta.Model,
		Method:     meta.Method,
		Step:       meta.Step,
		Start:      meta.Start,
		Final:      meta.Final,
		Samples:    len(times),
		Times:      times,
		States:     states,
		FinalState: meta.FinalState,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
