package export

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
)

// Document is the JSON form of a single run.
type Document struct {
	RunID          string                   `json:"run_id"`
	Params         experiment.Params        `json:"params"`
	Solver         experiment.SolverOptions `json:"solver"`
	Regime         dynamo.Regime            `json:"regime"`
	ExtinctionTime *float64                 `json:"extinction_time,omitempty"`
	Stats          dynamo.Stats             `json:"stats"`
	Metrics        map[string]float64       `json:"metrics"`
	Times          []float64                `json:"times"`
	Prey           []float64                `json:"prey"`
	Predators      []float64                `json:"predators"`
}

func NewDocument(p experiment.Params, opts experiment.SolverOptions, tr *dynamo.Trajectory) Document {
	doc := Document{
		RunID:     uuid.NewString(),
		Params:    p,
		Solver:    opts,
		Regime:    tr.Regime,
		Stats:     tr.Stats,
		Metrics:   tr.Metrics,
		Times:     tr.Times,
		Prey:      tr.Prey,
		Predators: tr.Predators,
	}
	if t, ok := tr.ExtinctionTime(); ok {
		doc.ExtinctionTime = &t
	}
	return doc
}

func WriteJSON(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
