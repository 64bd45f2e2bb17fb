package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/predprey/internal/dynamo"
)

var csvHeader = []string{"time", "prey", "predators"}

// WriteCSV writes one row per sample under a time,prey,predators header.
func WriteCSV(w io.Writer, tr *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Prey[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Predators[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV loads series written by WriteCSV. The result carries no regime or
// solver information. Files with fewer than two samples, a first time other
// than 0, non-increasing times or non-finite values are rejected with
// dynamo.ErrInvalidParameter.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: missing header")
	}
	for i, name := range csvHeader {
		if records[0][i] != name {
			return nil, fmt.Errorf("csv: column %d is %q, want %q", i, records[0][i], name)
		}
	}

	n := len(records) - 1
	if n < 2 {
		return nil, fmt.Errorf("%w: csv: need at least 2 samples, got %d", dynamo.ErrInvalidParameter, n)
	}
	tr := &dynamo.Trajectory{
		Times:           make([]float64, n),
		Prey:            make([]float64, n),
		Predators:       make([]float64, n),
		ExtinctionIndex: -1,
		Metrics:         map[string]float64{},
	}
	for i, record := range records[1:] {
		cols := []*float64{&tr.Times[i], &tr.Prey[i], &tr.Predators[i]}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: row %d: %w", i+2, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: csv: row %d: %s is not finite", dynamo.ErrInvalidParameter, i+2, csvHeader[j])
			}
			*cols[j] = v
		}
	}
	if tr.Times[0] != 0 {
		return nil, fmt.Errorf("%w: csv: first sample at t=%g, want 0", dynamo.ErrInvalidParameter, tr.Times[0])
	}
	if !dynamo.StrictlyIncreasing(tr.Times) {
		return nil, fmt.Errorf("%w: csv: times are not strictly increasing", dynamo.ErrInvalidParameter)
	}
	return tr, nil
}
