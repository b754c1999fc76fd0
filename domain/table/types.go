package table

import (
	"fmt"

	"gobayes/domain/core"
)

// Column keys for the simulated ethnobotany observation table.
const (
	ColAbundance      core.VariableKey = "abundance"
	ColProportionUsed core.VariableKey = "proportion_used"
	ColDistance       core.VariableKey = "distance"
	ColUseMedicine    core.VariableKey = "use_medicine"
)

// ObservationTable holds one simulated dataset: a continuous outcome
// (abundance) and three regressors, one of which is a two-level factor.
// The table is immutable once constructed.
// INVARIANTS:
// - All columns have identical length (> 0)
// - UseMedicine values are only 0 or 1
type ObservationTable struct {
	Abundance      []float64 `json:"abundance"`
	ProportionUsed []float64 `json:"proportion_used"`
	Distance       []float64 `json:"distance"`
	UseMedicine    []int     `json:"use_medicine"`
}

// NewObservationTable creates an observation table with validation
func NewObservationTable(abundance, proportionUsed, distance []float64, useMedicine []int) (*ObservationTable, error) {
	n := len(abundance)
	if n == 0 {
		return nil, fmt.Errorf("observation table must have at least one row")
	}
	if len(proportionUsed) != n || len(distance) != n || len(useMedicine) != n {
		return nil, fmt.Errorf("column lengths differ: abundance=%d proportion_used=%d distance=%d use_medicine=%d",
			n, len(proportionUsed), len(distance), len(useMedicine))
	}
	for i, v := range useMedicine {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("use_medicine must be 0 or 1, row %d has %d", i, v)
		}
	}
	return &ObservationTable{
		Abundance:      abundance,
		ProportionUsed: proportionUsed,
		Distance:       distance,
		UseMedicine:    useMedicine,
	}, nil
}

// Rows returns the number of observations
func (t *ObservationTable) Rows() int {
	return len(t.Abundance)
}

// RegressorKeys returns the regressor columns in model order.
// The use_medicine factor enters the model as a 0/1 indicator with
// level 0 as the reference.
func (t *ObservationTable) RegressorKeys() []core.VariableKey {
	return []core.VariableKey{ColProportionUsed, ColDistance, ColUseMedicine}
}

// Design returns the outcome vector and the design matrix rows
// (intercept column first, then regressors in RegressorKeys order).
func (t *ObservationTable) Design() (y []float64, x [][]float64) {
	n := t.Rows()
	y = make([]float64, n)
	x = make([][]float64, n)
	for i := 0; i < n; i++ {
		y[i] = t.Abundance[i]
		x[i] = []float64{1.0, t.ProportionUsed[i], t.Distance[i], float64(t.UseMedicine[i])}
	}
	return y, x
}
