package ports

import (
	"context"

	"gobayes/domain/regress"
	"gobayes/domain/table"
)

// FrequentistFitterPort fits an ordinary least squares model of the outcome
// against all regressors. Pure function of its input table; deterministic.
type FrequentistFitterPort interface {
	Fit(ctx context.Context, tbl *table.ObservationTable) (*regress.FrequentistFit, error)
}
