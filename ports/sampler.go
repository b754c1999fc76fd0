package ports

import (
	"context"

	"gobayes/domain/regress"
	"gobayes/domain/table"
)

// SampleRequest defines the inputs for a deterministic MCMC run
type SampleRequest struct {
	Table      *table.ObservationTable
	Prior      regress.PriorSpec
	Seed       int64
	Chains     int
	Iterations int // total per chain; the first half is discarded as warmup
}

// SamplerPort is the module boundary around the MCMC engine: it accepts
// (data, prior config, seed, chain/iteration counts) and returns posterior
// draws. The call blocks until all chains finish or ctx expires; internal
// parallelization across chains is an implementation detail.
//
// A non-convergent run still returns its (unreliable) sample with
// Converged=false and a warning rather than discarding the draws.
type SamplerPort interface {
	Sample(ctx context.Context, req SampleRequest) (*regress.PosteriorSample, error)
}
