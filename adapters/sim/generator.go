package sim

import (
	"context"
	"math/rand"

	"gobayes/domain/table"
	"gobayes/internal/errors"
	"gobayes/ports"
)

// Numeric ranges for the simulated ethnobotany dataset. These match the
// reference analysis: abundance in [10.5, 60.5], proportion of the plant
// used in [0.1, 100], distance from the village in [0.01, 5.5] km.
const (
	abundanceMin  = 10.5
	abundanceMax  = 60.5
	proportionMin = 0.1
	proportionMax = 100.0
	distanceMin   = 0.01
	distanceMax   = 5.5
)

// Generator implements ports.SimulatorPort with uniform sampling.
// All columns draw exactly n values; the reference behavior of drawing 500
// distance values and truncating to n was a latent inconsistency and is not
// reproduced.
type Generator struct {
	rng ports.RNGPort
}

// NewGenerator creates a data simulator backed by a deterministic RNG port
func NewGenerator(rngPort ports.RNGPort) *Generator {
	return &Generator{rng: rngPort}
}

// Simulate produces the observation table for a given seed and row count.
// Re-running with the same (seed, n) yields bit-identical output.
func (g *Generator) Simulate(ctx context.Context, seed int64, n int) (*table.ObservationTable, error) {
	if n <= 0 {
		return nil, errors.SimulationInvalid("row count must be > 0")
	}

	stream, err := g.rng.SeededStream(ctx, "simulate", seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create simulation RNG stream")
	}

	abundance := uniformDraws(stream, n, abundanceMin, abundanceMax)
	proportion := uniformDraws(stream, n, proportionMin, proportionMax)
	distance := uniformDraws(stream, n, distanceMin, distanceMax)

	useMedicine := make([]int, n)
	for i := range useMedicine {
		useMedicine[i] = stream.Intn(2)
	}

	return table.NewObservationTable(abundance, proportion, distance, useMedicine)
}

// uniformDraws samples n values uniformly (with replacement) from [min, max]
func uniformDraws(stream *rand.Rand, n int, min, max float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = min + stream.Float64()*(max-min)
	}
	return out
}
