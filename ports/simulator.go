package ports

import (
	"context"

	"gobayes/domain/table"
)

// SimulatorPort produces the synthetic observation table.
// Re-running with the same (seed, n) must yield bit-identical output.
type SimulatorPort interface {
	Simulate(ctx context.Context, seed int64, n int) (*table.ObservationTable, error)
}
