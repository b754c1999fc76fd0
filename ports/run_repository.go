package ports

import (
	"context"

	"gobayes/domain/core"
	"gobayes/domain/regress"
)

// RunRepository persists completed analysis reports keyed by run ID
type RunRepository interface {
	SaveRun(ctx context.Context, report *regress.Report) error
	GetRun(ctx context.Context, runID core.RunID) (*regress.Report, error)
	ListRuns(ctx context.Context, limit int) ([]regress.RunManifest, error)
}
