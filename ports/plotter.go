package ports

import (
	"gobayes/domain/core"
)

// PlotterPort renders a density plot for one coefficient's posterior draws
// with a marked central-tendency value. Plotting is an external collaborator
// of the statistical core; any renderer satisfying this contract can be
// substituted.
type PlotterPort interface {
	RenderDensity(key core.VariableKey, draws []float64, marker float64) (string, error)
}
