package regress

import (
	"fmt"

	"gobayes/domain/core"
)

// CoefficientEstimate contains the frequentist point estimate for one
// coefficient together with its sampling uncertainty.
// INVARIANTS:
// - PValue always present (0.0 to 1.0)
// - StdErr >= 0
type CoefficientEstimate struct {
	Key      core.VariableKey `json:"key"`
	Estimate float64          `json:"estimate"`
	StdErr   float64          `json:"std_err"`
	TStat    float64          `json:"t_stat"`
	PValue   float64          `json:"p_value"`
}

// FrequentistFit is the immutable result of an ordinary least squares fit
type FrequentistFit struct {
	Coefficients []CoefficientEstimate `json:"coefficients"`
	AdjustedR2   float64               `json:"adjusted_r2"`
	ResidualSD   float64               `json:"residual_sd"`
	SampleSize   int                   `json:"sample_size"`
	DF           int                   `json:"df"`
	FittedAt     core.Timestamp        `json:"fitted_at"`
}

// NewFrequentistFit creates a fit result with validation
func NewFrequentistFit(coefs []CoefficientEstimate, adjR2, residSD float64, n, df int) (*FrequentistFit, error) {
	if len(coefs) == 0 {
		return nil, fmt.Errorf("fit must contain at least one coefficient")
	}
	for _, c := range coefs {
		if c.PValue < 0 || c.PValue > 1 {
			return nil, fmt.Errorf("coefficient %s: p-value must be in [0,1], got %f", c.Key, c.PValue)
		}
		if c.StdErr < 0 {
			return nil, fmt.Errorf("coefficient %s: standard error must be >= 0, got %f", c.Key, c.StdErr)
		}
	}
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be > 0, got %d", n)
	}
	return &FrequentistFit{
		Coefficients: coefs,
		AdjustedR2:   adjR2,
		ResidualSD:   residSD,
		SampleSize:   n,
		DF:           df,
		FittedAt:     core.Now(),
	}, nil
}

// Coefficient looks up an estimate by variable key
func (f *FrequentistFit) Coefficient(key core.VariableKey) (CoefficientEstimate, bool) {
	for _, c := range f.Coefficients {
		if c.Key == key {
			return c, true
		}
	}
	return CoefficientEstimate{}, false
}
