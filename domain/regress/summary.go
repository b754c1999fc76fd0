package regress

import (
	"fmt"

	"gobayes/domain/core"
)

// CoefficientSummary contains the derived posterior statistics for one
// coefficient. Recomputed from the posterior sample, never mutated.
// INVARIANTS:
// - CILow <= Median <= CIHigh
// - PD in [0.5, 1.0]
// - ROPEOverlap in [0.0, 1.0]
type CoefficientSummary struct {
	Key          core.VariableKey `json:"key"`
	Median       float64          `json:"median"`
	CILow        float64          `json:"ci_low"`
	CIHigh       float64          `json:"ci_high"`
	CredibleMass float64          `json:"credible_mass"`
	PD           float64          `json:"pd"`
	ROPELow      float64          `json:"rope_low"`
	ROPEHigh     float64          `json:"rope_high"`
	ROPEOverlap  float64          `json:"rope_overlap"`
	RHat         float64          `json:"r_hat"`
	ESS          float64          `json:"ess"`
}

// Validate checks the summary invariants
func (c CoefficientSummary) Validate() error {
	if c.CILow > c.Median || c.Median > c.CIHigh {
		return fmt.Errorf("coefficient %s: credible interval [%f, %f] must contain median %f", c.Key, c.CILow, c.CIHigh, c.Median)
	}
	if c.PD < 0.5 || c.PD > 1.0 {
		return fmt.Errorf("coefficient %s: probability of direction must be in [0.5, 1.0], got %f", c.Key, c.PD)
	}
	if c.ROPEOverlap < 0 || c.ROPEOverlap > 1 {
		return fmt.Errorf("coefficient %s: ROPE overlap must be in [0, 1], got %f", c.Key, c.ROPEOverlap)
	}
	return nil
}

// PosteriorSummary aggregates per-coefficient summaries for one run
type PosteriorSummary struct {
	Coefficients  []CoefficientSummary `json:"coefficients"`
	CredibleMass  float64              `json:"credible_mass"`
	ROPEHalfWidth float64              `json:"rope_half_width"`
	Converged     bool                 `json:"converged"`
	Warnings      []WarningCode        `json:"warnings,omitempty"`
	ComputedAt    core.Timestamp       `json:"computed_at"`
}

// Coefficient looks up a summary by variable key
func (s *PosteriorSummary) Coefficient(key core.VariableKey) (CoefficientSummary, bool) {
	for _, c := range s.Coefficients {
		if c.Key == key {
			return c, true
		}
	}
	return CoefficientSummary{}, false
}

// ComparisonRow pairs a frequentist p-value with the Bayesian pseudo-p-value
// derived as 1 − probability of direction. Pure presentation.
type ComparisonRow struct {
	Key     core.VariableKey `json:"key"`
	PValue  float64          `json:"p_value"`
	PseudoP float64          `json:"pseudo_p"`
}
