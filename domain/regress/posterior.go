package regress

import (
	"fmt"

	"gobayes/domain/core"
)

// KeyIntercept is the coefficient key used for the model intercept,
// KeySigma the key for the residual standard deviation draws.
const (
	KeyIntercept core.VariableKey = "intercept"
	KeySigma     core.VariableKey = "sigma"
)

// WarningCode represents structured sampler warnings
type WarningCode string

const (
	// WarningNonConvergence marks a sample whose scale-reduction diagnostic
	// stayed materially above 1.0. The draws are still returned so the caller
	// can decide whether to retry with more iterations.
	WarningNonConvergence WarningCode = "SAMPLER_NON_CONVERGENCE"
	// WarningLowESS marks a coefficient whose effective sample size fell
	// below 10% of the total draw count.
	WarningLowESS WarningCode = "LOW_EFFECTIVE_SAMPLE_SIZE"
)

// CoefficientDraws holds the post-warmup MCMC draws for one coefficient,
// kept per chain so between/within-chain diagnostics stay computable.
type CoefficientDraws struct {
	Key    core.VariableKey `json:"key"`
	Chains [][]float64      `json:"chains"`
}

// TotalDraws returns the pooled draw count across chains
func (d CoefficientDraws) TotalDraws() int {
	total := 0
	for _, c := range d.Chains {
		total += len(c)
	}
	return total
}

// Pooled concatenates all chains into a single draw sequence
func (d CoefficientDraws) Pooled() []float64 {
	out := make([]float64, 0, d.TotalDraws())
	for _, c := range d.Chains {
		out = append(out, c...)
	}
	return out
}

// PosteriorSample is the immutable output of the MCMC sampler.
// INVARIANTS:
// - Every coefficient has exactly ChainCount chains of DrawsPerChain draws
// - DrawsPerChain = iterations − warmup
type PosteriorSample struct {
	Coefficients  []CoefficientDraws `json:"coefficients"`
	Sigma         CoefficientDraws   `json:"sigma"`
	ChainCount    int                `json:"chain_count"`
	DrawsPerChain int                `json:"draws_per_chain"`
	Warmup        int                `json:"warmup"`
	Seed          int64              `json:"seed"`
	Prior         PriorSpec          `json:"prior"`
	Converged     bool               `json:"converged"`
	Warnings      []WarningCode      `json:"warnings,omitempty"`
	SampledAt     core.Timestamp     `json:"sampled_at"`
}

// NewPosteriorSample creates a posterior sample with shape validation
func NewPosteriorSample(coefs []CoefficientDraws, sigma CoefficientDraws, chains, drawsPerChain, warmup int, seed int64, prior PriorSpec) (*PosteriorSample, error) {
	if chains <= 0 || drawsPerChain <= 0 {
		return nil, fmt.Errorf("chains and draws per chain must be > 0, got %d and %d", chains, drawsPerChain)
	}
	if len(coefs) == 0 {
		return nil, fmt.Errorf("posterior sample must contain at least one coefficient")
	}
	all := append(append([]CoefficientDraws{}, coefs...), sigma)
	for _, d := range all {
		if len(d.Chains) != chains {
			return nil, fmt.Errorf("coefficient %s: expected %d chains, got %d", d.Key, chains, len(d.Chains))
		}
		for ci, c := range d.Chains {
			if len(c) != drawsPerChain {
				return nil, fmt.Errorf("coefficient %s chain %d: expected %d draws, got %d", d.Key, ci, drawsPerChain, len(c))
			}
		}
	}
	return &PosteriorSample{
		Coefficients:  coefs,
		Sigma:         sigma,
		ChainCount:    chains,
		DrawsPerChain: drawsPerChain,
		Warmup:        warmup,
		Seed:          seed,
		Prior:         prior,
		Converged:     true,
		SampledAt:     core.Now(),
	}, nil
}

// Draws looks up the draw set for a coefficient key
func (s *PosteriorSample) Draws(key core.VariableKey) (CoefficientDraws, bool) {
	if key == KeySigma {
		return s.Sigma, true
	}
	for _, d := range s.Coefficients {
		if d.Key == key {
			return d, true
		}
	}
	return CoefficientDraws{}, false
}

// AddWarning appends a warning code, deduplicated
func (s *PosteriorSample) AddWarning(code WarningCode) {
	for _, w := range s.Warnings {
		if w == code {
			return
		}
	}
	s.Warnings = append(s.Warnings, code)
}
