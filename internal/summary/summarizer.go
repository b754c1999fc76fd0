package summary

import (
	"fmt"

	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/internal/errors"

	"github.com/montanaflynn/stats"
)

// Coefficients whose effective sample size falls below this fraction of the
// pooled draw count get a LOW_EFFECTIVE_SAMPLE_SIZE warning.
const lowESSFraction = 0.1

// Summarizer derives posterior statistics from a raw MCMC sample: median,
// highest-density interval, probability of direction, ROPE overlap and the
// convergence diagnostics. It owns no randomness; the same sample always
// summarizes to the same numbers.
type Summarizer struct {
	CredibleMass  float64
	ROPEHalfWidth float64
}

// NewSummarizer creates a summarizer with validated settings
func NewSummarizer(credibleMass, ropeHalfWidth float64) (*Summarizer, error) {
	if credibleMass <= 0 || credibleMass >= 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("credible mass must be in (0, 1), got %f", credibleMass))
	}
	if ropeHalfWidth < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("ROPE half width must be >= 0, got %f", ropeHalfWidth))
	}
	return &Summarizer{CredibleMass: credibleMass, ROPEHalfWidth: ropeHalfWidth}, nil
}

// Summarize computes per-coefficient summaries for every regression
// coefficient in the sample. Convergence diagnostics need at least two
// chains, so single-chain samples are rejected rather than silently
// reported without an R-hat.
func (s *Summarizer) Summarize(sample *regress.PosteriorSample) (*regress.PosteriorSummary, error) {
	if sample == nil {
		return nil, errors.InvalidInput("cannot summarize a nil posterior sample")
	}
	if sample.ChainCount < 2 {
		return nil, errors.InsufficientChains(fmt.Sprintf("posterior summarization needs >= 2 chains, got %d", sample.ChainCount))
	}

	out := &regress.PosteriorSummary{
		Coefficients:  make([]regress.CoefficientSummary, 0, len(sample.Coefficients)),
		CredibleMass:  s.CredibleMass,
		ROPEHalfWidth: s.ROPEHalfWidth,
		Converged:     sample.Converged,
		Warnings:      append([]regress.WarningCode{}, sample.Warnings...),
		ComputedAt:    core.Now(),
	}

	for _, d := range sample.Coefficients {
		cs, err := s.summarizeCoefficient(d)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize coefficient %s", d.Key)
		}
		if cs.ESS < lowESSFraction*float64(d.TotalDraws()) {
			addWarning(out, regress.WarningLowESS)
		}
		out.Coefficients = append(out.Coefficients, cs)
	}

	return out, nil
}

func (s *Summarizer) summarizeCoefficient(d regress.CoefficientDraws) (regress.CoefficientSummary, error) {
	pooled := d.Pooled()

	median, err := stats.Median(pooled)
	if err != nil {
		return regress.CoefficientSummary{}, err
	}

	ciLow, ciHigh, err := HDI(pooled, s.CredibleMass)
	if err != nil {
		return regress.CoefficientSummary{}, err
	}

	rhat, err := SplitRHat(d.Chains)
	if err != nil {
		return regress.CoefficientSummary{}, err
	}

	cs := regress.CoefficientSummary{
		Key:          d.Key,
		Median:       median,
		CILow:        ciLow,
		CIHigh:       ciHigh,
		CredibleMass: s.CredibleMass,
		PD:           ProbabilityOfDirection(pooled, median),
		ROPELow:      -s.ROPEHalfWidth,
		ROPEHigh:     s.ROPEHalfWidth,
		ROPEOverlap:  ROPEOverlap(pooled, -s.ROPEHalfWidth, s.ROPEHalfWidth),
		RHat:         rhat,
		ESS:          ESS(d.Chains),
	}
	if err := cs.Validate(); err != nil {
		return regress.CoefficientSummary{}, err
	}
	return cs, nil
}

func addWarning(summary *regress.PosteriorSummary, code regress.WarningCode) {
	for _, w := range summary.Warnings {
		if w == code {
			return
		}
	}
	summary.Warnings = append(summary.Warnings, code)
}
