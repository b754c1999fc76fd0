package app

import (
	"context"
	"time"

	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/domain/table"
	"gobayes/internal"
	"gobayes/internal/errors"
	"gobayes/internal/report"
	"gobayes/internal/summary"
	"gobayes/ports"

	"github.com/montanaflynn/stats"
)

const codeVersion = "v0.1.0"

// When no ROPE half width is configured, it defaults to this fraction of the
// outcome's sample standard deviation.
const defaultROPEFraction = 0.1

// AnalysisService orchestrates one full analysis run: simulate the dataset,
// fit OLS, draw from the posterior, summarize, and assemble the comparison
// report. Persistence is best-effort when a repository is wired.
type AnalysisService struct {
	simulator ports.SimulatorPort
	fitter    ports.FrequentistFitterPort
	sampler   ports.SamplerPort
	repo      ports.RunRepository
	logger    *internal.Logger
}

// AnalysisRequest defines the inputs for a deterministic analysis run
type AnalysisRequest struct {
	Seed           int64
	Rows           int
	Prior          regress.PriorSpec
	Chains         int
	Iterations     int
	CredibleMass   float64
	ROPEHalfWidth  float64 // 0 means derive from the outcome's spread
	SamplerTimeout time.Duration
	RunID          core.RunID // optional label, generated when empty; never affects the draws
}

// NewAnalysisService creates an analysis service. The repository may be nil,
// in which case runs are not persisted.
func NewAnalysisService(simulator ports.SimulatorPort, fitter ports.FrequentistFitterPort, sampler ports.SamplerPort, repo ports.RunRepository, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		simulator: simulator,
		fitter:    fitter,
		sampler:   sampler,
		repo:      repo,
		logger:    logger,
	}
}

// Run executes the full pipeline and returns the assembled report.
// The same request always produces the same estimates, draws and summaries.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*regress.Report, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	tbl, err := s.simulator.Simulate(ctx, req.Seed, req.Rows)
	if err != nil {
		return nil, errors.Wrap(err, "simulation failed")
	}
	s.logger.Debug("simulated %d observations (seed=%d)", tbl.Rows(), req.Seed)

	fit, err := s.fitter.Fit(ctx, tbl)
	if err != nil {
		return nil, errors.Wrap(err, "frequentist fit failed")
	}

	sample, err := s.sampleWithTimeout(ctx, tbl, req)
	if err != nil {
		return nil, err
	}
	if !sample.Converged {
		s.logger.Warn("run %s: chains did not converge", runID)
	}

	ropeHalfWidth := req.ROPEHalfWidth
	if ropeHalfWidth <= 0 {
		ropeHalfWidth, err = defaultROPEHalfWidth(tbl)
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive ROPE half width")
		}
	}

	summarizer, err := summary.NewSummarizer(req.CredibleMass, ropeHalfWidth)
	if err != nil {
		return nil, err
	}
	posterior, err := summarizer.Summarize(sample)
	if err != nil {
		return nil, errors.Wrap(err, "posterior summarization failed")
	}

	manifest := regress.NewRunManifest(runID, req.Seed, req.Rows, req.Chains, req.Iterations,
		req.Prior, req.CredibleMass, ropeHalfWidth, codeVersion)
	manifest.RuntimeMs = time.Since(startTime).Milliseconds()

	result := &regress.Report{
		Manifest:    manifest,
		Frequentist: fit,
		Posterior:   posterior,
		Comparison:  report.BuildComparison(fit, posterior),
	}

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, result); err != nil {
			// Persistence failure never invalidates a completed analysis.
			s.logger.Error("failed to persist run %s: %v", runID, err)
		}
	}

	s.logger.Info("run %s completed in %dms", runID, manifest.RuntimeMs)
	return result, nil
}

func (s *AnalysisService) sampleWithTimeout(ctx context.Context, tbl *table.ObservationTable, req AnalysisRequest) (*regress.PosteriorSample, error) {
	if req.SamplerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.SamplerTimeout)
		defer cancel()
	}
	return s.sampler.Sample(ctx, ports.SampleRequest{
		Table:      tbl,
		Prior:      req.Prior,
		Seed:       req.Seed,
		Chains:     req.Chains,
		Iterations: req.Iterations,
	})
}

func defaultROPEHalfWidth(tbl *table.ObservationTable) (float64, error) {
	sd, err := stats.StandardDeviationSample(tbl.Abundance)
	if err != nil {
		return 0, err
	}
	return defaultROPEFraction * sd, nil
}
