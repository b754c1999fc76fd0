package mcmc

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"

	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/internal/errors"
	"gobayes/internal/summary"
	"gobayes/ports"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// A split R-hat materially above 1.0 signals that the chains have not mixed.
const rhatThreshold = 1.1

var errNotPositiveDefinite = errors.InternalError("coefficient precision matrix is not positive definite")

// Adapter implements ports.SamplerPort. Chains run concurrently under the
// caller's context; the caller sees a single blocking call that either
// returns the posterior sample or a SAMPLER_TIMEOUT error.
type Adapter struct {
	rng ports.RNGPort
}

// NewAdapter creates an MCMC sampler adapter backed by a deterministic RNG port
func NewAdapter(rngPort ports.RNGPort) *Adapter {
	return &Adapter{rng: rngPort}
}

// Sample draws from the posterior of the Gaussian-likelihood linear model.
// Gaussian priors use conjugate Gibbs; student_t and cauchy priors fall back
// to Metropolis within Gibbs. The first half of each chain is discarded as
// warmup. A non-convergent run still returns its draws with Converged=false.
func (a *Adapter) Sample(ctx context.Context, req ports.SampleRequest) (*regress.PosteriorSample, error) {
	if err := req.Prior.Validate(); err != nil {
		return nil, err
	}
	if req.Table == nil || req.Table.Rows() == 0 {
		return nil, errors.InvalidInput("sampler requires a non-empty observation table")
	}
	if req.Chains < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("chain count must be >= 1, got %d", req.Chains))
	}
	warmup := req.Iterations / 2
	draws := req.Iterations - warmup
	if draws < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("iteration count %d leaves fewer than 2 post-warmup draws", req.Iterations))
	}

	y, rows := req.Table.Design()
	n := len(rows)
	p := len(rows[0])
	x := mat.NewDense(n, p, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}

	results := make([]*chainResult, req.Chains)
	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < req.Chains; c++ {
		g.Go(func() error {
			stream, err := a.rng.ChainStream(gctx, c, req.Seed)
			if err != nil {
				return errors.Wrap(err, "failed to create chain RNG stream")
			}
			res, err := a.runChain(gctx, stream, y, x, req.Prior, req.Iterations, warmup)
			if err != nil {
				return err
			}
			results[c] = res
			return nil
		})
	}
	// Only an expired deadline is a sampler timeout; a caller's explicit
	// cancellation propagates as-is.
	if err := g.Wait(); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.SamplerTimeout(err)
		}
		return nil, err
	}

	keys := append([]core.VariableKey{regress.KeyIntercept}, req.Table.RegressorKeys()...)
	coefs := make([]regress.CoefficientDraws, p)
	for j := 0; j < p; j++ {
		chains := make([][]float64, req.Chains)
		for c := 0; c < req.Chains; c++ {
			chains[c] = results[c].coef[j]
		}
		coefs[j] = regress.CoefficientDraws{Key: keys[j], Chains: chains}
	}
	sigmaChains := make([][]float64, req.Chains)
	for c := 0; c < req.Chains; c++ {
		sigmaChains[c] = results[c].sigma
	}
	sigma := regress.CoefficientDraws{Key: regress.KeySigma, Chains: sigmaChains}

	sample, err := regress.NewPosteriorSample(coefs, sigma, req.Chains, draws, warmup, req.Seed, req.Prior)
	if err != nil {
		return nil, err
	}

	// Convergence needs at least two chains to compare; a single-chain run
	// is reported as-is and the diagnostic surfaces later in summarization.
	if req.Chains >= 2 {
		for _, d := range sample.Coefficients {
			rhat, err := summary.SplitRHat(d.Chains)
			if err != nil {
				return nil, err
			}
			if rhat > rhatThreshold {
				sample.Converged = false
				sample.AddWarning(regress.WarningNonConvergence)
				break
			}
		}
	}

	return sample, nil
}

// runChain dispatches on prior family
func (a *Adapter) runChain(ctx context.Context, stream *rand.Rand, y []float64, x *mat.Dense, prior regress.PriorSpec, iterations, warmup int) (*chainResult, error) {
	if prior.Family == regress.PriorGaussian {
		return runGibbsChain(ctx, stream, y, x, prior, iterations, warmup)
	}
	return runMetropolisChain(ctx, stream, y, x, prior, iterations, warmup)
}
