package mcmc

import (
	"context"
	"math"
	"math/rand"

	"gobayes/domain/regress"

	"gonum.org/v1/gonum/mat"
)

// runMetropolisChain samples the posterior under non-conjugate coefficient
// priors (student_t, cauchy) with random-walk Metropolis within Gibbs: each
// coefficient is updated in turn against the Gaussian likelihood plus its
// prior log-density, then sigma^2 gets the usual inverse-gamma update.
// Proposal scales adapt toward ~44% acceptance during warmup and are frozen
// afterwards so the post-warmup chain is a valid Markov chain.
func runMetropolisChain(ctx context.Context, rng *rand.Rand, y []float64, x *mat.Dense, prior regress.PriorSpec, iterations, warmup int) (*chainResult, error) {
	n, p := x.Dims()

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	beta := make([]float64, p)
	sigma2 := sampleVariance(y)
	if sigma2 <= 0 {
		sigma2 = 1
	}

	// Initial proposal scale per coordinate from the conditional posterior
	// sd under the likelihood alone.
	steps := make([]float64, p)
	for j := 0; j < p; j++ {
		d := xtx.At(j, j)
		if d <= 0 {
			d = 1
		}
		steps[j] = 2.4 * math.Sqrt(sigma2/d)
	}
	accepts := make([]int, p)
	attempts := make([]int, p)

	rss := residualSumOfSquares(y, x, beta)

	draws := iterations - warmup
	result := &chainResult{
		coef:  make([][]float64, p),
		sigma: make([]float64, 0, draws),
	}
	for j := range result.coef {
		result.coef[j] = make([]float64, 0, draws)
	}

	for it := 0; it < iterations; it++ {
		if it%64 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		for j := 0; j < p; j++ {
			current := beta[j]
			proposal := current + steps[j]*rng.NormFloat64()

			beta[j] = proposal
			rssProp := residualSumOfSquares(y, x, beta)
			beta[j] = current

			logRatio := -0.5*(rssProp-rss)/sigma2 +
				prior.LogDensity(proposal) - prior.LogDensity(current)

			attempts[j]++
			if logRatio >= 0 || math.Log(rng.Float64()) < logRatio {
				beta[j] = proposal
				rss = rssProp
				accepts[j]++
			}
		}

		// sigma2 | beta: inverse-gamma conjugate update.
		shape := sigmaShape0 + float64(n)/2
		rate := sigmaRate0 + rss/2
		sigma2 = rate / sampleGamma(rng, shape)

		// Adapt proposal scales during warmup only.
		if it < warmup && it > 0 && it%50 == 0 {
			for j := 0; j < p; j++ {
				if attempts[j] == 0 {
					continue
				}
				rate := float64(accepts[j]) / float64(attempts[j])
				if rate < 0.25 {
					steps[j] *= 0.8
				} else if rate > 0.6 {
					steps[j] *= 1.25
				}
				accepts[j] = 0
				attempts[j] = 0
			}
		}

		if it >= warmup {
			for j := 0; j < p; j++ {
				result.coef[j] = append(result.coef[j], beta[j])
			}
			result.sigma = append(result.sigma, math.Sqrt(sigma2))
		}
	}

	return result, nil
}
