package mcmc

import (
	"context"
	"math"
	"math/rand"

	"gobayes/domain/regress"

	"gonum.org/v1/gonum/mat"
)

// Weakly-informative inverse-gamma hyperparameters for the residual variance.
const (
	sigmaShape0 = 0.001
	sigmaRate0  = 0.001
)

// chainResult holds post-warmup draws for one chain: one slice per design
// column plus the residual standard deviation.
type chainResult struct {
	coef  [][]float64
	sigma []float64
}

// runGibbsChain samples the Gaussian-prior posterior by conjugate Gibbs:
// the coefficient vector is jointly normal given sigma^2, and sigma^2 is
// inverse-gamma given the coefficients. ctx is checked periodically so a
// deadline aborts the chain instead of hanging.
func runGibbsChain(ctx context.Context, rng *rand.Rand, y []float64, x *mat.Dense, prior regress.PriorSpec, iterations, warmup int) (*chainResult, error) {
	n, p := x.Dims()
	yVec := mat.NewVecDense(n, y)

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	priorPrec := 1.0 / (prior.Scale * prior.Scale)
	priorPull := prior.Location * priorPrec

	beta := make([]float64, p)
	sigma2 := sampleVariance(y)
	if sigma2 <= 0 {
		sigma2 = 1
	}

	draws := iterations - warmup
	result := &chainResult{
		coef:  make([][]float64, p),
		sigma: make([]float64, 0, draws),
	}
	for j := range result.coef {
		result.coef[j] = make([]float64, 0, draws)
	}

	prec := mat.NewDense(p, p, nil)
	rhs := mat.NewVecDense(p, nil)
	z := mat.NewVecDense(p, nil)

	for it := 0; it < iterations; it++ {
		if it%64 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// beta | sigma2: N(A^-1 b, A^-1) with A = XtX/s2 + priorPrec*I.
		invS2 := 1.0 / sigma2
		for r := 0; r < p; r++ {
			for c := 0; c < p; c++ {
				v := xtx.At(r, c) * invS2
				if r == c {
					v += priorPrec
				}
				prec.Set(r, c, v)
			}
			rhs.SetVec(r, xty.AtVec(r)*invS2+priorPull)
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(mat.NewSymDense(p, symData(prec))); !ok {
			return nil, errNotPositiveDefinite
		}

		var mu mat.VecDense
		if err := chol.SolveVecTo(&mu, rhs); err != nil {
			return nil, err
		}

		for j := 0; j < p; j++ {
			z.SetVec(j, rng.NormFloat64())
		}
		// A = U^T U, so x = mu + U^-1 z has covariance A^-1.
		var u mat.TriDense
		chol.UTo(&u)
		w := solveUpper(&u, z)
		for j := 0; j < p; j++ {
			beta[j] = mu.AtVec(j) + w[j]
		}

		// sigma2 | beta: inverse-gamma with the conjugate update.
		rss := residualSumOfSquares(y, x, beta)
		shape := sigmaShape0 + float64(n)/2
		rate := sigmaRate0 + rss/2
		sigma2 = rate / sampleGamma(rng, shape)

		if it >= warmup {
			for j := 0; j < p; j++ {
				result.coef[j] = append(result.coef[j], beta[j])
			}
			result.sigma = append(result.sigma, math.Sqrt(sigma2))
		}
	}

	return result, nil
}

// symData copies a dense matrix assumed symmetric into SymDense layout
func symData(d *mat.Dense) []float64 {
	r, _ := d.Dims()
	out := make([]float64, r*r)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			out[i*r+j] = d.At(i, j)
		}
	}
	return out
}

// solveUpper solves U w = z by back substitution for upper-triangular U
func solveUpper(u *mat.TriDense, z *mat.VecDense) []float64 {
	p, _ := u.Dims()
	w := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		s := z.AtVec(i)
		for j := i + 1; j < p; j++ {
			s -= u.At(i, j) * w[j]
		}
		w[i] = s / u.At(i, i)
	}
	return w
}

// residualSumOfSquares computes sum((y - X beta)^2)
func residualSumOfSquares(y []float64, x *mat.Dense, beta []float64) float64 {
	n, p := x.Dims()
	rss := 0.0
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j := 0; j < p; j++ {
			fitted += x.At(i, j) * beta[j]
		}
		r := y[i] - fitted
		rss += r * r
	}
	return rss
}

// sampleVariance returns the unbiased sample variance
func sampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	sumSq := 0.0
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}

// sampleGamma draws from Gamma(shape, rate=1) using Marsaglia-Tsang, with
// the standard boost for shape < 1. Uses the chain's own RNG stream so the
// whole chain stays deterministic for a fixed seed.
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		var xn, v float64
		for {
			xn = rng.NormFloat64()
			v = 1 + c*xn
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*xn*xn*xn*xn {
			return d * v
		}
		if math.Log(u) < 0.5*xn*xn+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
