package summary

import (
	"fmt"
	"math"

	"gobayes/internal/errors"
)

// SplitRHat computes the potential scale reduction factor, splitting each
// chain in half so within-chain drift also registers as non-convergence.
// Requires at least two chains; values near 1.0 indicate convergence.
func SplitRHat(chains [][]float64) (float64, error) {
	if len(chains) < 2 {
		return 0, errors.InsufficientChains(fmt.Sprintf("potential scale reduction needs >= 2 chains, got %d", len(chains)))
	}

	var halves [][]float64
	for i, c := range chains {
		if len(c) < 4 {
			return 0, fmt.Errorf("chain %d too short to split: %d draws", i, len(c))
		}
		mid := len(c) / 2
		halves = append(halves, c[:mid], c[mid:mid*2])
	}

	m := len(halves)
	n := len(halves[0])

	means := make([]float64, m)
	vars := make([]float64, m)
	for i, h := range halves {
		means[i] = mean(h)
		vars[i] = variance(h, means[i])
	}

	w := mean(vars)
	grand := mean(means)
	b := 0.0
	for _, mu := range means {
		d := mu - grand
		b += d * d
	}
	b *= float64(n) / float64(m-1)

	if w == 0 {
		// All draws identical within halves: degenerate but trivially converged.
		return 1, nil
	}

	varPlus := float64(n-1)/float64(n)*w + b/float64(n)
	return math.Sqrt(varPlus / w), nil
}

// ESS estimates the effective sample size, accounting for autocorrelation
// within chains. Autocorrelation sums are truncated at the first negative
// paired sum (Geyer's initial positive sequence).
func ESS(chains [][]float64) float64 {
	m := len(chains)
	if m == 0 || len(chains[0]) == 0 {
		return 0
	}
	n := len(chains[0])
	total := float64(m * n)
	if n < 4 {
		return total
	}

	chainMeans := make([]float64, m)
	chainVars := make([]float64, m)
	for i, c := range chains {
		chainMeans[i] = mean(c)
		chainVars[i] = variance(c, chainMeans[i])
	}
	w := mean(chainVars)

	varPlus := float64(n-1) / float64(n) * w
	if m > 1 {
		grand := mean(chainMeans)
		b := 0.0
		for _, mu := range chainMeans {
			d := mu - grand
			b += d * d
		}
		b *= float64(n) / float64(m-1)
		varPlus += b / float64(n)
	}
	if varPlus == 0 {
		return total
	}

	// Average per-chain autocovariance at each lag, then combine.
	rho := func(lag int) float64 {
		acov := 0.0
		for i, c := range chains {
			acov += autocovariance(c, chainMeans[i], lag)
		}
		acov /= float64(m)
		return 1 - (w-acov)/varPlus
	}

	sum := 0.0
	for t := 1; t+1 < n; t += 2 {
		pair := rho(t) + rho(t+1)
		if pair < 0 {
			break
		}
		sum += pair
	}

	ess := total / (1 + 2*sum)
	if ess > total {
		ess = total
	}
	if ess < 1 {
		ess = 1
	}
	return ess
}

func mean(data []float64) float64 {
	s := 0.0
	for _, v := range data {
		s += v
	}
	return s / float64(len(data))
}

func variance(data []float64, mu float64) float64 {
	if len(data) < 2 {
		return 0
	}
	s := 0.0
	for _, v := range data {
		d := v - mu
		s += d * d
	}
	return s / float64(len(data)-1)
}

func autocovariance(data []float64, mu float64, lag int) float64 {
	n := len(data)
	if lag >= n {
		return 0
	}
	s := 0.0
	for i := 0; i+lag < n; i++ {
		s += (data[i] - mu) * (data[i+lag] - mu)
	}
	return s / float64(n)
}
