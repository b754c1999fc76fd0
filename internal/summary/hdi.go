package summary

import (
	"fmt"
	"math"
	"sort"
)

// HDI computes the highest-density interval: the shortest contiguous window
// of sorted draws containing the requested probability mass. For skewed
// posteriors this differs from the equal-tailed percentile interval.
func HDI(draws []float64, mass float64) (low, high float64, err error) {
	if mass <= 0 || mass >= 1 {
		return 0, 0, fmt.Errorf("credible mass must be in (0, 1), got %f", mass)
	}
	n := len(draws)
	if n < 2 {
		return 0, 0, fmt.Errorf("need at least 2 draws for an interval, got %d", n)
	}

	sorted := make([]float64, n)
	copy(sorted, draws)
	sort.Float64s(sorted)

	window := int(math.Ceil(mass * float64(n)))
	if window >= n {
		window = n - 1
	}

	bestLow := sorted[0]
	bestHigh := sorted[window]
	bestWidth := bestHigh - bestLow
	for i := 1; i+window < n; i++ {
		width := sorted[i+window] - sorted[i]
		if width < bestWidth {
			bestWidth = width
			bestLow = sorted[i]
			bestHigh = sorted[i+window]
		}
	}
	return bestLow, bestHigh, nil
}
