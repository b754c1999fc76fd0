package summary

// ProbabilityOfDirection returns the fraction of draws whose sign matches
// the sign of the median, clipped to [0.5, 1.0] by convention since the
// complementary direction's probability is implied.
func ProbabilityOfDirection(draws []float64, median float64) float64 {
	if len(draws) == 0 {
		return 0.5
	}
	matching := 0
	for _, d := range draws {
		if (median >= 0 && d > 0) || (median < 0 && d < 0) {
			matching++
		}
	}
	pd := float64(matching) / float64(len(draws))
	if pd < 0.5 {
		pd = 1 - pd
	}
	if pd > 1 {
		pd = 1
	}
	return pd
}

// ROPEOverlap returns the fraction of draws falling inside the region of
// practical equivalence [low, high].
func ROPEOverlap(draws []float64, low, high float64) float64 {
	if len(draws) == 0 {
		return 0
	}
	inside := 0
	for _, d := range draws {
		if d >= low && d <= high {
			inside++
		}
	}
	return float64(inside) / float64(len(draws))
}
