package report

import (
	"math"

	"gobayes/domain/regress"
)

// BuildComparison pairs each frequentist p-value with the Bayesian
// pseudo-p-value (1 minus the probability of direction) for the same
// coefficient. Both are rounded to three decimals so the table reads the
// way the values are usually reported. Coefficients present on only one
// side are skipped.
func BuildComparison(fit *regress.FrequentistFit, posterior *regress.PosteriorSummary) []regress.ComparisonRow {
	if fit == nil || posterior == nil {
		return nil
	}
	rows := make([]regress.ComparisonRow, 0, len(fit.Coefficients))
	for _, est := range fit.Coefficients {
		cs, ok := posterior.Coefficient(est.Key)
		if !ok {
			continue
		}
		rows = append(rows, regress.ComparisonRow{
			Key:     est.Key,
			PValue:  round3(est.PValue),
			PseudoP: round3(1 - cs.PD),
		})
	}
	return rows
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
