package report

import (
	"fmt"
	"strings"

	"gobayes/domain/regress"
)

// RenderMarkdown renders a full analysis report as Markdown: run manifest,
// frequentist fit, posterior summary and the side-by-side comparison table.
func RenderMarkdown(r *regress.Report) string {
	var md strings.Builder

	md.WriteString("# Regression Comparison Report\n\n")
	renderManifest(&md, r.Manifest)
	renderFrequentist(&md, r.Frequentist)
	renderPosterior(&md, r.Posterior)
	renderComparison(&md, r.Comparison)

	return md.String()
}

func renderManifest(md *strings.Builder, m regress.RunManifest) {
	md.WriteString("## Run\n\n")
	md.WriteString(fmt.Sprintf("- Run ID: `%s`\n", m.RunID))
	md.WriteString(fmt.Sprintf("- Seed: %d, rows: %d\n", m.Seed, m.Rows))
	md.WriteString(fmt.Sprintf("- Chains: %d, iterations: %d\n", m.Chains, m.Iterations))
	md.WriteString(fmt.Sprintf("- Prior: %s(location=%g, scale=%g", m.Prior.Family, m.Prior.Location, m.Prior.Scale))
	if m.Prior.Family == regress.PriorStudentT {
		md.WriteString(fmt.Sprintf(", df=%g", m.Prior.DF))
	}
	md.WriteString(")\n")
	md.WriteString(fmt.Sprintf("- Credible mass: %.0f%%, ROPE half width: %.4f\n", m.CredibleMass*100, m.ROPEHalfWidth))
	md.WriteString(fmt.Sprintf("- Runtime: %dms\n", m.RuntimeMs))
	md.WriteString(fmt.Sprintf("- Fingerprint: `%s`\n\n", m.Fingerprint))
}

func renderFrequentist(md *strings.Builder, fit *regress.FrequentistFit) {
	if fit == nil {
		return
	}
	md.WriteString("## Frequentist Fit (OLS)\n\n")
	md.WriteString("| Coefficient | Estimate | Std. Error | t | p-value |\n")
	md.WriteString("|---|---|---|---|---|\n")
	for _, c := range fit.Coefficients {
		md.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %.3f | %.3f |\n",
			c.Key, c.Estimate, c.StdErr, c.TStat, c.PValue))
	}
	md.WriteString(fmt.Sprintf("\nAdjusted R²: %.4f, residual SD: %.4f, n=%d, df=%d\n\n",
		fit.AdjustedR2, fit.ResidualSD, fit.SampleSize, fit.DF))
}

func renderPosterior(md *strings.Builder, p *regress.PosteriorSummary) {
	if p == nil {
		return
	}
	md.WriteString("## Posterior Summary (MCMC)\n\n")
	md.WriteString(fmt.Sprintf("| Coefficient | Median | %.0f%% HDI | pd | ROPE overlap | R-hat | ESS |\n", p.CredibleMass*100))
	md.WriteString("|---|---|---|---|---|---|---|\n")
	for _, c := range p.Coefficients {
		md.WriteString(fmt.Sprintf("| %s | %.4f | [%.4f, %.4f] | %.3f | %.3f | %.3f | %.0f |\n",
			c.Key, c.Median, c.CILow, c.CIHigh, c.PD, c.ROPEOverlap, c.RHat, c.ESS))
	}
	md.WriteString("\n")
	if !p.Converged {
		md.WriteString("**Warning: chains did not converge. Interpret these draws with caution.**\n\n")
	}
	for _, w := range p.Warnings {
		md.WriteString(fmt.Sprintf("- Warning: %s\n", w))
	}
	if len(p.Warnings) > 0 {
		md.WriteString("\n")
	}
}

func renderComparison(md *strings.Builder, rows []regress.ComparisonRow) {
	if len(rows) == 0 {
		return
	}
	md.WriteString("## Frequentist vs Bayesian\n\n")
	md.WriteString("| Coefficient | p-value | 1 − pd |\n")
	md.WriteString("|---|---|---|\n")
	for _, row := range rows {
		md.WriteString(fmt.Sprintf("| %s | %.3f | %.3f |\n", row.Key, row.PValue, row.PseudoP))
	}
	md.WriteString("\nThe pseudo-p-value (1 − probability of direction) tracks the frequentist p-value when priors are weak, but they answer different questions.\n")
}

// RenderText renders a compact plain-text summary for terminal output
func RenderText(r *regress.Report) string {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("Run %s (seed=%d, n=%d)\n", r.Manifest.RunID, r.Manifest.Seed, r.Manifest.Rows))
	if r.Frequentist != nil {
		out.WriteString("\nOLS:\n")
		for _, c := range r.Frequentist.Coefficients {
			out.WriteString(fmt.Sprintf("  %-18s %10.4f (SE %.4f, p=%.3f)\n", c.Key, c.Estimate, c.StdErr, c.PValue))
		}
		out.WriteString(fmt.Sprintf("  adjusted R²=%.4f\n", r.Frequentist.AdjustedR2))
	}
	if r.Posterior != nil {
		out.WriteString("\nPosterior:\n")
		for _, c := range r.Posterior.Coefficients {
			out.WriteString(fmt.Sprintf("  %-18s %10.4f [%0.4f, %0.4f] pd=%.3f rhat=%.3f\n",
				c.Key, c.Median, c.CILow, c.CIHigh, c.PD, c.RHat))
		}
		if !r.Posterior.Converged {
			out.WriteString("  WARNING: non-convergent chains\n")
		}
	}
	return out.String()
}
