package regress

import (
	"testing"

	"gobayes/domain/core"
)

func drawSet(key string, chains, draws int, value float64) CoefficientDraws {
	out := CoefficientDraws{Key: core.VariableKey(key), Chains: make([][]float64, chains)}
	for c := range out.Chains {
		out.Chains[c] = make([]float64, draws)
		for i := range out.Chains[c] {
			out.Chains[c][i] = value
		}
	}
	return out
}

// TestNewPosteriorSampleShapeValidation tests the chain/draw shape invariant
func TestNewPosteriorSampleShapeValidation(t *testing.T) {
	coefs := []CoefficientDraws{drawSet("intercept", 2, 10, 1.0)}
	sigma := drawSet("sigma", 2, 10, 1.0)

	sample, err := NewPosteriorSample(coefs, sigma, 2, 10, 10, 123, DefaultPrior())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !sample.Converged {
		t.Error("New samples should start converged")
	}

	// Wrong chain count.
	if _, err := NewPosteriorSample(coefs, sigma, 3, 10, 10, 123, DefaultPrior()); err == nil {
		t.Error("Expected error for chain count mismatch")
	}

	// Ragged chain lengths.
	ragged := []CoefficientDraws{drawSet("intercept", 2, 10, 1.0)}
	ragged[0].Chains[1] = ragged[0].Chains[1][:5]
	if _, err := NewPosteriorSample(ragged, sigma, 2, 10, 10, 123, DefaultPrior()); err == nil {
		t.Error("Expected error for ragged chains")
	}

	// No coefficients at all.
	if _, err := NewPosteriorSample(nil, sigma, 2, 10, 10, 123, DefaultPrior()); err == nil {
		t.Error("Expected error for empty coefficient set")
	}
}

// TestPosteriorSampleDrawsLookup tests lookup by key including sigma
func TestPosteriorSampleDrawsLookup(t *testing.T) {
	coefs := []CoefficientDraws{drawSet("distance", 2, 4, -1.5)}
	sigma := drawSet("sigma", 2, 4, 2.0)
	sample, err := NewPosteriorSample(coefs, sigma, 2, 4, 4, 123, DefaultPrior())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d, ok := sample.Draws(core.VariableKey("distance"))
	if !ok || d.Chains[0][0] != -1.5 {
		t.Error("Failed to look up coefficient draws")
	}

	sd, ok := sample.Draws(KeySigma)
	if !ok || sd.Chains[0][0] != 2.0 {
		t.Error("Failed to look up sigma draws")
	}

	if _, ok := sample.Draws(core.VariableKey("missing")); ok {
		t.Error("Expected lookup miss for unknown key")
	}
}

// TestAddWarningDeduplication tests warning dedup
func TestAddWarningDeduplication(t *testing.T) {
	coefs := []CoefficientDraws{drawSet("intercept", 2, 4, 1.0)}
	sigma := drawSet("sigma", 2, 4, 1.0)
	sample, _ := NewPosteriorSample(coefs, sigma, 2, 4, 4, 123, DefaultPrior())

	sample.AddWarning(WarningNonConvergence)
	sample.AddWarning(WarningNonConvergence)
	sample.AddWarning(WarningLowESS)

	if len(sample.Warnings) != 2 {
		t.Errorf("Expected 2 deduplicated warnings, got %d", len(sample.Warnings))
	}
}

// TestPooledDraws tests chain concatenation
func TestPooledDraws(t *testing.T) {
	d := drawSet("intercept", 3, 5, 1.0)
	if d.TotalDraws() != 15 {
		t.Errorf("Expected 15 total draws, got %d", d.TotalDraws())
	}
	if len(d.Pooled()) != 15 {
		t.Errorf("Expected 15 pooled draws, got %d", len(d.Pooled()))
	}
}
