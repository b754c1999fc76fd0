package regress

import (
	"testing"
)

// TestManifestFingerprintDeterminism tests that identical inputs fingerprint identically
func TestManifestFingerprintDeterminism(t *testing.T) {
	a := NewRunManifest("run-a", 123, 20, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0")
	b := NewRunManifest("run-b", 123, 20, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0")

	if a.Fingerprint == "" {
		t.Fatal("Expected a non-empty fingerprint")
	}
	// Run ID and timestamps do not participate; only result-shaping inputs do.
	if a.Fingerprint != b.Fingerprint {
		t.Error("Fingerprints differ for identical analysis inputs")
	}
}

// TestManifestFingerprintSensitivity tests that each input changes the fingerprint
func TestManifestFingerprintSensitivity(t *testing.T) {
	base := NewRunManifest("run", 123, 20, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0")

	variants := []RunManifest{
		NewRunManifest("run", 124, 20, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 21, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 20, 2, 2000, DefaultPrior(), 0.95, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 20, 4, 1000, DefaultPrior(), 0.95, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 20, 4, 2000, PriorSpec{Family: PriorCauchy, Scale: 2.5}, 0.95, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 20, 4, 2000, DefaultPrior(), 0.9, 1.4, "v0.1.0"),
		NewRunManifest("run", 123, 20, 4, 2000, DefaultPrior(), 0.95, 2.0, "v0.1.0"),
		NewRunManifest("run", 123, 20, 4, 2000, DefaultPrior(), 0.95, 1.4, "v0.2.0"),
	}

	for i, v := range variants {
		if v.Fingerprint == base.Fingerprint {
			t.Errorf("Variant %d did not change the fingerprint", i)
		}
	}
}
