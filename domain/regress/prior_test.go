package regress

import (
	"testing"
)

// TestParsePriorFamily tests family parsing
func TestParsePriorFamily(t *testing.T) {
	tests := []struct {
		input    string
		expected PriorFamily
		hasError bool
	}{
		{"gaussian", PriorGaussian, false},
		{"student_t", PriorStudentT, false},
		{"cauchy", PriorCauchy, false},
		{"normal", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		result, err := ParsePriorFamily(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input %q, but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input %q: %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %q for input %q, got %q", test.expected, test.input, result)
		}
	}
}

// TestPriorSpecValidate tests parameter validation per family
func TestPriorSpecValidate(t *testing.T) {
	valid := []PriorSpec{
		{Family: PriorGaussian, Scale: 10},
		{Family: PriorCauchy, Scale: 2.5},
		{Family: PriorStudentT, Scale: 1, DF: 3},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Errorf("Expected %s prior to validate, got: %v", p.Family, err)
		}
	}

	invalid := []PriorSpec{
		{Family: PriorGaussian, Scale: 0},
		{Family: PriorGaussian, Scale: -1},
		{Family: PriorStudentT, Scale: 1, DF: 0},
		{Family: "lognormal", Scale: 1},
	}
	for _, p := range invalid {
		if err := p.Validate(); err == nil {
			t.Errorf("Expected %s prior with scale %g df %g to fail validation", p.Family, p.Scale, p.DF)
		}
	}
}

// TestPriorLogDensityShape tests that densities peak at the location and
// that heavy-tailed families dominate in the tails
func TestPriorLogDensityShape(t *testing.T) {
	gaussian := PriorSpec{Family: PriorGaussian, Location: 0, Scale: 1}
	cauchy := PriorSpec{Family: PriorCauchy, Location: 0, Scale: 1}

	if gaussian.LogDensity(0) <= gaussian.LogDensity(2) {
		t.Error("Gaussian log-density should peak at its location")
	}
	if cauchy.LogDensity(10) <= gaussian.LogDensity(10) {
		t.Error("Cauchy tails should be heavier than gaussian tails")
	}

	shifted := PriorSpec{Family: PriorGaussian, Location: 5, Scale: 1}
	if shifted.LogDensity(5) <= shifted.LogDensity(0) {
		t.Error("Shifted gaussian should peak at its location")
	}
}

// TestDefaultPrior tests the weakly-informative default
func TestDefaultPrior(t *testing.T) {
	p := DefaultPrior()
	if p.Family != PriorGaussian || p.Location != 0 || p.Scale != 10 {
		t.Errorf("Unexpected default prior: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Default prior should validate, got: %v", err)
	}
}
