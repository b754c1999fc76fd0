package sim

import (
	"context"
	"testing"

	"gobayes/internal/errors"
	"gobayes/internal/rng"
)

func newTestGenerator() *Generator {
	return NewGenerator(rng.NewStreamAdapter())
}

// TestSimulateDeterminism tests that identical (seed, n) yields identical tables
func TestSimulateDeterminism(t *testing.T) {
	g := newTestGenerator()
	ctx := context.Background()

	first, err := g.Simulate(ctx, 123, 20)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := g.Simulate(ctx, 123, 20)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < first.Rows(); i++ {
		if first.Abundance[i] != second.Abundance[i] ||
			first.ProportionUsed[i] != second.ProportionUsed[i] ||
			first.Distance[i] != second.Distance[i] ||
			first.UseMedicine[i] != second.UseMedicine[i] {
			t.Fatalf("Row %d differs between identical runs", i)
		}
	}
}

// TestSimulateSeedSensitivity tests that different seeds yield different data
func TestSimulateSeedSensitivity(t *testing.T) {
	g := newTestGenerator()
	ctx := context.Background()

	first, _ := g.Simulate(ctx, 123, 20)
	second, _ := g.Simulate(ctx, 124, 20)

	identical := true
	for i := 0; i < first.Rows(); i++ {
		if first.Abundance[i] != second.Abundance[i] {
			identical = false
			break
		}
	}
	if identical {
		t.Error("Different seeds produced identical abundance columns")
	}
}

// TestSimulateRanges tests that all draws stay within the documented ranges
func TestSimulateRanges(t *testing.T) {
	g := newTestGenerator()
	tbl, err := g.Simulate(context.Background(), 7, 500)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Rows() != 500 {
		t.Fatalf("Expected 500 rows, got %d", tbl.Rows())
	}

	for i := 0; i < tbl.Rows(); i++ {
		if tbl.Abundance[i] < abundanceMin || tbl.Abundance[i] > abundanceMax {
			t.Errorf("Abundance %f outside [%f, %f]", tbl.Abundance[i], abundanceMin, abundanceMax)
		}
		if tbl.ProportionUsed[i] < proportionMin || tbl.ProportionUsed[i] > proportionMax {
			t.Errorf("Proportion %f outside [%f, %f]", tbl.ProportionUsed[i], proportionMin, proportionMax)
		}
		if tbl.Distance[i] < distanceMin || tbl.Distance[i] > distanceMax {
			t.Errorf("Distance %f outside [%f, %f]", tbl.Distance[i], distanceMin, distanceMax)
		}
		if tbl.UseMedicine[i] != 0 && tbl.UseMedicine[i] != 1 {
			t.Errorf("UseMedicine %d outside {0, 1}", tbl.UseMedicine[i])
		}
	}
}

// TestSimulateBothFactorLevels tests that a reasonably large sample hits both levels
func TestSimulateBothFactorLevels(t *testing.T) {
	g := newTestGenerator()
	tbl, _ := g.Simulate(context.Background(), 42, 200)

	ones := 0
	for _, v := range tbl.UseMedicine {
		ones += v
	}
	if ones == 0 || ones == tbl.Rows() {
		t.Errorf("Expected both factor levels in 200 draws, got %d ones", ones)
	}
}

// TestSimulateInvalidRowCount tests rejection of non-positive n
func TestSimulateInvalidRowCount(t *testing.T) {
	g := newTestGenerator()
	for _, n := range []int{0, -1} {
		_, err := g.Simulate(context.Background(), 123, n)
		if err == nil {
			t.Errorf("Expected error for n=%d", n)
		}
		if !errors.HasCode(err, errors.CodeSimulationInvalid) {
			t.Errorf("Expected code %s for n=%d, got %s", errors.CodeSimulationInvalid, n, errors.GetCode(err))
		}
	}
}
