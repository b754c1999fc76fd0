package table

import (
	"testing"
)

func validColumns() ([]float64, []float64, []float64, []int) {
	return []float64{12.0, 35.5, 60.1},
		[]float64{10.0, 55.2, 99.9},
		[]float64{0.5, 1.2, 4.8},
		[]int{0, 1, 1}
}

// TestNewObservationTable tests construction with valid columns
func TestNewObservationTable(t *testing.T) {
	abundance, proportion, distance, useMedicine := validColumns()
	tbl, err := NewObservationTable(abundance, proportion, distance, useMedicine)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Rows())
	}
}

// TestNewObservationTableMismatchedLengths tests column length validation
func TestNewObservationTableMismatchedLengths(t *testing.T) {
	abundance, proportion, distance, _ := validColumns()
	_, err := NewObservationTable(abundance, proportion, distance, []int{0, 1})
	if err == nil {
		t.Error("Expected error for mismatched column lengths")
	}
}

// TestNewObservationTableEmpty tests rejection of empty tables
func TestNewObservationTableEmpty(t *testing.T) {
	_, err := NewObservationTable(nil, nil, nil, nil)
	if err == nil {
		t.Error("Expected error for empty table")
	}
}

// TestNewObservationTableInvalidFactor tests the 0/1 factor invariant
func TestNewObservationTableInvalidFactor(t *testing.T) {
	abundance, proportion, distance, _ := validColumns()
	_, err := NewObservationTable(abundance, proportion, distance, []int{0, 1, 2})
	if err == nil {
		t.Error("Expected error for use_medicine value outside {0, 1}")
	}
}

// TestDesign tests the design matrix layout
func TestDesign(t *testing.T) {
	abundance, proportion, distance, useMedicine := validColumns()
	tbl, err := NewObservationTable(abundance, proportion, distance, useMedicine)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	y, x := tbl.Design()
	if len(y) != 3 || len(x) != 3 {
		t.Fatalf("Expected 3 rows in y and x, got %d and %d", len(y), len(x))
	}
	for i, row := range x {
		if len(row) != 4 {
			t.Fatalf("Row %d: expected 4 columns (intercept + 3 regressors), got %d", i, len(row))
		}
		if row[0] != 1.0 {
			t.Errorf("Row %d: expected intercept column 1.0, got %f", i, row[0])
		}
		if row[1] != proportion[i] || row[2] != distance[i] || row[3] != float64(useMedicine[i]) {
			t.Errorf("Row %d: regressor values do not match source columns", i)
		}
		if y[i] != abundance[i] {
			t.Errorf("Row %d: outcome %f does not match abundance %f", i, y[i], abundance[i])
		}
	}
}

// TestRegressorKeys tests regressor ordering
func TestRegressorKeys(t *testing.T) {
	abundance, proportion, distance, useMedicine := validColumns()
	tbl, _ := NewObservationTable(abundance, proportion, distance, useMedicine)

	keys := tbl.RegressorKeys()
	expected := []string{"proportion_used", "distance", "use_medicine"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d regressors, got %d", len(expected), len(keys))
	}
	for i, key := range keys {
		if key.String() != expected[i] {
			t.Errorf("Regressor %d: expected %s, got %s", i, expected[i], key)
		}
	}
}
