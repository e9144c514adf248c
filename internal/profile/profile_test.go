package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fgen"
)

func baseLoad() engine.Load {
	return engine.Load{Bodyweight: 75, Gravity: 9.81, PushOffDistance: 0.4}
}

func TestGenerateOrdering(t *testing.T) {
	loads := []float64{40, 0, 20}
	tbl, errs := Generate(baseLoad(), fgen.DefaultParams(), loads, engine.Options{})

	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}
	for _, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	col, err := tbl.Column("external_load")
	if err != nil {
		t.Fatalf("column failed: %v", err)
	}
	// Rows keep the caller's order, not sorted order.
	for i, want := range loads {
		if col[i] != want {
			t.Errorf("row %d: external load %f, want %f", i, col[i], want)
		}
	}
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	loads := []float64{0, 10, 20, 30, 40, 50}
	seq, _ := Generate(baseLoad(), fgen.DefaultParams(), loads, engine.Options{})
	par, _ := GenerateParallel(baseLoad(), fgen.DefaultParams(), loads, engine.Options{})

	if seq.Len() != par.Len() {
		t.Fatalf("row count mismatch: %d vs %d", seq.Len(), par.Len())
	}
	for i := 0; i < seq.Len(); i++ {
		s, p := seq.Row(i), par.Row(i)
		for j := range s {
			if s[j] != p[j] {
				t.Fatalf("row %d col %d differ: %f vs %f", i, j, s[j], p[j])
			}
		}
	}
}

func TestGenerateFailedLoadKeepsRow(t *testing.T) {
	// The heaviest load is impossible for this generator; its row must be
	// a NaN sentinel while the others complete.
	loads := []float64{0, 20, 5000}
	tbl, errs := Generate(baseLoad(), fgen.DefaultParams(), loads, engine.Options{MaxTime: 2})

	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}
	if errs[0] != nil || errs[1] != nil {
		t.Errorf("light loads should succeed: %v %v", errs[0], errs[1])
	}
	if errs[2] == nil {
		t.Fatal("expected error for impossible load")
	}
	if !errors.Is(errs[2], fgen.ErrInvalidParam) && !errors.Is(errs[2], engine.ErrNoTakeOff) {
		t.Errorf("unexpected error type: %v", errs[2])
	}
	h, _ := tbl.Value(2, "height")
	if !math.IsNaN(h) {
		t.Errorf("failed row should hold NaN height, got %f", h)
	}
	ext, _ := tbl.Value(2, "external_load")
	if ext != 5000 {
		t.Errorf("failed row should keep its load identity, got %f", ext)
	}
}
