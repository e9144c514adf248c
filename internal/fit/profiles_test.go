package fit

import (
	"math"
	"testing"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fgen"
	"github.com/ouzlim/vjsim/internal/profile"
)

func TestAllProfilesOnSimulatedSweep(t *testing.T) {
	base := engine.Load{Bodyweight: 75, Gravity: 9.81, PushOffDistance: 0.4}
	loads := []float64{0, 10, 20, 30, 40, 50, 60}
	tbl, errs := profile.Generate(base, fgen.DefaultParams(), loads, engine.Options{})
	for _, err := range errs {
		if err != nil {
			t.Fatalf("sweep failed: %v", err)
		}
	}

	set := AllProfiles(tbl)
	if len(set.FV) != 5 || len(set.Power) != 2 {
		t.Fatalf("expected 5 FV + 2 power profiles, got %d + %d", len(set.FV), len(set.Power))
	}

	for _, fv := range set.FV {
		if fv.Err != nil {
			t.Errorf("%s: unexpected fit error %v", fv.Name, fv.Err)
			continue
		}
		if !(fv.F0 > 0) || !(fv.V0 > 0) {
			t.Errorf("%s: expected positive intercepts, F0=%f V0=%f", fv.Name, fv.F0, fv.V0)
		}
		if !(fv.Sfv < 0) {
			t.Errorf("%s: FV profile slope should be negative, got %f", fv.Name, fv.Sfv)
		}
	}

	out := set.Table()
	if out.Len() != 7 {
		t.Fatalf("expected 7 table rows, got %d", out.Len())
	}
	if out.Label(0) != "mass_height" {
		t.Errorf("unexpected first profile label %q", out.Label(0))
	}

	names, values := set.Flat()
	if len(names) != len(values) {
		t.Fatalf("flat names/values mismatch: %d vs %d", len(names), len(values))
	}
	if len(names) != 5*len(FVColumns)+2*2 {
		t.Errorf("unexpected flat width %d", len(names))
	}
	for i, v := range values {
		if math.IsInf(v, 0) {
			t.Errorf("flat value %s is infinite", names[i])
		}
	}
}
