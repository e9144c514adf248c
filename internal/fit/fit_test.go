package fit

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ouzlim/vjsim/internal/table"
)

func fvTable(forces []float64, f func(float64) float64) *table.Table {
	tbl := table.New([]string{"bodyweight", "force", "velocity"})
	for _, fv := range forces {
		tbl.AppendRow([]float64{75, fv, f(fv)})
	}
	return tbl
}

func TestPolyFitLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 1 + 2x
	poly, err := PolyFit(x, y, 1)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if !floats.EqualApprox([]float64{1, 2}, poly, 1e-9) {
		t.Errorf("expected [1 2], got %v", poly)
	}
}

func TestPolyFitSkipsNaN(t *testing.T) {
	x := []float64{0, 1, math.NaN(), 2}
	y := []float64{1, 3, 100, 5}
	poly, err := PolyFit(x, y, 1)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(poly[1]-2) > 1e-9 {
		t.Errorf("NaN row should be skipped, slope %f", poly[1])
	}

	if _, err := PolyFit([]float64{1, math.NaN()}, []float64{1, 2}, 1); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestPolynomialRealRoots(t *testing.T) {
	// (x-1)(x-2)(x-3) = -6 + 11x - 6x^2 + x^3
	p := Polynomial{-6, 11, -6, 1}
	roots := p.RealRoots()
	want := []float64{1, 2, 3}
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %v", roots)
	}
	if !floats.EqualApprox(want, roots, 1e-8) {
		t.Errorf("got roots %v, want %v", roots, want)
	}

	// x^2 + 1 has no real roots.
	if roots := (Polynomial{1, 0, 1}).RealRoots(); len(roots) != 0 {
		t.Errorf("expected no real roots, got %v", roots)
	}
}

func TestFVProfileLinear(t *testing.T) {
	// v = 4 - f/750: V0 = 4, F0 = 3000, Sfv = -1/750.
	forces := []float64{500, 1000, 1500, 2000}
	tbl := fvTable(forces, func(f float64) float64 { return 4 - f/750 })

	res, err := FVProfile(tbl, "force", "velocity", 1)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(res.V0-4) > 1e-9 {
		t.Errorf("V0 = %f, want 4", res.V0)
	}
	if math.Abs(res.F0-3000) > 1e-6 {
		t.Errorf("F0 = %f, want 3000", res.F0)
	}
	if math.Abs(res.Sfv+1.0/750) > 1e-12 {
		t.Errorf("Sfv = %f, want %f", res.Sfv, -1.0/750)
	}
	if math.Abs(res.Pmax-3000*4/4) > 1e-6 {
		t.Errorf("Pmax = %f, want 3000", res.Pmax)
	}
	if math.Abs(res.F0Rel-3000.0/75) > 1e-6 {
		t.Errorf("F0_rel = %f, want 40", res.F0Rel)
	}
	if math.Abs(res.RFv-750) > 1e-6 {
		t.Errorf("RFv = %f, want 750", res.RFv)
	}
}

func TestFVProfileMatchesLinearRegression(t *testing.T) {
	// Noisy-ish data: the degree-1 fit must agree with an independent
	// simple linear regression on the same columns.
	forces := []float64{600, 900, 1400, 1900, 2400}
	vels := []float64{3.4, 3.05, 2.3, 1.75, 1.0}
	tbl := table.New([]string{"bodyweight", "force", "velocity"})
	for i := range forces {
		tbl.AppendRow([]float64{75, forces[i], vels[i]})
	}

	res, err := FVProfile(tbl, "force", "velocity", 1)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	alpha, beta := stat.LinearRegression(forces, vels, nil, false)
	if math.Abs(res.V0-alpha) > 1e-9 {
		t.Errorf("V0 = %f, regression intercept %f", res.V0, alpha)
	}
	if math.Abs(res.Sfv-beta) > 1e-12 {
		t.Errorf("Sfv = %f, regression slope %f", res.Sfv, beta)
	}
	if math.Abs(res.F0+alpha/beta) > 1e-6 {
		t.Errorf("F0 = %f, regression zero crossing %f", res.F0, -alpha/beta)
	}
}

func TestFVProfileNoRealRoot(t *testing.T) {
	// A convex quadratic that never reaches zero velocity.
	forces := []float64{500, 1000, 1500, 2000, 2500}
	tbl := fvTable(forces, func(f float64) float64 { return 2 + 1e-8*(f-1500)*(f-1500) })

	res, err := FVProfile(tbl, "force", "velocity", 2)
	if !errors.Is(err, ErrNoRealRoot) {
		t.Fatalf("expected ErrNoRealRoot, got %v", err)
	}
	if !math.IsNaN(res.F0) {
		t.Errorf("F0 should be NaN, got %f", res.F0)
	}
	if res.Poly == nil {
		t.Error("fitted model should be retained for inspection")
	}
	if math.Abs(res.V0-res.Poly.Eval(0)) > 1e-12 {
		t.Error("V0 should still come from the retained fit")
	}
}

func TestPowerProfileVertex(t *testing.T) {
	// p = 500 - 0.01 (x-100)^2 peaks at x=100, p=500.
	tbl := table.New([]string{"x", "power"})
	for _, x := range []float64{40, 70, 100, 130, 160} {
		tbl.AppendRow([]float64{x, 500 - 0.01*(x-100)*(x-100)})
	}

	res, err := PowerProfile(tbl, "x", "power", 2)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(res.XAtPmax-100) > 1e-6 {
		t.Errorf("x at Pmax = %f, want 100", res.XAtPmax)
	}
	if math.Abs(res.Pmax-500) > 1e-6 {
		t.Errorf("Pmax = %f, want 500", res.Pmax)
	}
}

func TestPowerProfileNoMaximum(t *testing.T) {
	// Upward-opening parabola has no interior maximum.
	tbl := table.New([]string{"x", "power"})
	for _, x := range []float64{1, 2, 3, 4} {
		tbl.AppendRow([]float64{x, x * x})
	}
	_, err := PowerProfile(tbl, "x", "power", 2)
	if !errors.Is(err, ErrNoRealRoot) {
		t.Errorf("expected ErrNoRealRoot, got %v", err)
	}
}

func TestOptimalProfileIsOptimal(t *testing.T) {
	res, err := OptimalProfile(3000, 4, 75, 0.4, 9.81)
	if err != nil {
		t.Fatalf("optimal profile failed: %v", err)
	}

	if !(res.OptimalHeight > 0) {
		t.Fatalf("expected positive optimal height, got %f", res.OptimalHeight)
	}
	if res.HeightRatio > 1+1e-9 {
		t.Errorf("current profile cannot beat the optimum: ratio %f", res.HeightRatio)
	}
	if math.Abs(res.OptimalF0*res.OptimalV0/4-res.Pmax) > 1e-6 {
		t.Errorf("optimal profile must preserve Pmax: %f vs %f", res.OptimalF0*res.OptimalV0/4, res.Pmax)
	}

	// Perturbing the optimal slope either way at fixed Pmax must not
	// increase predicted height.
	sOpt := -res.OptimalSfv
	for _, s := range []float64{sOpt * 0.9, sOpt * 1.1} {
		f0 := math.Sqrt(4 * res.Pmax * s)
		v0 := math.Sqrt(4 * res.Pmax / s)
		h := profileHeight(f0, v0, 75, 0.4, 9.81)
		if h > res.OptimalHeight+1e-9 {
			t.Errorf("neighbour slope %f yields higher height %f > %f", s, h, res.OptimalHeight)
		}
	}
}

func TestOptimalProfileHeightIdentity(t *testing.T) {
	// The analytic height of the input profile itself.
	res, err := OptimalProfile(2500, 3, 75, 0.4, 9.81)
	if err != nil {
		t.Fatalf("optimal profile failed: %v", err)
	}
	want := profileHeight(2500, 3, 75, 0.4, 9.81)
	if math.Abs(res.Height-want) > 1e-12 {
		t.Errorf("height %f, want %f", res.Height, want)
	}
	if !(res.Height > 0) {
		t.Errorf("expected positive height for a feasible profile")
	}
}
