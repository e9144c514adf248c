// Package fit extracts force-velocity and power profiles from per-load
// simulation tables by polynomial least squares, and computes the
// theoretically optimal profile.
package fit

import (
	"errors"
	"math"

	"github.com/ouzlim/vjsim/internal/table"
)

var (
	ErrDimensionMismatch = errors.New("fit: x and y lengths differ")
	ErrBadDegree         = errors.New("fit: polynomial degree must be at least 1")
	ErrInsufficientData  = errors.New("fit: not enough finite data points")
	// ErrNoRealRoot flags a fitted polynomial with no admissible real
	// root; the fitted model is still returned for inspection.
	ErrNoRealRoot = errors.New("fit: no admissible real root")
)

// FVResult is one fitted force-velocity profile. Pmax = F0*V0/4 assumes a
// linear profile and is only an approximation for degree > 1 fits.
type FVResult struct {
	F0      float64
	F0Rel   float64
	V0      float64
	Sfv     float64
	Pmax    float64
	PmaxRel float64
	RFv     float64
	Poly    Polynomial
}

// FVColumns is the flat column order of an FVResult row.
var FVColumns = []string{"F0", "F0_rel", "V0", "Sfv", "Pmax", "Pmax_rel", "RFv"}

func (r FVResult) Values() []float64 {
	return []float64{r.F0, r.F0Rel, r.V0, r.Sfv, r.Pmax, r.PmaxRel, r.RFv}
}

// FVProfile fits velocityCol on forceCol. V0 is the fit evaluated at zero
// force, Sfv its derivative there, and F0 the admissible positive real root
// nearest the observed force range. Relative values use the table's
// bodyweight column when present.
func FVProfile(tbl *table.Table, forceCol, velCol string, degree int) (FVResult, error) {
	force, err := tbl.Column(forceCol)
	if err != nil {
		return FVResult{}, err
	}
	vel, err := tbl.Column(velCol)
	if err != nil {
		return FVResult{}, err
	}

	poly, err := PolyFit(force, vel, degree)
	if err != nil {
		return FVResult{}, err
	}

	res := FVResult{
		V0:   poly.Eval(0),
		Sfv:  poly.Derivative().Eval(0),
		Poly: poly,
	}

	bodyweight := firstFinite(tbl, "bodyweight")

	f0, ok := admissibleRoot(poly, force)
	if !ok {
		res.F0 = math.NaN()
		res.F0Rel = math.NaN()
		res.Pmax = math.NaN()
		res.PmaxRel = math.NaN()
		res.RFv = math.NaN()
		return res, ErrNoRealRoot
	}
	res.F0 = f0
	res.F0Rel = f0 / bodyweight
	res.Pmax = f0 * res.V0 / 4
	res.PmaxRel = res.Pmax / bodyweight
	res.RFv = f0 / res.V0
	return res, nil
}

// admissibleRoot picks the positive real root closest to the observed force
// interval, smaller root on ties.
func admissibleRoot(poly Polynomial, force []float64) (float64, bool) {
	lo, hi := finiteRange(force)
	best := math.NaN()
	bestDist := math.Inf(1)
	for _, r := range poly.RealRoots() {
		if r <= 0 {
			continue
		}
		d := 0.0
		switch {
		case r < lo:
			d = lo - r
		case r > hi:
			d = r - hi
		}
		if d < bestDist || (d == bestDist && r < best) {
			best = r
			bestDist = d
		}
	}
	return best, !math.IsNaN(best)
}

// PowerResult is a fitted power curve vertex.
type PowerResult struct {
	Pmax    float64
	XAtPmax float64
	Poly    Polynomial
}

// PowerProfile fits powerCol on xCol (degree 2 by convention) and locates
// the maximum through the derivative root with negative curvature nearest
// the data range.
func PowerProfile(tbl *table.Table, xCol, powerCol string, degree int) (PowerResult, error) {
	x, err := tbl.Column(xCol)
	if err != nil {
		return PowerResult{}, err
	}
	power, err := tbl.Column(powerCol)
	if err != nil {
		return PowerResult{}, err
	}

	poly, err := PolyFit(x, power, degree)
	if err != nil {
		return PowerResult{}, err
	}

	deriv := poly.Derivative()
	second := deriv.Derivative()
	lo, hi := finiteRange(x)

	best := math.NaN()
	bestDist := math.Inf(1)
	for _, r := range deriv.RealRoots() {
		if second.Eval(r) >= 0 {
			continue
		}
		d := 0.0
		switch {
		case r < lo:
			d = lo - r
		case r > hi:
			d = r - hi
		}
		if d < bestDist {
			best = r
			bestDist = d
		}
	}

	res := PowerResult{Poly: poly, XAtPmax: best}
	if math.IsNaN(best) {
		res.Pmax = math.NaN()
		return res, ErrNoRealRoot
	}
	res.Pmax = poly.Eval(best)
	return res, nil
}

func finiteRange(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		if !isFinite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func firstFinite(tbl *table.Table, col string) float64 {
	vals, err := tbl.Column(col)
	if err != nil {
		return math.NaN()
	}
	for _, v := range vals {
		if isFinite(v) {
			return v
		}
	}
	return math.NaN()
}
