package fit

import "math"

// OptimalResult compares a measured FV profile against the profile that
// would maximize jump height at the same Pmax, mass and push-off distance.
type OptimalResult struct {
	Pmax          float64
	F0            float64
	V0            float64
	Sfv           float64
	Height        float64
	OptimalF0     float64
	OptimalV0     float64
	OptimalSfv    float64
	OptimalHeight float64
	// HeightRatio is current height over optimal height.
	HeightRatio float64
	// SfvRatio is current slope over optimal slope; the classic FV
	// imbalance measure (1 = optimal, <1 velocity deficit, >1 force
	// deficit when slopes are taken as magnitudes).
	SfvRatio float64
}

// OptimalColumns is the flat column order of an OptimalResult row.
var OptimalColumns = []string{
	"Pmax", "F0", "V0", "Sfv", "height",
	"optimal_F0", "optimal_V0", "optimal_Sfv", "optimal_height",
	"height_ratio", "Sfv_ratio",
}

func (r OptimalResult) Values() []float64 {
	return []float64{
		r.Pmax, r.F0, r.V0, r.Sfv, r.Height,
		r.OptimalF0, r.OptimalV0, r.OptimalSfv, r.OptimalHeight,
		r.HeightRatio, r.SfvRatio,
	}
}

// profileHeight is the ballistic jump height predicted for a linear FV
// profile (F0, V0) pushing a mass over pushOff. The mean velocity solves
// the quadratic from the impulse-momentum balance:
//
//	F0 (1 - v/V0) = m g + 2 m v^2 / d
//
// and height follows as 2 v^2 / g. Returns 0 when F0 cannot even support
// the weight.
func profileHeight(f0, v0, mass, pushOff, gravity float64) float64 {
	a := 2 * mass / pushOff
	b := f0 / v0
	c := mass*gravity - f0
	if c >= 0 {
		return 0
	}
	v := (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
	return 2 * v * v / gravity
}

// OptimalProfile holds Pmax = F0*V0/4 fixed and finds the slope maximizing
// predicted height by golden-section search; each candidate is evaluated in
// closed form, no simulation involved.
func OptimalProfile(f0, v0, bodyweight, pushOff, gravity float64) (OptimalResult, error) {
	switch {
	case !(f0 > 0):
		return OptimalResult{}, ErrNoRealRoot
	case !(v0 > 0), !(bodyweight > 0), !(pushOff > 0), !(gravity > 0):
		return OptimalResult{}, ErrInsufficientData
	}

	pmax := f0 * v0 / 4
	weight := bodyweight * gravity

	// A candidate slope s fixes F0 = sqrt(4 Pmax s), V0 = sqrt(4 Pmax / s).
	// F0 must exceed the weight, which bounds s from below.
	sMin := weight * weight / (4 * pmax)
	heightAt := func(s float64) float64 {
		cf0 := math.Sqrt(4 * pmax * s)
		cv0 := math.Sqrt(4 * pmax / s)
		return profileHeight(cf0, cv0, bodyweight, pushOff, gravity)
	}

	sOpt := goldenMax(heightAt, sMin*(1+1e-9), sMin*1e4, 1e-12)

	res := OptimalResult{
		Pmax:          pmax,
		F0:            f0,
		V0:            v0,
		Sfv:           -f0 / v0,
		Height:        profileHeight(f0, v0, bodyweight, pushOff, gravity),
		OptimalF0:     math.Sqrt(4 * pmax * sOpt),
		OptimalV0:     math.Sqrt(4 * pmax / sOpt),
		OptimalSfv:    -sOpt,
		OptimalHeight: heightAt(sOpt),
	}
	res.HeightRatio = res.Height / res.OptimalHeight
	res.SfvRatio = (f0 / v0) / sOpt
	return res, nil
}

// goldenMax maximizes f over [lo, hi] by golden-section search with a
// relative interval tolerance.
func goldenMax(f func(float64) float64, lo, hi, tol float64) float64 {
	const phi = 0.6180339887498949
	a, b := lo, hi
	x1 := b - phi*(b-a)
	x2 := a + phi*(b-a)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < 400 && (b-a) > tol*(math.Abs(a)+math.Abs(b)); i++ {
		if f1 < f2 {
			a, x1, f1 = x1, x2, f2
			x2 = a + phi*(b-a)
			f2 = f(x2)
		} else {
			b, x2, f2 = x2, x1, f1
			x1 = b - phi*(b-a)
			f1 = f(x1)
		}
	}
	return (a + b) / 2
}
