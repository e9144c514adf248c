package fit

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Polynomial holds coefficients in ascending order: p[0] + p[1]x + p[2]x^2...
type Polynomial []float64

func (p Polynomial) Degree() int { return len(p) - 1 }

func (p Polynomial) Eval(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	d := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// RealRoots returns the real roots in ascending order, computed from the
// eigenvalues of the companion matrix. Leading coefficients that are
// negligible relative to the largest one are dropped first.
func (p Polynomial) RealRoots() []float64 {
	coeffs := p.trim()
	n := len(coeffs) - 1
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{-coeffs[0] / coeffs[1]}
	}

	// Monic companion matrix: subdiagonal ones, normalized negated
	// coefficients in the last column.
	lead := coeffs[n]
	c := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		c.Set(i, n-1, -coeffs[i]/lead)
		if i > 0 {
			c.Set(i, i-1, 1)
		}
	}

	var eig mat.Eigen
	if !eig.Factorize(c, mat.EigenNone) {
		return nil
	}

	var roots []float64
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= 1e-9*(1+math.Abs(real(v))) {
			roots = append(roots, real(v))
		}
	}
	sort.Float64s(roots)
	return roots
}

func (p Polynomial) trim() Polynomial {
	maxAbs := 0.0
	for _, c := range p {
		maxAbs = math.Max(maxAbs, math.Abs(c))
	}
	if maxAbs == 0 {
		return nil
	}
	end := len(p)
	for end > 1 && math.Abs(p[end-1]) <= 1e-14*maxAbs {
		end--
	}
	return p[:end]
}

// PolyFit is an ordinary least-squares polynomial fit of y on x, solved via
// QR on the Vandermonde matrix. Pairs with a non-finite member are skipped.
func PolyFit(x, y []float64, degree int) (Polynomial, error) {
	if len(x) != len(y) {
		return nil, ErrDimensionMismatch
	}
	if degree < 1 {
		return nil, ErrBadDegree
	}

	var xs, ys []float64
	for i := range x {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	n := len(xs)
	if n < degree+1 {
		return nil, ErrInsufficientData
	}

	a := mat.NewDense(n, degree+1, nil)
	for i, xv := range xs {
		pow := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, pow)
			pow *= xv
		}
	}
	b := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return nil, err
	}

	out := make(Polynomial, degree+1)
	for j := 0; j <= degree; j++ {
		out[j] = coef.AtVec(j)
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
