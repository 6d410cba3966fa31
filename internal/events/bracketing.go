package events

import (
	"fmt"
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Bisect locates a root of f inside [a, b] (a may exceed b for backward
// steps). f(a) and f(b) must have opposite signs; a same-sign pair means
// the crossing detected by sign comparison is not actually bracketed,
// which is reported as [ode.ErrNoBracketing]. The search stops when the
// bracket width drops below tol, and fails with [ode.ErrMaxIterations] if
// that takes more than maxIter halvings.
func Bisect(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	fb := f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, fmt.Errorf("%w: g(%.6g)=%.6g and g(%.6g)=%.6g have the same sign",
			ode.ErrNoBracketing, a, fa, b, fb)
	}

	for i := 0; i < maxIter; i++ {
		mid := a + (b-a)/2
		if math.Abs(b-a) <= tol {
			return mid, nil
		}
		fm := f(mid)
		if fm == 0 {
			return mid, nil
		}
		if (fm > 0) == (fa > 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return 0, fmt.Errorf("%w: bracket still %.6g wide after %d bisections (tol %.6g)",
		ode.ErrMaxIterations, math.Abs(b-a), maxIter, tol)
}
