package math

// Solve2x2 solves the linear system
//
//	a*x + c*y = e
//	b*x + d*y = f
//
// with Cramer's rule. ok is false when the determinant is exactly zero;
// no tolerance is applied, so nearly singular systems still produce a result.
func Solve2x2(a, b, c, d, e, f float64) (x, y float64, ok bool) {
	det := a*d - b*c
	if det == 0 {
		return 0, 0, false
	}
	x = (e*d - c*f) / det
	y = (a*f - e*b) / det
	return x, y, true
}
