package mp

import "math"

// Numerical kernels for the pen-convolution core. Named distinctly from the
// existing solveQuadratic (path_ops.go, naive quadratic formula used by
// DirectionTimeOf) because the two must not be merged: DirectionTimeOf's
// roots are never taken close to a repeated-root or large-coefficient
// regime, while the tee-finding quadratics here are, and the naive formula
// visibly loses precision there — do not simplify this back into the naive
// (-b +/- sqrt(D))/(2a) form.

// ReduceAngleRadians maps a single-turn angle into (-pi, pi], mirroring the
// existing degree/fraction-scaled reduceAngle (math.go) but for plain
// radians, as the pen-validation turning angle needs.
func ReduceAngleRadians(theta Number) Number {
	if theta > math.Pi {
		return theta - 2*math.Pi
	}
	// <= rather than < at the lower bound: folds theta == -pi up to +pi
	// instead of leaving it fixed, matching the open end of the (-pi, pi]
	// range this returns into. The two forms only disagree exactly at
	// theta == -pi, a case BrushMake's ringLen(first) < 3 bigon rejection
	// makes unreachable for any pen edge pair that survives validation.
	if theta <= -math.Pi {
		return theta + 2*math.Pi
	}
	return theta
}

// SolveQuadraticStable returns the real roots of A*t^2 - 2*B*t + C = 0 — note
// the caller supplies B as -b/2 of the conventional A*t^2+b*t+C form. Roots
// are not sorted or filtered to any interval; callers filter to (0,1)
// themselves (SplitAtTees does this).
//
// Uses Citardauq's numerically stable form to avoid the catastrophic
// cancellation a naive (-b±sqrt(D))/(2a) suffers when b and sqrt(D) are close
// in magnitude (Pomax's Bézier primer and the MIT 18.335 numerical notes both
// describe this; the existing crossingPoint in math.go solves a related but
// differently-shaped fraction-scaled crossing problem and does not cover
// this general form, so it is not reused here).
func SolveQuadraticStable(a, b, c Number) []Number {
	switch {
	case a == 0 && b != 0:
		return []Number{c / (2 * b)}
	case a == 0 && b == 0:
		return nil
	case c == 0:
		if b != 0 {
			return []Number{0, 2 * b / a}
		}
		return []Number{0}
	}

	d := b*b - a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []Number{b / a}
	}

	sd := math.Sqrt(d)
	if b < 0 {
		return []Number{c / (b - sd), (b - sd) / a}
	}
	return []Number{c / (b + sd), (b + sd) / a}
}

// SolveBezierQuadratic reduces a degree-2 Bernstein root problem
// (1-t)^2*u + 2t(1-t)*v + t^2*w = 0 to SolveQuadraticStable(u-2v+w, u-v, u).
func SolveBezierQuadratic(u, v, w Number) []Number {
	return SolveQuadraticStable(u-2*v+w, u-v, u)
}
