package mp

import (
	"errors"
	"fmt"
	"math"
)

// BrushOutcome is the user-visible result of BrushMake.
type BrushOutcome int

const (
	// BrushOk indicates the ring is a valid, strictly convex, CCW pen; every
	// knot now carries an explicit control point on both sides.
	BrushOk BrushOutcome = iota
	// BrushDuplicatePoint indicates two adjacent pen knots coincide.
	BrushDuplicatePoint
	// BrushNonLeftTurn indicates a right turn or straight run somewhere in
	// the ring (not strictly convex, or not counter-clockwise).
	BrushNonLeftTurn
	// BrushTooManyTurns indicates the ring winds more than once (total
	// turning angle exceeds 2*pi).
	BrushTooManyTurns
)

func (o BrushOutcome) String() string {
	switch o {
	case BrushOk:
		return "Ok"
	case BrushDuplicatePoint:
		return "DuplicatePoint"
	case BrushNonLeftTurn:
		return "NonLeftTurn"
	case BrushTooManyTurns:
		return "TooManyTurns"
	default:
		return "Unknown"
	}
}

// Sentinel errors for BrushMake failures. Wrapped with %w so callers further
// up the stack (draw.BrushStroke) can errors.Is against them without caring
// about the exact message.
var (
	ErrDuplicatePoint = errors.New("pen-convolution: duplicate adjacent pen point")
	ErrNonLeftTurn    = errors.New("pen-convolution: pen is not strictly convex and counter-clockwise")
	ErrTooManyTurns   = errors.New("pen-convolution: pen winds more than once")
)

// BrushMake validates pen as a closed, strictly convex, counter-clockwise
// ring of total turning angle in (0, 2*pi], and on success materializes
// explicit cubic controls on the 1/3-2/3 chord of every edge.
//
// It mutates pen.Head's ring in place even on failure (control points for
// edges already visited before the rejected knot are left set); a rejected
// pen must not be used for convolution regardless.
func BrushMake(pen *Pen) (BrushOutcome, error) {
	if pen == nil || pen.Head == nil {
		return BrushNonLeftTurn, fmt.Errorf("brushMake: %w", ErrNonLeftTurn)
	}
	first := pen.Head
	if ringLen(first) < 3 {
		// A bigon (or single point) has no strictly convex interior turn to
		// validate; treat it the same as a failed convexity check rather
		// than letting its 180-degree "turns" accumulate to exactly 2*pi
		// and pass by coincidence.
		return BrushNonLeftTurn, fmt.Errorf("brushMake: %w", ErrNonLeftTurn)
	}

	// Step 1: explicit 1/3-2/3 chord controls on every directed edge.
	p := first
	for {
		q := p.Next
		dx, dy := q.XCoord-p.XCoord, q.YCoord-p.YCoord
		if dx == 0 && dy == 0 {
			return BrushDuplicatePoint, fmt.Errorf("brushMake: %w", ErrDuplicatePoint)
		}
		p.RightX, p.RightY = p.XCoord+dx*oneThird, p.YCoord+dy*oneThird
		q.LeftX, q.LeftY = q.XCoord-dx*oneThird, q.YCoord-dy*oneThird
		p.RType, q.LType = KnotExplicit, KnotExplicit
		p = q
		if p == first {
			break
		}
	}

	// Step 2-6: running tangent, turn classification, accumulation.
	tail := first.Prev
	dxPrev, dyPrev := first.XCoord-tail.XCoord, first.YCoord-tail.YCoord
	var alpha Number
	p = first
	for {
		q := p.Next
		du, dv := q.XCoord-p.XCoord, q.YCoord-p.YCoord
		theta := ReduceAngleRadians(math.Atan2(dv, du) - math.Atan2(dyPrev, dxPrev))
		if theta <= 0 {
			return BrushNonLeftTurn, fmt.Errorf("brushMake: %w", ErrNonLeftTurn)
		}
		alpha += theta
		dxPrev, dyPrev = du, dv
		p = q
		if p == first {
			break
		}
	}
	if alpha > 2*math.Pi {
		return BrushTooManyTurns, fmt.Errorf("brushMake: %w", ErrTooManyTurns)
	}
	return BrushOk, nil
}

// ConvolutionRing returns a knot ring suitable for BrushMake/SplitAtTees/
// ConvolveAll. For a polygonal/Bézier pen (Pen.Elliptical == false) this is
// simply pen.Head. For an elliptical pen (the compact PenCircle matrix
// representation, mp.w:10440-10452) it approximates the ellipse with the
// module's existing unit-circle Bézier path (predefined.go's FullCircle)
// transformed by the pen's stored basis — the same construction MetaPost
// itself uses when an elliptical pen must be treated as an explicit polygon
// (mp_make_ellipse, mp.c ~10950ff).
func (pen *Pen) ConvolutionRing() (*Path, error) {
	if pen == nil || pen.Head == nil {
		return nil, fmt.Errorf("brushMake: %w", ErrNonLeftTurn)
	}
	if !pen.Elliptical {
		return &Path{Head: pen.Head}, nil
	}
	h := pen.Head
	t := Transform{
		Txx: h.LeftX, Tyx: h.LeftY,
		Txy: h.RightX, Tyy: h.RightY,
		Tx: h.XCoord, Ty: h.YCoord,
	}
	ring := t.ApplyToPath(FullCircle())
	// FullCircle is CW-to-CCW already consistent with MetaPost's dir(t);
	// a reflecting (negative-determinant) transform flips orientation, so
	// correct it back to CCW for BrushMake.
	if t.Determinant() < 0 {
		ring.Head = ReverseRing(ring.Head)
	}
	return ring, nil
}
