package mp

import (
	"math"
	"testing"
)

func straightSegment(px, py, rx, ry, qx, qy, lx, ly Number) (*Knot, *Knot) {
	p := &Knot{XCoord: px, YCoord: py, RightX: rx, RightY: ry, LType: KnotEndpoint, RType: KnotExplicit}
	q := &Knot{XCoord: qx, YCoord: qy, LeftX: lx, LeftY: ly, LType: KnotExplicit, RType: KnotEndpoint}
	p.Next, q.Prev = q, p
	return p, q
}

// Scenario 4: a single cubic (0,0)->(10,0) with controls (0,10),(10,-10) has
// exactly one inflection, at its midpoint.
func TestInflectionTeesFindsMidpointRoot(t *testing.T) {
	p, q := straightSegment(0, 0, 0, 10, 10, 0, 10, -10)
	roots := inflectionTees(p, q)
	if len(roots) != 1 {
		t.Fatalf("inflectionTees returned %d roots, want 1: %v", len(roots), roots)
	}
	if math.Abs(roots[0]-0.5) > 1e-9 {
		t.Errorf("inflection root = %v, want 0.5", roots[0])
	}
}

// A straight, unaccelerated cubic (control points on the chord) has no sign
// change in curvature to find.
func TestInflectionTeesStraightLineHasNoRoots(t *testing.T) {
	p, q := straightSegment(0, 0, 10.0/3, 0, 10, 0, 20.0/3, 0)
	roots := inflectionTees(p, q)
	if len(roots) != 0 {
		t.Errorf("inflectionTees(straight line) = %v, want no roots", roots)
	}
}

// Scenario 4, continued: after SplitAtTees the path gains a knot at the
// inflection point (5,0), plus two more from the square pen's horizontal
// edges' pen-slope tees. Worked out by hand from penSlopeTees/
// SolveBezierQuadratic against this exact curve and pen: for the pen edge
// direction (-1,0) (and symmetrically (1,0)), the quadratic reduces to roots
// t = 0.211325 and t = 0.788675 (both strictly inside (0,1); the vertical
// edges' roots land exactly on 0/1 and are dropped by segmentTees' t>0&&t<1
// filter). Evaluating the cubic at those two parameters (point-symmetric
// about the curve's own midpoint, since P0+P3 == P1+P2 == (10,0)) places the
// knots at approximately (1.1515, 2.8868) and (8.8485, -2.8868). So
// SplitAtTees inserts 3 knots total here, not 1: 5 knots after the split.
func TestSplitAtTeesInsertsInflectionKnot(t *testing.T) {
	path := NewPath()
	p := &Knot{XCoord: 0, YCoord: 0, RightX: 0, RightY: 10, LType: KnotEndpoint, RType: KnotExplicit}
	q := &Knot{XCoord: 10, YCoord: 0, LeftX: 10, LeftY: -10, LType: KnotExplicit, RType: KnotEndpoint}
	path.Append(p)
	path.Append(q)

	pen := &Pen{Head: ringFromPoints([][2]Number{
		{0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5},
	})}
	if outcome, err := BrushMake(pen); err != nil || outcome != BrushOk {
		t.Fatalf("BrushMake(pen) = %v, %v; want Ok", outcome, err)
	}

	SplitAtTees(path, pen)

	const tol = 0.01
	near := func(x, y, wantX, wantY Number) bool {
		return math.Abs(x-wantX) < tol && math.Abs(y-wantY) < tol
	}

	count := 0
	var mid, slopeLo, slopeHi *Knot
	cur := path.Head
	for {
		count++
		switch {
		case near(cur.XCoord, cur.YCoord, 5, 0):
			mid = cur
		case near(cur.XCoord, cur.YCoord, 1.1515, 2.8868):
			slopeLo = cur
		case near(cur.XCoord, cur.YCoord, 8.8485, -2.8868):
			slopeHi = cur
		}
		cur = cur.Next
		if cur == nil || cur == path.Head {
			break
		}
	}
	if count != 5 {
		t.Fatalf("path has %d knots after SplitAtTees, want 5 (original 2, 1 inflection tee, 2 pen-slope tees)", count)
	}
	if mid == nil {
		t.Fatal("no knot found at the expected inflection point (5,0)")
	}
	if slopeLo == nil {
		t.Fatal("no knot found at the expected pen-slope tee (~1.1515,~2.8868)")
	}
	if slopeHi == nil {
		t.Fatal("no knot found at the expected pen-slope tee (~8.8485,~-2.8868)")
	}

	// R2: splitting an already-subdivided path a second time must not insert
	// any further knots (every remaining candidate tee lands at 0 or 1).
	SplitAtTees(path, pen)
	count2 := 0
	cur = path.Head
	for {
		count2++
		cur = cur.Next
		if cur == nil || cur == path.Head {
			break
		}
	}
	if count2 != count {
		t.Fatalf("second SplitAtTees changed knot count: %d -> %d", count, count2)
	}
}
