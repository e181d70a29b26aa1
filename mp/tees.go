package mp

import (
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// SplitAtTees inserts new knots into path at every tee parameter of every
// segment: curvature-inflection tees and pen-slope tees, the latter using
// pen's validated edge directions. path is mutated in place; pen is
// read-only (it must already have passed BrushMake).
//
// Segments are walked while p.RType == KnotExplicit, stopping at the next
// knot with RType == KnotEndpoint (a path-ring boundary) or on returning to
// the start of a cyclic path, matching segment-chain convention.
func SplitAtTees(path *Path, pen *Pen) {
	if path == nil || path.Head == nil || pen == nil || pen.Head == nil {
		return
	}
	start := path.Head
	p := start
	for {
		if p.RType != KnotExplicit {
			break
		}
		q := p.Next
		tees := segmentTees(p, q, pen)
		applyTees(p, tees)
		// p.Next now points past any knots inserted by applyTees.
		p = advanceToSegmentEnd(p, q)
		if p == nil || p == start || p.RType != KnotExplicit {
			break
		}
	}
}

// advanceToSegmentEnd walks from p to the knot that was q before splitting —
// i.e. past every knot applyTees inserted between them.
func advanceToSegmentEnd(p, originalQ *Knot) *Knot {
	cur := p.Next
	for cur != originalQ && cur != nil && cur != p {
		cur = cur.Next
	}
	return cur
}

// segmentTees computes every tee parameter for segment p->q, in ascending
// order with duplicates and boundary values (0, 1) removed; a root within
// 1e-9 of 0 or 1 counts as a boundary value.
func segmentTees(p, q *Knot, pen *Pen) []Number {
	// Upper bound: 2 inflection roots plus up to one slope root per pen edge.
	// Grown up front the way gioui-gio's text shaper grows its glyph-output
	// buffer before filling it (text/gotext.go), rather than letting append
	// reallocate repeatedly.
	raw := slices.Grow(make([]Number, 0, 2), 2+ringLen(pen.Head))
	raw = append(raw, inflectionTees(p, q)...)
	raw = append(raw, penSlopeTees(p, q, pen)...)

	var tees []Number
	for _, t := range raw {
		if t > 1e-9 && t < 1-1e-9 {
			tees = append(tees, t)
		}
	}
	sort.Slice(tees, func(i, j int) bool { return tees[i] < tees[j] })

	out := tees[:0]
	for i, t := range tees {
		if i == 0 || t-out[len(out)-1] >= 1e-9 {
			out = append(out, t)
		}
	}
	return out
}

// inflectionTees translates the segment so p is the origin and rotates so q
// lies on +x, then solves the resulting quadratic for curvature-sign
// crossings.
func inflectionTees(p, q *Knot) []Number {
	qx, qy := q.XCoord-p.XCoord, q.YCoord-p.YCoord
	length := math.Hypot(qx, qy)
	if length == 0 {
		return nil
	}
	cosA, sinA := qx/length, qy/length
	rotate := func(dx, dy Number) (Number, Number) {
		return dx*cosA + dy*sinA, -dx*sinA + dy*cosA
	}
	x0, y0 := rotate(p.RightX-p.XCoord, p.RightY-p.YCoord)
	x1, y1 := rotate(q.LeftX-p.XCoord, q.LeftY-p.YCoord)
	x2, _ := rotate(q.XCoord-p.XCoord, q.YCoord-p.YCoord)
	_ = x2 // x2 == length by construction; y2 is always 0 and unused

	a := x1 * y0
	b := x2 * y0
	c := x0 * y1
	d := x2 * y1

	bigA := 18 * (-3*a + 2*b + 3*c - d)
	bigB := 9 * (-3*a + b + 3*c)
	bigC := 18 * (c - a)
	return SolveQuadraticStable(bigA, bigB, bigC)
}

// penSlopeTees finds, for every validated pen edge direction, the segment
// parameters where the segment's tangent is collinear with that edge.
func penSlopeTees(p, q *Knot, pen *Pen) []Number {
	x0, y0 := p.RightX-p.XCoord, p.RightY-p.YCoord
	x1, y1 := q.LeftX-p.RightX, q.LeftY-p.RightY
	x2, y2 := q.XCoord-q.LeftX, q.YCoord-q.LeftY

	var tees []Number
	w := pen.Head
	for {
		dx := w.Next.XCoord - w.XCoord
		dy := w.Next.YCoord - w.YCoord
		// Tangent(t) x (dx,dy) == 0, expanded in the velocity control
		// points (x0,y0),(x1,y1),(x2,y2) (pairwise differences of the
		// curve's own control points).
		u := y0*dx - x0*dy
		v := y1*dx - x1*dy
		wv := y2*dx - x2*dy
		tees = append(tees, SolveBezierQuadratic(u, v, wv)...)
		w = w.Next
		if w == pen.Head {
			break
		}
	}
	return tees
}

// applyTees splits segment p->... at each tee, walking ascending and
// renormalizing to the remaining sub-segment's local parameter.
func applyTees(p *Knot, tees []Number) {
	s := Number(0)
	cur := p
	for _, t := range tees {
		if t <= s {
			continue
		}
		tPrime := (t - s) / (1 - s)
		if tPrime <= 0 || tPrime >= 1 {
			continue
		}
		r := splitCubicAt(cur, tPrime)
		if r == nil {
			continue
		}
		cur = r
		s = t
	}
}
