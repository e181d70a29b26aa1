package mp

import "math"

// PathNormal holds a normalized direction and its length for a path edge.
type PathNormal struct {
	DX, DY Number // edge delta
	Len    Number // edge length
	NX, NY Number // unit normal (rotated left)
}

// PathNormals computes edge deltas and unit normals for a path. Used by
// callers that need an outward-facing direction per segment independent of
// pen shape (arrow placement, bounding padding) rather than the pen-swept
// outline itself, which ConvolveAll/BrushStroke produce.
func PathNormals(path *Path) []PathNormal {
	if path == nil || path.Head == nil {
		return nil
	}
	var normals []PathNormal
	cur := path.Head
	for {
		next := cur.Next
		if next == nil {
			break
		}
		dx := next.XCoord - cur.XCoord
		dy := next.YCoord - cur.YCoord
		length := math.Hypot(float64(dx), float64(dy))
		n := PathNormal{DX: dx, DY: dy, Len: Number(length)}
		if length != 0 {
			n.NX = -dy / Number(length)
			n.NY = dx / Number(length)
		}
		normals = append(normals, n)
		cur = next
		if cur == path.Head || cur.RType == KnotEndpoint {
			break
		}
	}
	return normals
}

// PenBBox returns the axis-aligned bounding box of a pen outline, used by the
// SVG backend to pad a stroked path's viewport without running the full
// convolution (svg/writer.go).
func PenBBox(pen *Pen) (minx, miny, maxx, maxy Number, ok bool) {
	pts := penPoints(pen)
	if len(pts) == 0 {
		return 0, 0, 0, 0, false
	}
	minx, miny = math.Inf(1), math.Inf(1)
	maxx, maxy = math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		if pt[0] < minx {
			minx = pt[0]
		}
		if pt[0] > maxx {
			maxx = pt[0]
		}
		if pt[1] < miny {
			miny = pt[1]
		}
		if pt[1] > maxy {
			maxy = pt[1]
		}
	}
	return minx, miny, maxx, maxy, true
}

// splitCubicAt de Casteljau-splits the cubic segment p->p.Next at parameter t,
// inserting a new explicit knot r at the split point. Used by SplitAtTees
// (tees.go) to subdivide a path at every inflection and pen-slope tee before
// convolution.
func splitCubicAt(p *Knot, t Number) *Knot {
	if p == nil || p.Next == nil {
		return nil
	}
	q := p.Next
	x0, y0 := p.XCoord, p.YCoord
	x1, y1 := p.RightX, p.RightY
	x2, y2 := q.LeftX, q.LeftY
	x3, y3 := q.XCoord, q.YCoord

	lerp := func(a, b Number) Number { return a + t*(b-a) }
	x01, y01 := lerp(x0, x1), lerp(y0, y1)
	x12, y12 := lerp(x1, x2), lerp(y1, y2)
	x23, y23 := lerp(x2, x3), lerp(y2, y3)
	x012, y012 := lerp(x01, x12), lerp(y01, y12)
	x123, y123 := lerp(x12, x23), lerp(y12, y23)
	x0123, y0123 := lerp(x012, x123), lerp(y012, y123)

	p.RightX, p.RightY = x01, y01
	q.LeftX, q.LeftY = x23, y23

	r := NewKnot()
	r.XCoord, r.YCoord = x0123, y0123
	r.LeftX, r.LeftY = x012, y012
	r.RightX, r.RightY = x123, y123
	r.LType, r.RType = KnotExplicit, KnotExplicit

	r.Prev = p
	r.Next = q
	p.Next = r
	q.Prev = r
	return r
}
