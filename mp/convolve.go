package mp

// ConvolveAll walks every segment of path and, for each, convolves it against
// every knot of pen's validated ring, appending emitted cubic
// pieces to trace as flat (start, c1, c2, end) point quadruples.
//
// path must already have passed SplitAtTees with the same pen; pen must
// already have passed BrushMake. Both are read-only.
func ConvolveAll(path *Path, pen *Pen) []Point {
	if path == nil || path.Head == nil || pen == nil || pen.Head == nil {
		return nil
	}
	var trace []Point
	start := path.Head
	p := start
	for {
		if p.RType != KnotExplicit {
			break
		}
		q := p.Next
		vOut := Point{X: p.RightX - p.XCoord, Y: p.RightY - p.YCoord}
		var vIn Point
		if p.LType == KnotExplicit {
			vIn = Point{X: p.XCoord - p.LeftX, Y: p.YCoord - p.LeftY}
		} else {
			vIn = Point{X: -vOut.X, Y: -vOut.Y}
		}
		vNext := Point{X: q.XCoord - p.XCoord, Y: q.YCoord - p.YCoord}

		r := pen.Head
		for {
			trace = convolve(p, q, vIn, vOut, vNext, r, trace)
			r = r.Next
			if r == pen.Head {
				break
			}
		}

		p = q
		if p == nil || p == start || p.RType != KnotExplicit {
			break
		}
	}
	return trace
}

// clockwise reports whether cross(a, b) >= 0, i.e. b lies counter-clockwise
// from a or is parallel to it (a non-strict left turn). A small tolerance
// treats near-parallel vectors (|cross| < 1e-12) as clockwise too, avoiding
// sign flicker on collinear pairs; false means a strict right turn.
func clockwise(a, b Point) bool {
	c := a.Cross(b)
	if c > -1e-12 && c < 1e-12 {
		return true
	}
	return c >= 0
}

// withinTurn decides whether v2 lies in the convex angular arc swept
// counter-clockwise from v1 to v3.
func withinTurn(v1, v2, v3 Point) bool {
	if !clockwise(v1, v2) {
		return clockwise(v2, v3) && clockwise(v3, v1)
	}
	return clockwise(v1, v3) && clockwise(v3, v2)
}

// convolve classifies the turn formed by path segment p->q against pen knot
// r's edge directions and appends 0, 1, or 2 emitted cubic pieces to trace.
func convolve(p, q *Knot, vIn, vOut, vNext Point, r *Knot, trace []Point) []Point {
	pred := r.Prev
	succ := r.Next
	v4 := Point{X: r.XCoord - pred.XCoord, Y: r.YCoord - pred.YCoord}
	v5 := Point{X: succ.XCoord - r.XCoord, Y: succ.YCoord - r.YCoord}

	if withinTurn(vIn, vOut, v5) {
		trace = append(trace,
			Point{X: p.XCoord + r.XCoord, Y: p.YCoord + r.YCoord},
			Point{X: p.RightX + r.XCoord, Y: p.RightY + r.YCoord},
			Point{X: q.LeftX + r.XCoord, Y: q.LeftY + r.YCoord},
			Point{X: q.XCoord + r.XCoord, Y: q.YCoord + r.YCoord},
		)
	}

	if withinTurn(v4, v5, vNext) {
		s := succ
		trace = append(trace,
			Point{X: r.XCoord + p.XCoord, Y: r.YCoord + p.YCoord},
			Point{X: r.RightX + p.XCoord, Y: r.RightY + p.YCoord},
			Point{X: s.LeftX + p.XCoord, Y: s.LeftY + p.YCoord},
			Point{X: s.XCoord + p.XCoord, Y: s.YCoord + p.YCoord},
		)
	}

	return trace
}
