package mp

// Stroke is the output of the pen-convolution pipeline: a flat list of cubic
// Bézier pieces forming the swept outline, plus the color it should be
// painted with.
type Stroke struct {
	Beziers [][4]Point
	Color   Color
	Length  int // number of cubic pieces in Beziers, kept in sync by ShowSegments
}

// ShowSegments groups trace into 4-tuples (start, c1, c2, end) and appends
// them to stroke.Beziers. trace's length is expected to be a multiple of 4;
// any trailing short group is dropped rather than panicking, since a caller
// passing a malformed trace has already violated ConvolveAll's contract.
//
// A typical driver (draw.BrushStroke) convolves the path and then a
// ReverseRing'd copy of it, and passes the concatenated trace here once, so
// the final stroke carries both edges of the swept outline. Further calls
// append to the same stroke.
func ShowSegments(trace []Point, stroke *Stroke) {
	if stroke == nil {
		return
	}
	n := len(trace) / 4
	if cap(stroke.Beziers)-len(stroke.Beziers) < n {
		grown := make([][4]Point, len(stroke.Beziers), len(stroke.Beziers)+n)
		copy(grown, stroke.Beziers)
		stroke.Beziers = grown
	}
	for i := 0; i < n; i++ {
		base := i * 4
		stroke.Beziers = append(stroke.Beziers, [4]Point{
			trace[base], trace[base+1], trace[base+2], trace[base+3],
		})
	}
	stroke.Length = len(stroke.Beziers)
}

// StrokeToPath rebuilds stroke's Beziers as a closed knot ring, so it can be
// stored on Path.Envelope and consumed by the existing SVG backend the same
// way a MakeEnvelope result once was. Each 4-tuple (start, c1, c2, end)
// becomes one cubic segment; tuple i's end is expected to equal tuple i+1's
// start (ConvolveAll's emission order guarantees this within one convolution
// pass, and BrushStroke runs the forward and reverse passes back to back).
func StrokeToPath(stroke *Stroke) *Path {
	if stroke == nil || len(stroke.Beziers) == 0 {
		return nil
	}
	path := NewPath()
	knots := make([]*Knot, len(stroke.Beziers))
	for i, b := range stroke.Beziers {
		k := NewKnot()
		k.XCoord, k.YCoord = b[0].X, b[0].Y
		k.RightX, k.RightY = b[1].X, b[1].Y
		k.LType, k.RType = KnotExplicit, KnotExplicit
		path.Append(k)
		knots[i] = k
	}
	for i, b := range stroke.Beziers {
		knots[i].Next.LeftX, knots[i].Next.LeftY = b[2].X, b[2].Y
	}
	return path
}
