package mp

import "fmt"

// ConvolveEnvelope computes the pen-swept outline of path under pen by
// subdividing at every tee and convolving both directions of travel,
// producing a single closed Path suitable for Path.Envelope. It replaces the
// old OffsetOutline/MakeEnvelope pipeline for non-elliptical pens.
//
// path and pen are read-only; internally a working copy of path is split and
// convolved, once forward and once reversed, so the returned envelope traces
// both edges of the stroke.
func ConvolveEnvelope(path *Path, pen *Pen) (*Path, error) {
	if path == nil || path.Head == nil {
		return nil, fmt.Errorf("convolveEnvelope: empty path")
	}
	if pen == nil {
		return nil, fmt.Errorf("convolveEnvelope: nil pen")
	}

	ring, err := pen.ConvolutionRing()
	if err != nil {
		return nil, fmt.Errorf("convolveEnvelope: %w", err)
	}
	workPen := &Pen{Head: CloneRing(ring.Head)}
	if outcome, err := BrushMake(workPen); err != nil {
		return nil, fmt.Errorf("convolveEnvelope: pen rejected (%s): %w", outcome, err)
	}

	forward := path.Copy()
	SplitAtTees(forward, workPen)
	trace := ConvolveAll(forward, workPen)

	reverse := forward.Copy()
	reverse.Head = ReverseRing(reverse.Head)
	trace = append(trace, ConvolveAll(reverse, workPen)...)

	stroke := &Stroke{Color: path.Style.Stroke}
	ShowSegments(trace, stroke)

	envelope := StrokeToPath(stroke)
	if envelope == nil {
		return nil, fmt.Errorf("convolveEnvelope: empty outline")
	}
	return envelope, nil
}
