package draw

import (
	"fmt"

	"github.com/RYZENNAVI/rendering/mp"
)

// BrushStroke sweeps pen along path and returns the resulting calligraphic
// outline as a Stroke of cubic Bézier pieces, colored color. It is the
// direct entry point into the pen-convolution core (mp.BrushMake,
// mp.SplitAtTees, mp.ConvolveAll, mp.ShowSegments) for callers that want the
// raw outline rather than a solved drawing path with an attached pen.
//
// path must be a solved path (its knots carry explicit or otherwise resolved
// control points, as produced by PathBuilder.Solve/SolveWithEngine). pen must
// pass mp.BrushMake; BrushStroke validates it internally and returns the
// rejection reason as an error if it does not.
func BrushStroke(path *mp.Path, pen *mp.Pen, color mp.Color) (*mp.Stroke, error) {
	if path == nil || path.Head == nil {
		return nil, fmt.Errorf("brushStroke: empty path")
	}
	if pen == nil {
		return nil, fmt.Errorf("brushStroke: nil pen")
	}

	ring, err := pen.ConvolutionRing()
	if err != nil {
		return nil, fmt.Errorf("brushStroke: %w", err)
	}
	workPen := &mp.Pen{Head: mp.CloneRing(ring.Head)}
	if outcome, err := mp.BrushMake(workPen); err != nil {
		return nil, fmt.Errorf("brushStroke: pen rejected (%s): %w", outcome, err)
	}

	forward := path.Copy()
	mp.SplitAtTees(forward, workPen)
	trace := mp.ConvolveAll(forward, workPen)

	reverse := forward.Copy()
	reverse.Head = mp.ReverseRing(reverse.Head)
	trace = append(trace, mp.ConvolveAll(reverse, workPen)...)

	stroke := &mp.Stroke{Color: color}
	mp.ShowSegments(trace, stroke)
	if len(stroke.Beziers) == 0 {
		return nil, fmt.Errorf("brushStroke: pen never met the path (degenerate geometry)")
	}
	return stroke, nil
}
