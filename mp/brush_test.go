package mp

import (
	"errors"
	"math"
	"testing"
)

// ringFromPoints builds a cyclic, all-Open ring from points in order.
func ringFromPoints(pts [][2]Number) *Knot {
	var head, tail *Knot
	for _, p := range pts {
		k := &Knot{XCoord: p[0], YCoord: p[1], LType: KnotOpen, RType: KnotOpen}
		if head == nil {
			head = k
			tail = k
			continue
		}
		tail.Next = k
		k.Prev = tail
		tail = k
	}
	tail.Next = head
	head.Prev = tail
	return head
}

// Scenario 3: a CCW unit-circle-inscribed square-ish diamond validates.
func TestBrushMakeAcceptsCCWDiamond(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{{1, 0}, {0, 1}, {-1, 0}, {0, -1}})}
	outcome, err := BrushMake(pen)
	if err != nil || outcome != BrushOk {
		t.Fatalf("BrushMake(CCW diamond) = %v, %v; want Ok", outcome, err)
	}
}

// Scenario 3 (reversed): the same ring walked clockwise is rejected.
func TestBrushMakeRejectsCWDiamond(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{{1, 0}, {0, -1}, {-1, 0}, {0, 1}})}
	outcome, err := BrushMake(pen)
	if outcome != BrushNonLeftTurn || !errors.Is(err, ErrNonLeftTurn) {
		t.Fatalf("BrushMake(CW diamond) = %v, %v; want NonLeftTurn", outcome, err)
	}
}

// R1: brush_make(brush_make_square()) returns Ok.
func TestBrushMakeAcceptsUnitSquare(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{
		{0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5},
	})}
	outcome, err := BrushMake(pen)
	if err != nil || outcome != BrushOk {
		t.Fatalf("BrushMake(unit square) = %v, %v; want Ok", outcome, err)
	}
	// Re-running on the now-explicit ring must still return Ok (idempotent
	// validation of an already-validated ring).
	if outcome, err := BrushMake(pen); err != nil || outcome != BrushOk {
		t.Fatalf("second BrushMake(unit square) = %v, %v; want Ok", outcome, err)
	}
}

// P2: after Ok, every knot carries Explicit controls on the 1/3-2/3 chord.
func TestBrushMakeMaterializesThirdChordControls(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{
		{0, 0}, {3, 0}, {3, 3}, {0, 3},
	})}
	if outcome, err := BrushMake(pen); err != nil || outcome != BrushOk {
		t.Fatalf("BrushMake(square) = %v, %v; want Ok", outcome, err)
	}
	p := pen.Head
	for i := 0; i < 4; i++ {
		q := p.Next
		if p.RType != KnotExplicit || q.LType != KnotExplicit {
			t.Fatalf("knot %d: side descriptors not Explicit after BrushMake", i)
		}
		wantRX := p.XCoord + (q.XCoord-p.XCoord)*oneThird
		wantRY := p.YCoord + (q.YCoord-p.YCoord)*oneThird
		if math.Abs(p.RightX-wantRX) > 1e-9 || math.Abs(p.RightY-wantRY) > 1e-9 {
			t.Errorf("knot %d: right control = (%v,%v), want (%v,%v)", i, p.RightX, p.RightY, wantRX, wantRY)
		}
		wantLX := q.XCoord - (q.XCoord-p.XCoord)*oneThird
		wantLY := q.YCoord - (q.YCoord-p.YCoord)*oneThird
		if math.Abs(q.LeftX-wantLX) > 1e-9 || math.Abs(q.LeftY-wantLY) > 1e-9 {
			t.Errorf("knot %d successor: left control = (%v,%v), want (%v,%v)", i, q.LeftX, q.LeftY, wantLX, wantLY)
		}
		p = q
	}
}

// B1: a pen with exactly two distinct points is rejected.
func TestBrushMakeRejectsBigon(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{{0, 0}, {1, 0}})}
	outcome, _ := BrushMake(pen)
	if outcome != BrushNonLeftTurn {
		t.Fatalf("BrushMake(bigon) = %v, want NonLeftTurn", outcome)
	}
}

// B2 / scenario 5: a duplicated adjacent point is rejected.
func TestBrushMakeRejectsDuplicatePoint(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{{0, 0}, {1, 0}, {1, 0}, {0, 1}})}
	outcome, err := BrushMake(pen)
	if outcome != BrushDuplicatePoint || !errors.Is(err, ErrDuplicatePoint) {
		t.Fatalf("BrushMake(duplicate point) = %v, %v; want DuplicatePoint", outcome, err)
	}
}

// Scenario 5 variant: three distinct collinear points pass the duplicate-point
// check (no two neighbours coincide) and fail on the zero turn at the middle
// knot, where the ring runs straight on.
func TestBrushMakeRejectsCollinearRing(t *testing.T) {
	pen := &Pen{Head: ringFromPoints([][2]Number{{0, 0}, {1, 0}, {2, 0}})}
	outcome, _ := BrushMake(pen)
	if outcome != BrushNonLeftTurn {
		t.Fatalf("BrushMake(collinear ring) = %v, want NonLeftTurn", outcome)
	}
}

// Scenario 6: a ring that walks the unit circle twice winds more than once.
func TestBrushMakeRejectsDoubleWoundRing(t *testing.T) {
	pts := make([][2]Number, 0, 8)
	for i := 0; i < 2; i++ {
		pts = append(pts,
			[2]Number{1, 0}, [2]Number{0, 1}, [2]Number{-1, 0}, [2]Number{0, -1},
		)
	}
	pen := &Pen{Head: ringFromPoints(pts)}
	outcome, err := BrushMake(pen)
	if outcome != BrushTooManyTurns || !errors.Is(err, ErrTooManyTurns) {
		t.Fatalf("BrushMake(double-wound ring) = %v, %v; want TooManyTurns", outcome, err)
	}
}
