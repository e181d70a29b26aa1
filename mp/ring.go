package mp

// Ring-level operations required by the pen-convolution core (BrushMake,
// SplitAtTees, ConvolveAll). A "ring" here is any cyclic Knot list reached
// through Next/Prev — the same representation Path already uses for both
// path rings and pen rings (Pen.Head).
//
// These differ from Path.Copy/Path.Reversed in one important way: reversal
// and insertion here mutate the caller's knots in place and never allocate a
// duplicate ring. Path.Copy/Path.Reversed exist for the Hobby-spline solver,
// which wants an independent path object to hold separate solver state;
// CloneRing/ReverseRing exist for the convolution core, which does not.

// InsertAfter splices new immediately after k in k's ring.
// Post: succ(k) == new, pred(succ(new)) == new.
func InsertAfter(k, newKnot *Knot) {
	if k == nil || newKnot == nil {
		return
	}
	next := k.Next
	newKnot.Prev = k
	newKnot.Next = next
	k.Next = newKnot
	if next != nil {
		next.Prev = newKnot
	}
}

// CloneRing produces an independent ring with the same positions, side
// descriptors and orientation as the ring starting at first.
func CloneRing(first *Knot) *Knot {
	if first == nil {
		return nil
	}
	var copies []*Knot
	cur := first
	for {
		copies = append(copies, CopyKnot(cur))
		cur = cur.Next
		if cur == nil || cur == first {
			break
		}
	}
	n := len(copies)
	for i, k := range copies {
		k.Next = copies[(i+1)%n]
		k.Prev = copies[(i-1+n)%n]
	}
	return copies[0]
}

// ReverseRing reverses traversal direction of the ring starting at first,
// in place: no new knots are allocated. For every knot, Left*/LType and
// Right*/RType payloads are swapped, and Next/Prev are exchanged.
//
// If exactly one knot had RType == KnotEndpoint (a path ring's boundary), the
// knot whose old RType was KnotEndpoint becomes the new head (after the
// swap its LType is KnotEndpoint, so the reversed path starts there); callers
// that are actually reversing a plain cycle (no endpoint anywhere) may ignore
// the returned head or keep using first, since all positions are equivalent.
func ReverseRing(first *Knot) *Knot {
	if first == nil {
		return nil
	}
	newHead := first
	cur := first
	for {
		next := cur.Next
		cur.LeftX, cur.RightX = cur.RightX, cur.LeftX
		cur.LeftY, cur.RightY = cur.RightY, cur.LeftY
		cur.LType, cur.RType = cur.RType, cur.LType
		cur.Next, cur.Prev = cur.Prev, cur.Next
		if cur.LType == KnotEndpoint {
			newHead = cur
		}
		cur = next
		if cur == nil || cur == first {
			break
		}
	}
	return newHead
}

// FreeRing severs every knot's Next/Prev links so the ring becomes ordinary
// garbage promptly. Go has no manual free; this is the idiomatic equivalent
// of the ring contract's free(ring) — disposal is optional (GC reclaims
// unreferenced knots regardless) but breaking the cycle removes any chance
// of a caller accidentally walking a ring that is meant to be gone.
func FreeRing(first *Knot) {
	if first == nil {
		return
	}
	cur := first
	for {
		next := cur.Next
		cur.Next = nil
		cur.Prev = nil
		if next == nil || next == first {
			break
		}
		cur = next
	}
}

// ringLen counts the knots in a cyclic ring starting at first.
func ringLen(first *Knot) int {
	if first == nil {
		return 0
	}
	n := 0
	cur := first
	for {
		n++
		cur = cur.Next
		if cur == nil || cur == first {
			break
		}
	}
	return n
}
