package tracking

import "github.com/dshills/revpoint/internal/engine/buffer"

// Bias selects where a position swallowed by a deleted span lands.
type Bias uint8

const (
	// BiasStart collapses a swallowed position to the start of the edit.
	BiasStart Bias = iota

	// BiasEnd collapses a swallowed position to the end of the inserted text.
	BiasEnd
)

// UpdateRange computes where tracked lies after e is applied to the
// document it anchors into. It returns the new range and true, or tracked
// unchanged and false when the edit cannot move it.
//
// The edit is classified against the tracked range in priority order:
//
//  1. The edit starts at or after tracked.End: nothing moves.
//  2. The edit starts at or before tracked.Start: both boundaries shift.
//     If the deleted span ends on an earlier line only line numbers move;
//     if it ends on the start line the start character is re-based on the
//     end of the inserted text; if it runs past the start, the start
//     collapses onto the edit start.
//  3. The edit starts inside the range: the start is kept and only the
//     end boundary is recomputed.
//
// Both boundaries are always mapped monotonically, so a valid tracked range
// yields a valid result.
func UpdateRange(tracked buffer.Range, e buffer.Edit) (buffer.Range, bool) {
	d := e.Deleted

	var next buffer.Range
	switch {
	case e.IsNoOp(), d.Start.Compare(tracked.End) >= 0:
		return tracked, false
	case d.Start.Compare(tracked.Start) <= 0:
		next = updateFromBefore(tracked, e)
	default:
		next = updateInterior(tracked, e)
	}

	if next == tracked {
		return tracked, false
	}
	return next, true
}

// updateFromBefore handles edits starting at or before tracked.Start.
func updateFromBefore(tracked buffer.Range, e buffer.Edit) buffer.Range {
	d := e.Deleted
	delta := e.LineDelta()

	switch {
	case d.End.Line < tracked.Start.Line:
		// Entirely on earlier lines: characters on the tracked lines are
		// untouched, only line numbers move.
		return buffer.Range{
			Start: shiftLine(tracked.Start, delta),
			End:   shiftLine(tracked.End, delta),
		}

	case d.End.Compare(tracked.Start) <= 0:
		// Ends on the start line, at or before the start. The end only
		// follows the character shift when it shares that line.
		return buffer.Range{
			Start: rebase(tracked.Start, e),
			End:   mapEnd(tracked.End, e),
		}

	default:
		// The deleted span swallows the start boundary.
		return buffer.Range{
			Start: d.Start,
			End:   mapEnd(tracked.End, e),
		}
	}
}

// updateInterior handles edits starting strictly inside tracked.
func updateInterior(tracked buffer.Range, e buffer.Edit) buffer.Range {
	return buffer.Range{
		Start: tracked.Start,
		End:   mapEnd(tracked.End, e),
	}
}

// mapEnd maps an end boundary that lies after the edit start.
func mapEnd(p buffer.Position, e buffer.Edit) buffer.Position {
	d := e.Deleted
	switch {
	case p.Before(d.End):
		// Swallowed: widen to cover the replacement text.
		return e.InsertionEnd()
	case p.Line == d.End.Line:
		return rebase(p, e)
	default:
		return shiftLine(p, e.LineDelta())
	}
}

// rebase moves p, which sits on the last deleted line at or after the
// deleted span, keeping its distance from the end of the inserted text.
func rebase(p buffer.Position, e buffer.Edit) buffer.Position {
	end := e.InsertionEnd()
	return buffer.Position{
		Line:      end.Line,
		Character: end.Character + p.Character - e.Deleted.End.Character,
	}
}

func shiftLine(p buffer.Position, delta int) buffer.Position {
	return buffer.Position{Line: p.Line + delta, Character: p.Character}
}

// MapPosition returns the post-edit location of a single position.
// Positions before the edit are unchanged; positions at or after the
// deleted span move with the text that follows them; positions inside the
// deleted span collapse according to bias.
func MapPosition(p buffer.Position, e buffer.Edit, bias Bias) buffer.Position {
	d := e.Deleted
	switch {
	case p.Before(d.Start):
		return p
	case p.Before(d.End):
		if bias == BiasStart {
			return d.Start
		}
		return e.InsertionEnd()
	case p.Line == d.End.Line:
		return rebase(p, e)
	default:
		return shiftLine(p, e.LineDelta())
	}
}

// ApplyEdits folds a sequence of edits over tracked. Each edit must be
// expressed in the coordinates produced by the previous one, which is the
// order editors report them in. It returns true if any edit moved the range.
func ApplyEdits(tracked buffer.Range, edits ...buffer.Edit) (buffer.Range, bool) {
	changed := false
	for _, e := range edits {
		var moved bool
		tracked, moved = UpdateRange(tracked, e)
		changed = changed || moved
	}
	return tracked, changed
}
