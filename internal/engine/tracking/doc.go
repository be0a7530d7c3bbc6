// Package tracking keeps recorded text ranges anchored while the document
// they point into is edited.
//
// A tracked range stores only line/character coordinates; there is no
// content hash or token anchor. Each reported edit is therefore classified
// by where its deleted span sits relative to the range boundaries:
//
//   - edits at or after the range end cannot move it
//   - edits at or before the range start shift both boundaries, re-basing
//     character offsets when the edit ends on the start line
//   - edits inside the range move only the end boundary
//
// Character arithmetic is only meaningful within a single line, which is why
// every branch first asks whether the edit reaches the boundary's line.
//
// # Usage
//
//	r := buffer.MustRange(5, 0, 5, 10)
//	e := buffer.NewInsert(buffer.Pos(2, 0), "a\nb\n")
//
//	if next, ok := tracking.UpdateRange(r, e); ok {
//	    r = next // [(7:0):(7:10))
//	}
//
// # Swallowed boundaries
//
// When a deleted span covers a boundary, the start boundary collapses to the
// start of the edit and the end boundary to the end of the inserted text, so
// replacement text inside a range stays inside it and Start <= End holds.
//
// # Ordering
//
// Edits must be delivered one at a time in the order they were applied.
// A missed edit cannot be detected and leaves the range stale.
package tracking
