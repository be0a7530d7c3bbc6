// Package buffer provides the coordinate primitives used to anchor review
// points into documents, and a small line-indexed text model.
//
// The buffer package provides:
//
//   - Position: a 0-indexed (line, character) coordinate, character measured
//     in UTF-16 code units as reported by LSP-speaking editors
//   - Range: a [Start, End) span with ordering and overlap predicates
//   - Edit: a normalized text mutation (deleted span plus inserted text) with
//     derived line and character deltas
//   - Text: a line-indexed document that applies Edits
//
// Basic usage:
//
//	r, err := buffer.NewRange(buffer.Pos(5, 0), buffer.Pos(5, 10))
//	if err != nil {
//	    return err // start after end, or negative coordinates
//	}
//
//	e := buffer.NewInsert(buffer.Pos(2, 0), "a\nb\n")
//	e.LineDelta()    // 2
//	e.InsertionEnd() // (4:0)
//
// Line breaks:
//
// "\r\n", "\n" and a lone "\r" each count as a single line break, both when
// deriving Edit line deltas and when Text splits content into lines.
//
// Validity:
//
// Ranges built with NewRange or NewEdit are guaranteed to satisfy
// Start <= End. Literal construction bypasses that check; use IsValid at
// trust boundaries.
package buffer
