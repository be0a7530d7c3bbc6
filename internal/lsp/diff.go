package lsp

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

// DiffEdits returns the edits that turn old into new, computed with a line
// diff. Edits are ordered from the end of the document to the start, so
// each one is expressed in coordinates that the preceding edits leave
// untouched and they can be applied in sequence.
func DiffEdits(old, new string) []buffer.Edit {
	if old == new {
		return nil
	}

	a := buffer.Lines(old)
	b := buffer.Lines(new)

	matcher := difflib.NewMatcher(a, b)
	ops := matcher.GetOpCodes()

	var edits []buffer.Edit
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if op.Tag == 'e' {
			continue
		}
		edits = append(edits, buffer.Edit{
			Deleted:  buffer.Range{Start: unitStart(a, op.I1), End: unitStart(a, op.I2)},
			Inserted: strings.Join(b[op.J1:op.J2], ""),
		})
	}
	return edits
}

// unitStart returns the position where line unit k starts. Index len(units)
// is the end of the document.
func unitStart(units []string, k int) buffer.Position {
	if k < len(units) {
		return buffer.Pos(k, 0)
	}
	last := len(units) - 1
	return buffer.Pos(last, buffer.UTF16Len(units[last]))
}
