package buffer

import "fmt"

// Edit describes a single text mutation: the Deleted span of the pre-edit
// document is replaced by Inserted.
type Edit struct {
	Deleted  Range  // The range removed, in pre-edit coordinates
	Inserted string // The replacement text
}

// NewEdit creates a new Edit, rejecting an invalid deleted range.
func NewEdit(deleted Range, inserted string) (Edit, error) {
	if !deleted.IsValid() {
		return Edit{}, fmt.Errorf("%w: %s", ErrInvalidRange, deleted)
	}
	return Edit{Deleted: deleted, Inserted: inserted}, nil
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(at Position, text string) Edit {
	return Edit{
		Deleted:  Range{Start: at, End: at},
		Inserted: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Deleted: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch e.Type() {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%s, %q)", e.Deleted.Start, e.Inserted)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", e.Deleted)
	case ChangeNone:
		return fmt.Sprintf("NoOp%s", e.Deleted.Start)
	default:
		return fmt.Sprintf("Replace%s with %q", e.Deleted, e.Inserted)
	}
}

// IsPureInsertion returns true if nothing is deleted.
func (e Edit) IsPureInsertion() bool {
	return e.Deleted.IsEmpty()
}

// IsPureDeletion returns true if nothing is inserted.
func (e Edit) IsPureDeletion() bool {
	return e.Inserted == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.IsPureInsertion() && e.IsPureDeletion()
}

// NewlineCount returns the number of line breaks in the inserted text.
// "\r\n", "\n" and a lone "\r" each count as one break.
func (e Edit) NewlineCount() int {
	n, _ := scanBreaks(e.Inserted)
	return n
}

// LineDelta returns the net change in line count caused by the edit.
func (e Edit) LineDelta() int {
	return e.NewlineCount() - e.Deleted.LineSpan()
}

// LastLineLength returns the UTF-16 length of the inserted text after its
// final line break, or the length of the whole text if it has none.
func (e Edit) LastLineLength() int {
	_, tail := scanBreaks(e.Inserted)
	return UTF16Len(e.Inserted[tail:])
}

// CharDelta returns the net character change on a single line: the
// inserted length minus the deleted width. Only meaningful when neither the
// deleted span nor the inserted text crosses a line boundary.
func (e Edit) CharDelta() int {
	return UTF16Len(e.Inserted) - (e.Deleted.End.Character - e.Deleted.Start.Character)
}

// InsertionEnd returns the post-edit position just past the inserted text.
func (e Edit) InsertionEnd() Position {
	n, tail := scanBreaks(e.Inserted)
	if n == 0 {
		return Position{
			Line:      e.Deleted.Start.Line,
			Character: e.Deleted.Start.Character + UTF16Len(e.Inserted),
		}
	}
	return Position{
		Line:      e.Deleted.Start.Line + n,
		Character: UTF16Len(e.Inserted[tail:]),
	}
}

// Type categorizes the edit.
func (e Edit) Type() ChangeType {
	switch {
	case e.IsNoOp():
		return ChangeNone
	case e.IsPureInsertion():
		return ChangeInsert
	case e.IsPureDeletion():
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// ChangeType categorizes the type of change made by an edit.
type ChangeType uint8

const (
	ChangeNone    ChangeType = iota // Nothing deleted or inserted
	ChangeInsert                    // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// scanBreaks counts line breaks in s and returns the byte offset just past
// the last one (0 when there are none).
func scanBreaks(s string) (count, tail int) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			count++
			tail = i + 1
		case '\n':
			count++
			tail = i + 1
		}
	}
	return count, tail
}
