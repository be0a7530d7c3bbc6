package buffer

import (
	"errors"
	"testing"
)

func TestEditDerived(t *testing.T) {
	tests := []struct {
		name         string
		edit         Edit
		newlines     int
		lineDelta    int
		lastLine     int
		insertionEnd Position
		typ          ChangeType
	}{
		{
			name:         "insert two lines",
			edit:         NewInsert(Pos(2, 0), "a\nb\n"),
			newlines:     2,
			lineDelta:    2,
			lastLine:     0,
			insertionEnd: Pos(4, 0),
			typ:          ChangeInsert,
		},
		{
			name:         "insert characters",
			edit:         NewInsert(Pos(3, 0), "xx"),
			newlines:     0,
			lineDelta:    0,
			lastLine:     2,
			insertionEnd: Pos(3, 2),
			typ:          ChangeInsert,
		},
		{
			name:         "delete lines",
			edit:         NewDelete(MustRange(1, 4, 4, 2)),
			newlines:     0,
			lineDelta:    -3,
			lastLine:     0,
			insertionEnd: Pos(1, 4),
			typ:          ChangeDelete,
		},
		{
			name:         "replace across lines",
			edit:         Edit{Deleted: MustRange(0, 2, 1, 1), Inserted: "one\r\ntwo\rthree"},
			newlines:     2,
			lineDelta:    1,
			lastLine:     5,
			insertionEnd: Pos(2, 5),
			typ:          ChangeReplace,
		},
		{
			name:         "no-op",
			edit:         NewInsert(Pos(7, 7), ""),
			insertionEnd: Pos(7, 7),
			typ:          ChangeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edit.NewlineCount(); got != tt.newlines {
				t.Errorf("NewlineCount = %d, want %d", got, tt.newlines)
			}
			if got := tt.edit.LineDelta(); got != tt.lineDelta {
				t.Errorf("LineDelta = %d, want %d", got, tt.lineDelta)
			}
			if got := tt.edit.LastLineLength(); got != tt.lastLine {
				t.Errorf("LastLineLength = %d, want %d", got, tt.lastLine)
			}
			if got := tt.edit.InsertionEnd(); got != tt.insertionEnd {
				t.Errorf("InsertionEnd = %s, want %s", got, tt.insertionEnd)
			}
			if got := tt.edit.Type(); got != tt.typ {
				t.Errorf("Type = %v, want %v", got, tt.typ)
			}
		})
	}
}

func TestEditPredicates(t *testing.T) {
	ins := NewInsert(Pos(0, 0), "x")
	if !ins.IsPureInsertion() || ins.IsPureDeletion() {
		t.Error("insert predicates wrong")
	}

	del := NewDelete(MustRange(0, 0, 0, 3))
	if del.IsPureInsertion() || !del.IsPureDeletion() {
		t.Error("delete predicates wrong")
	}
	if del.CharDelta() != -3 {
		t.Errorf("expected char delta -3, got %d", del.CharDelta())
	}

	noop := NewInsert(Pos(1, 1), "")
	if !noop.IsNoOp() {
		t.Error("expected no-op")
	}
}

func TestEditUTF16(t *testing.T) {
	// U+1F600 is a surrogate pair in UTF-16; é is one code unit.
	e := NewInsert(Pos(0, 1), "é\U0001F600")
	if got := e.CharDelta(); got != 3 {
		t.Errorf("expected char delta 3, got %d", got)
	}
	if got := e.InsertionEnd(); got != Pos(0, 4) {
		t.Errorf("expected insertion end (0:4), got %s", got)
	}
}

func TestNewEditRejectsInvalidRange(t *testing.T) {
	_, err := NewEdit(Range{Start: Pos(2, 0), End: Pos(1, 0)}, "x")
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestEditString(t *testing.T) {
	if s := NewInsert(Pos(1, 2), "hi").String(); s != `Insert((1:2), "hi")` {
		t.Errorf("unexpected %s", s)
	}
	if s := NewDelete(MustRange(1, 0, 1, 2)).String(); s != "Delete[(1:0):(1:2))" {
		t.Errorf("unexpected %s", s)
	}
}
