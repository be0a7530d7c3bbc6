package buffer

import (
	"fmt"
	"strings"
)

// Text is a line-indexed document that Edits can be applied to.
// It mirrors file content for callers that need to resolve positions or
// replay edits, such as full-document sync and range verification.
// Text is not safe for concurrent use.
type Text struct {
	lines  []string // line content without terminators
	breaks []string // breaks[i] terminates lines[i]; len(breaks) == len(lines)-1
}

// NewText creates a Text from a string.
func NewText(s string) *Text {
	lines, breaks := splitLines(s)
	return &Text{lines: lines, breaks: breaks}
}

// String returns the full document.
func (t *Text) String() string {
	var sb strings.Builder
	for i, line := range t.lines {
		sb.WriteString(line)
		if i < len(t.breaks) {
			sb.WriteString(t.breaks[i])
		}
	}
	return sb.String()
}

// LineCount returns the number of lines. An empty document has one line.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// Line returns the content of a line without its terminator.
func (t *Text) Line(n int) string {
	if n < 0 || n >= len(t.lines) {
		return ""
	}
	return t.lines[n]
}

// LineLength returns the UTF-16 length of a line.
func (t *Text) LineLength(n int) int {
	return UTF16Len(t.Line(n))
}

// End returns the position just past the last character.
func (t *Text) End() Position {
	last := len(t.lines) - 1
	return Position{Line: last, Character: t.LineLength(last)}
}

// ValidPosition returns true if p addresses a location in the document.
func (t *Text) ValidPosition(p Position) bool {
	if p.Line < 0 || p.Line >= len(t.lines) || p.Character < 0 {
		return false
	}
	_, ok := utf16ToByteOffset(t.lines[p.Line], p.Character)
	return ok
}

// ValidRange returns true if r is well-formed and inside the document.
func (t *Text) ValidRange(r Range) bool {
	return r.IsValid() && t.ValidPosition(r.Start) && t.ValidPosition(r.End)
}

// Slice returns the text covered by r.
func (t *Text) Slice(r Range) (string, error) {
	if !t.ValidRange(r) {
		return "", fmt.Errorf("%w: %s", ErrOutOfRange, r)
	}
	sb, _ := utf16ToByteOffset(t.lines[r.Start.Line], r.Start.Character)
	eb, _ := utf16ToByteOffset(t.lines[r.End.Line], r.End.Character)
	if r.IsSingleLine() {
		return t.lines[r.Start.Line][sb:eb], nil
	}

	var out strings.Builder
	out.WriteString(t.lines[r.Start.Line][sb:])
	for i := r.Start.Line; i < r.End.Line; i++ {
		out.WriteString(t.breaks[i])
		if i+1 < r.End.Line {
			out.WriteString(t.lines[i+1])
		}
	}
	out.WriteString(t.lines[r.End.Line][:eb])
	return out.String(), nil
}

// Apply replaces e.Deleted with e.Inserted.
func (t *Text) Apply(e Edit) error {
	r := e.Deleted
	if !t.ValidRange(r) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, r)
	}
	if e.IsNoOp() {
		return nil
	}

	sl, el := r.Start.Line, r.End.Line
	sb, _ := utf16ToByteOffset(t.lines[sl], r.Start.Character)
	eb, _ := utf16ToByteOffset(t.lines[el], r.End.Character)

	midLines, midBreaks := splitLines(t.lines[sl][:sb] + e.Inserted + t.lines[el][eb:])

	lines := make([]string, 0, len(t.lines)+len(midLines))
	lines = append(lines, t.lines[:sl]...)
	lines = append(lines, midLines...)
	lines = append(lines, t.lines[el+1:]...)

	breaks := make([]string, 0, len(t.breaks)+len(midBreaks))
	breaks = append(breaks, t.breaks[:sl]...)
	breaks = append(breaks, midBreaks...)
	breaks = append(breaks, t.breaks[el:]...)

	t.lines, t.breaks = lines, breaks
	return nil
}

// Lines splits s into lines that keep their terminators. The result always
// has one element per document line; the last element has no terminator
// and may be empty.
func Lines(s string) []string {
	lines, breaks := splitLines(s)
	for i, br := range breaks {
		lines[i] += br
	}
	return lines
}

// splitLines splits s into lines and their terminators using the same
// break rules as Edit.NewlineCount.
func splitLines(s string) (lines, breaks []string) {
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				breaks = append(breaks, "\r\n")
				i++
			} else {
				breaks = append(breaks, "\r")
			}
			start = i + 1
		case '\n':
			lines = append(lines, s[start:i])
			breaks = append(breaks, "\n")
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines, breaks
}
