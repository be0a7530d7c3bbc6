package buffer

import "fmt"

// Range is a span between two positions.
// Start is inclusive, End is exclusive: [Start, End).
// A Range built with NewRange always satisfies Start <= End.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range, rejecting invalid positions and start > end.
func NewRange(start, end Position) (Range, error) {
	if !start.IsValid() || !end.IsValid() {
		return Range{}, fmt.Errorf("%w: [%s:%s)", ErrInvalidPosition, start, end)
	}
	if start.After(end) {
		return Range{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// MustRange is like NewRange but panics on invalid input.
// Intended for literals in tests and static tables.
func MustRange(startLine, startChar, endLine, endChar int) Range {
	r, err := NewRange(Pos(startLine, startChar), Pos(endLine, endChar))
	if err != nil {
		panic(err)
	}
	return r
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if both ends are valid and start <= end.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range spans only one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// LineSpan returns the number of line breaks covered by the range.
func (r Range) LineSpan() int {
	return r.End.Line - r.Start.Line
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// Intersects returns true if the ranges share at least one position.
// An empty range intersects a range that contains its position.
func (r Range) Intersects(other Range) bool {
	switch {
	case r.IsEmpty() && other.IsEmpty():
		return r.Start == other.Start
	case r.IsEmpty():
		return other.Contains(r.Start)
	case other.IsEmpty():
		return r.Contains(other.Start)
	}
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
