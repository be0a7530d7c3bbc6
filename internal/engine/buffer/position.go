package buffer

import "fmt"

// Position is a line and character coordinate in a document.
// Both Line and Character are 0-indexed. Character is measured in UTF-16
// code units from the start of the line, matching LSP and the editors that
// report edits.
type Position struct {
	Line      int // 0-indexed line number
	Character int // 0-indexed UTF-16 offset within the line
}

// NewPosition creates a Position, rejecting negative coordinates.
func NewPosition(line, character int) (Position, error) {
	if line < 0 || character < 0 {
		return Position{}, fmt.Errorf("%w: (%d:%d)", ErrInvalidPosition, line, character)
	}
	return Position{Line: line, Character: character}, nil
}

// Pos is shorthand for a Position literal. Callers must pass valid coordinates.
func Pos(line, character int) Position {
	return Position{Line: line, Character: character}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Character < other.Character {
		return -1
	}
	if p.Character > other.Character {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsValid returns true if both coordinates are non-negative.
func (p Position) IsValid() bool {
	return p.Line >= 0 && p.Character >= 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Character == 0
}
