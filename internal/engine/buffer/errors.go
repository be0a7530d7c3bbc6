package buffer

import "errors"

// Errors returned when constructing or applying coordinates.
var (
	// ErrInvalidPosition indicates a negative line or character.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfRange indicates a position outside the document.
	ErrOutOfRange = errors.New("position out of range")
)
