package review

import "errors"

// Errors returned by review operations.
var (
	// ErrNothingToRevert indicates there is no commit to revert.
	ErrNothingToRevert = errors.New("nothing to revert")

	// ErrFileMismatch indicates a reanchor targeted a different file than
	// the one the review point belongs to.
	ErrFileMismatch = errors.New("selection is in a different file")

	// ErrEmptyFile indicates a review point was created without a file.
	ErrEmptyFile = errors.New("file path is empty")

	// ErrMalformedRecord indicates a persisted record failed validation.
	ErrMalformedRecord = errors.New("malformed review record")

	// ErrUnknownPart indicates an unrecognized review part name.
	ErrUnknownPart = errors.New("unknown review part")
)
