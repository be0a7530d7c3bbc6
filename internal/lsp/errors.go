package lsp

import "errors"

// Errors returned by the bridge.
var (
	// ErrUnknownDocument indicates a full-content change for a document
	// that was never opened, so there is nothing to diff against.
	ErrUnknownDocument = errors.New("document not open")

	// ErrInvalidMessage indicates a message that is not a JSON-RPC
	// notification.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidChange indicates a change whose range does not fit the
	// mirrored document.
	ErrInvalidChange = errors.New("change does not fit document")
)
