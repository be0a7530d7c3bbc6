package config

import (
	"errors"

	"github.com/dshills/revpoint/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates a setting holds an unacceptable value.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
