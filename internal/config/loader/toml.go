package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LoadTOML decodes the TOML file at path into v. Keys that do not map to a
// field of v are rejected. A missing file is not an error; found reports
// whether the file existed.
func LoadTOML(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return true, DecodeTOML(path, data, v)
}

// DecodeTOML decodes TOML data into v. source names the data in errors.
func DecodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return toParseError(source, err)
	}
	return nil
}

func toParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
		return pe
	}

	var se *toml.StrictMissingError
	if errors.As(err, &se) && len(se.Errors) > 0 {
		pe.Line, pe.Column = se.Errors[0].Position()
		pe.Message = "unknown key " + strings.Join(se.Errors[0].Key(), ".")
	}
	return pe
}
