package store

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/revpoint/internal/review"
)

// ExportYAML writes rec to w as YAML.
func ExportYAML(w io.Writer, rec review.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	return enc.Close()
}
