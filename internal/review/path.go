package review

import (
	"path/filepath"
	"strings"
)

// Normalize converts a file path into the workspace-relative, slash
// separated form review points are keyed by. Absolute paths outside the
// workspace root are kept absolute.
func (c *Collection) Normalize(file string) string {
	return normalizePath(c.root, file)
}

func normalizePath(root, file string) string {
	if file == "" {
		return ""
	}
	file = filepath.Clean(file)
	if root != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(filepath.Clean(root), file); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			file = rel
		}
	}
	return filepath.ToSlash(file)
}
