package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

// parsePosition parses LINE:CHAR.
func parsePosition(s string) (buffer.Position, error) {
	line, char, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return buffer.Position{}, fmt.Errorf("position %q: want LINE:CHAR", s)
	}
	l, err := strconv.Atoi(line)
	if err != nil {
		return buffer.Position{}, fmt.Errorf("position %q: bad line: %w", s, err)
	}
	c, err := strconv.Atoi(char)
	if err != nil {
		return buffer.Position{}, fmt.Errorf("position %q: bad character: %w", s, err)
	}
	return buffer.NewPosition(l, c)
}

// parseRange parses LINE:CHAR-LINE:CHAR. A single position yields an
// empty range.
func parseRange(s string) (buffer.Range, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		p, err := parsePosition(s)
		if err != nil {
			return buffer.Range{}, err
		}
		return buffer.Range{Start: p, End: p}, nil
	}

	sp, err := parsePosition(start)
	if err != nil {
		return buffer.Range{}, err
	}
	ep, err := parsePosition(end)
	if err != nil {
		return buffer.Range{}, err
	}
	return buffer.NewRange(sp, ep)
}

// formatRange is the inverse of parseRange.
func formatRange(r buffer.Range) string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
}

// unescape interprets Go escape sequences such as \n and \t.
func unescape(s string) (string, error) {
	out, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return "", fmt.Errorf("bad escape sequence in %q: %w", s, err)
	}
	return out, nil
}
