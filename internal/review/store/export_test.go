package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/review"
)

func TestExportYAML(t *testing.T) {
	c := review.New(review.WithAuthor("carol"))
	_, err := c.Add("lib/x.go", buffer.MustRange(2, 1, 2, 9), "naming")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, c.Record()))

	out := buf.String()
	assert.Contains(t, out, "review_points:")
	assert.Contains(t, out, "file: lib/x.go")
	assert.Contains(t, out, "author: carol")

	var back review.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.ReviewPoints, 1)
	assert.Equal(t, 2, back.ReviewPoints[0].Range.Start.Line)
	assert.Equal(t, 9, back.ReviewPoints[0].Range.End.Character)
}
