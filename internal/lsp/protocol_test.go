package lsp

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

func TestURIRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	path := "/work/my repo/main.go"
	uri := FilePathToURI(path)
	assert.Equal(t, DocumentURI("file:///work/my%20repo/main.go"), uri)
	assert.Equal(t, path, URIToFilePath(uri))

	assert.Equal(t, "untitled:1", URIToFilePath("untitled:1"))
	assert.Empty(t, URIToFilePath(""))
	assert.Empty(t, FilePathToURI(""))
}

func TestRelativePathToURI(t *testing.T) {
	uri := FilePathToURI("x.go")
	abs, err := filepath.Abs("x.go")
	require.NoError(t, err)
	assert.Equal(t, abs, URIToFilePath(uri))
}

func TestRangeConversion(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 2}, End: Position{Line: 3, Character: 4}}
	br, err := r.ToBuffer()
	require.NoError(t, err)
	assert.Equal(t, buffer.MustRange(1, 2, 3, 4), br)
	assert.Equal(t, r, FromBuffer(br))

	_, err = Range{Start: Position{Line: 2}, End: Position{Line: 1}}.ToBuffer()
	assert.ErrorIs(t, err, buffer.ErrInvalidRange)

	_, err = Range{Start: Position{Line: -1}}.ToBuffer()
	assert.ErrorIs(t, err, buffer.ErrInvalidPosition)
}
