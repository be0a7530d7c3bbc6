package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/review"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "none.json"))

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.Version())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vscode", "vscode-review.json")
	at := time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)
	opts := []review.Option{review.WithAuthor("bob"), review.WithClock(func() time.Time { return at })}
	s := New(path, WithCollectionOptions(opts...))

	c := review.New(opts...)
	p, err := c.Add("main.go", buffer.MustRange(1, 0, 2, 5), "check bounds")
	require.NoError(t, err)
	c.SetOption(p.ID, "severity", "major")
	c.Commit("first pass")
	c.UpdateComment(p.ID, "fixed")

	require.NoError(t, s.Save(c))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(review.CurrentFormat), gjson.GetBytes(data, "format").Int())
	assert.Equal(t, "reviewee", gjson.GetBytes(data, "part").String())
	assert.Equal(t, "check bounds", gjson.GetBytes(data, "review_points.0.history.0.comment").String())
	assert.Contains(t, string(data), "\n  \"version\"", "record should be indented")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, c.Record(), loaded.Record())

	got, ok := loaded.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "fixed", got.Comment)
	assert.Equal(t, buffer.MustRange(1, 0, 2, 5), got.Range)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.json")
	s := New(path)

	c := review.New()
	_, err := c.Add("a.go", buffer.MustRange(0, 0, 0, 1), "one")
	require.NoError(t, err)
	require.NoError(t, s.Save(c))

	_, err = c.Add("b.go", buffer.MustRange(0, 0, 0, 1), "two")
	require.NoError(t, err)
	require.NoError(t, s.Save(c))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"NotJSON", `{"format":`},
		{"WrongFormat", `{"format":9,"version":1,"part":"reviewer"}`},
		{"InvertedRange", `{"format":2,"version":1,"part":"reviewer","review_points":[
			{"id":"a","file":"a.go","range":{"start":{"line":3,"character":0},"end":{"line":1,"character":0}}}]}`},
		{"LegacyNotArray", `{"rp_list":{"id":"a"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "review.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			c, err := New(path).Load()
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, path, le.Path)
			assert.ErrorIs(t, err, review.ErrMalformedRecord)

			require.NotNil(t, c)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(review.New().Record())
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(data))
	assert.True(t, gjson.GetBytes(data, "review_points").IsArray())
	assert.True(t, gjson.GetBytes(data, "history").IsArray())
}
