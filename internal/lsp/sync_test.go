package lsp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/review"
)

const sampleDoc = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func setup(t *testing.T) (*Sync, *review.Collection, string, DocumentURI) {
	t.Helper()
	root := t.TempDir()
	coll := review.New(review.WithWorkspaceRoot(root))
	s := NewSync(coll, WithRoot(root))
	return s, coll, root, FilePathToURI(filepath.Join(root, "main.go"))
}

func open(s *Sync, uri DocumentURI, text string) {
	s.Open(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{URI: uri, Version: 1, Text: text}})
}

func incremental(uri DocumentURI, version int, r Range, text string) DidChangeTextDocumentParams {
	return DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier: TextDocumentIdentifier{URI: uri}, Version: version},
		ContentChanges: []TextDocumentContentChangeEvent{{Range: &r, Text: text}},
	}
}

func TestSyncIncrementalChange(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(3, 1, 3, 14), "use fmt")
	require.NoError(t, err)

	open(s, uri, sampleDoc)

	// Insert an import block after the package clause.
	at := Range{Start: Position{Line: 1}, End: Position{Line: 1}}
	n, err := s.Change(incremental(uri, 2, at, "import \"fmt\"\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(5, 1, 5, 14), got.Range)

	content, ok := s.Content(uri)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, "package main\nimport \"fmt\"\n\n\nfunc"))

	v, _ := s.Version(uri)
	assert.Equal(t, 2, v)
}

func TestSyncIncrementalWithoutOpen(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(2, 0, 2, 4), "x")
	require.NoError(t, err)

	at := Range{Start: Position{Line: 0}, End: Position{Line: 0}}
	_, err = s.Change(incremental(uri, 1, at, "// c\n"))
	require.NoError(t, err)

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(3, 0, 3, 4), got.Range)
	_, ok := s.Content(uri)
	assert.False(t, ok)
}

func TestSyncFullChange(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(3, 1, 3, 14), "use fmt")
	require.NoError(t, err)
	open(s, uri, sampleDoc)

	updated := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	n, err := s.Change(DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier: TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: updated}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(5, 1, 5, 14), got.Range)

	content, _ := s.Content(uri)
	assert.Equal(t, updated, content)
}

func TestSyncFullChangeUnknownDocument(t *testing.T) {
	s, _, _, uri := setup(t)
	_, err := s.Change(DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier: TextDocumentIdentifier{URI: uri}},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "x"}},
	})
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func TestSyncInvalidChange(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(1, 0, 1, 0), "x")
	require.NoError(t, err)
	open(s, uri, "one line")

	at := Range{Start: Position{Line: 5}, End: Position{Line: 5}}
	_, err = s.Change(incremental(uri, 2, at, "zzz"))
	assert.ErrorIs(t, err, ErrInvalidChange)

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(1, 0, 1, 0), got.Range, "collection untouched")
}

func TestSyncClose(t *testing.T) {
	s, _, _, uri := setup(t)
	open(s, uri, "x")
	s.Close(DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: uri}})
	_, ok := s.Content(uri)
	assert.False(t, ok)
}

func TestSyncSaveResyncs(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(1, 0, 1, 3), "x")
	require.NoError(t, err)
	open(s, uri, "a\nbcd\n")

	s.Save(DidSaveTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: uri}, Text: "new\na\nbcd\n"})

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(2, 0, 2, 3), got.Range)
	content, _ := s.Content(uri)
	assert.Equal(t, "new\na\nbcd\n", content)
}

func TestSyncRun(t *testing.T) {
	s, coll, _, uri := setup(t)
	p, err := coll.Add("main.go", buffer.MustRange(1, 0, 1, 3), "x")
	require.NoError(t, err)

	lines := []string{
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":%q,"languageId":"go","version":1,"text":"a\nbcd\n"}}}`, uri),
		`garbage`,
		`{"jsonrpc":"2.0","method":"$/progress","params":{}}`,
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didChange","params":{"textDocument":{"uri":%q,"version":2},"contentChanges":[{"range":{"start":{"line":1,"character":0},"end":{"line":1,"character":0}},"text":"> "}]}}`, uri),
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didClose","params":{"textDocument":{"uri":%q}}}`, uri),
	}

	require.NoError(t, s.Run(context.Background(), NewReader(strings.NewReader(strings.Join(lines, "\n")))))

	got, _ := coll.Get(p.ID)
	assert.Equal(t, buffer.MustRange(1, 2, 1, 5), got.Range)
	_, ok := s.Content(uri)
	assert.False(t, ok)
}

func TestSyncRunCancelled(t *testing.T) {
	s, _, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx, NewReader(strings.NewReader(""))), context.Canceled)
}

func TestSyncRunCancelWhileReading(t *testing.T) {
	s, _, _, _ := setup(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, NewReader(pr)) }()

	_, err := io.WriteString(pw, `{"jsonrpc":"2.0","method":"initialized","params":{}}`+"\n")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSyncHandleBadParams(t *testing.T) {
	s, _, _, _ := setup(t)
	assert.ErrorIs(t, s.Handle(Notification{Method: MethodDidChange}), ErrInvalidMessage)
	assert.ErrorIs(t, s.Handle(Notification{Method: MethodDidOpen, Params: []byte(`[1]`)}), ErrInvalidMessage)
	assert.NoError(t, s.Handle(Notification{Method: "initialized"}))
}
