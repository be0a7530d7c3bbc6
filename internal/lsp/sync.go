package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/log"
	"github.com/dshills/revpoint/internal/review"
)

// SyncOption configures a Sync.
type SyncOption func(*Sync)

// WithRoot sets the workspace root that document paths are made relative
// to before they are matched against review points.
func WithRoot(root string) SyncOption {
	return func(s *Sync) {
		s.root = root
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) SyncOption {
	return func(s *Sync) {
		if l != nil {
			s.logger = l
		}
	}
}

// document is the mirrored state of an open editor document.
type document struct {
	path    string
	version int
	text    *buffer.Text
}

// Sync applies editor document notifications to a review collection.
// All operations are thread-safe.
type Sync struct {
	coll   *review.Collection
	root   string
	logger *log.Logger

	mu   sync.Mutex
	docs map[DocumentURI]*document
}

// NewSync creates a bridge dispatching edits to coll.
func NewSync(coll *review.Collection, opts ...SyncOption) *Sync {
	s := &Sync{
		coll:   coll,
		logger: log.Nop(),
		docs:   make(map[DocumentURI]*document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run handles notifications from r until the stream ends or ctx is done.
// Malformed messages and failing notifications are logged and skipped.
// Reading happens on its own goroutine so that cancellation does not wait
// for input; that goroutine exits once its pending read returns.
func (s *Sync) Run(ctx context.Context, r *Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type message struct {
		n   Notification
		err error
	}
	msgs := make(chan message)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			n, err := r.Next()
			select {
			case msgs <- message{n, err}:
			case <-done:
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidMessage) {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-msgs:
			if errors.Is(m.err, io.EOF) {
				return nil
			}
			if errors.Is(m.err, ErrInvalidMessage) {
				s.logger.Warn("skipping message", "error", m.err)
				continue
			}
			if m.err != nil {
				return m.err
			}

			if err := s.Handle(m.n); err != nil {
				s.logger.Warn("notification failed", "method", m.n.Method, "error", err)
			}
		}
	}
}

// Handle applies one notification.
func (s *Sync) Handle(n Notification) error {
	switch n.Method {
	case MethodDidOpen:
		var p DidOpenTextDocumentParams
		if err := decodeParams(n, &p); err != nil {
			return err
		}
		s.Open(p)
		return nil
	case MethodDidChange:
		var p DidChangeTextDocumentParams
		if err := decodeParams(n, &p); err != nil {
			return err
		}
		_, err := s.Change(p)
		return err
	case MethodDidClose:
		var p DidCloseTextDocumentParams
		if err := decodeParams(n, &p); err != nil {
			return err
		}
		s.Close(p)
		return nil
	case MethodDidSave:
		var p DidSaveTextDocumentParams
		if err := decodeParams(n, &p); err != nil {
			return err
		}
		s.Save(p)
		return nil
	default:
		s.logger.Debug("ignoring notification", "method", n.Method)
		return nil
	}
}

func decodeParams(n Notification, v any) error {
	if len(n.Params) == 0 {
		return fmt.Errorf("%w: %s without params", ErrInvalidMessage, n.Method)
	}
	if err := json.Unmarshal(n.Params, v); err != nil {
		return fmt.Errorf("%w: %s params: %w", ErrInvalidMessage, n.Method, err)
	}
	return nil
}

// Open starts mirroring a document.
func (s *Sync) Open(p DidOpenTextDocumentParams) {
	item := p.TextDocument
	path := s.path(item.URI)

	s.mu.Lock()
	s.docs[item.URI] = &document{
		path:    path,
		version: item.Version,
		text:    buffer.NewText(item.Text),
	}
	s.mu.Unlock()

	s.logger.Debug("document opened", "uri", string(item.URI), "path", path)
}

// Close stops mirroring a document.
func (s *Sync) Close(p DidCloseTextDocumentParams) {
	s.mu.Lock()
	delete(s.docs, p.TextDocument.URI)
	s.mu.Unlock()
}

// Save refreshes the mirror when the client includes the saved text.
func (s *Sync) Save(p DidSaveTextDocumentParams) {
	if p.Text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[p.TextDocument.URI]
	if !ok {
		return
	}
	if doc.text.String() != p.Text {
		s.logger.Warn("document mirror out of date, resyncing", "uri", string(p.TextDocument.URI))
		s.applyFullLocked(doc, p.Text)
	}
}

// Change applies the content changes of one didChange notification in
// order. It returns the number of edits dispatched to the collection.
//
// Incremental changes to documents that were never opened are still
// dispatched; only full-content changes need the mirror.
func (s *Sync) Change(p DidChangeTextDocumentParams) (int, error) {
	uri := p.TextDocument.URI

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, open := s.docs[uri]
	path := s.path(uri)
	if open {
		path = doc.path
	}

	applied := 0
	for i, change := range p.ContentChanges {
		if change.IsFull() {
			if !open {
				return applied, fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
			}
			applied += s.applyFullLocked(doc, change.Text)
			continue
		}

		r, err := change.Range.ToBuffer()
		if err != nil {
			return applied, fmt.Errorf("change %d: %w", i, err)
		}
		e := buffer.Edit{Deleted: r, Inserted: change.Text}

		if open {
			if err := doc.text.Apply(e); err != nil {
				return applied, fmt.Errorf("%w: change %d: %w", ErrInvalidChange, i, err)
			}
		}
		s.coll.ApplyEdit(path, e)
		applied++
	}

	if open {
		doc.version = p.TextDocument.Version
	}
	return applied, nil
}

// applyFullLocked replaces the mirror with content and dispatches the line
// diff between them (must hold lock).
func (s *Sync) applyFullLocked(doc *document, content string) int {
	edits := DiffEdits(doc.text.String(), content)
	for _, e := range edits {
		s.coll.ApplyEdit(doc.path, e)
	}
	doc.text = buffer.NewText(content)

	s.logger.Debug("full document sync", "path", doc.path, "edits", len(edits))
	return len(edits)
}

// Content returns the mirrored text of an open document.
func (s *Sync) Content(uri DocumentURI) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.text.String(), true
}

// Version returns the last reported version of an open document.
func (s *Sync) Version(uri DocumentURI) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return 0, false
	}
	return doc.version, true
}

// path converts a document URI to the path review points are keyed by.
func (s *Sync) path(uri DocumentURI) string {
	path := URIToFilePath(uri)
	if s.root != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(s.root, path); err == nil && filepath.IsLocal(rel) {
			path = rel
		}
	}
	return s.coll.Normalize(path)
}
