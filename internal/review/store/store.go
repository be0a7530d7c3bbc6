package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"

	"github.com/dshills/revpoint/internal/log"
	"github.com/dshills/revpoint/internal/review"
)

// DefaultPath is the workspace-relative location of the record file.
const DefaultPath = ".vscode/vscode-review.json"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCollectionOptions sets the options applied to every collection the
// store creates or loads.
func WithCollectionOptions(opts ...review.Option) Option {
	return func(s *Store) {
		s.collOpts = append(s.collOpts, opts...)
	}
}

// Store reads and writes one record file.
type Store struct {
	path     string
	logger   *log.Logger
	collOpts []review.Option
}

// New creates a store for the record file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the record file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record file. A missing file yields an empty collection.
// A malformed file yields an empty collection together with a *LoadError
// wrapping review.ErrMalformedRecord; nothing from the file is kept.
func (s *Store) Load() (*review.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no review record, starting empty", "path", s.path)
		return review.New(s.collOpts...), nil
	}
	if err != nil {
		return review.New(s.collOpts...), &LoadError{Path: s.path, Err: err}
	}

	c, err := s.decode(data)
	if err != nil {
		s.logger.Warn("review record rejected, starting empty", "path", s.path, "error", err)
		return review.New(s.collOpts...), &LoadError{Path: s.path, Err: err}
	}

	s.logger.Info("review record loaded", "path", s.path, "points", c.Len(), "version", c.Version())
	return c, nil
}

func (s *Store) decode(data []byte) (*review.Collection, error) {
	migrated, ok, err := Migrate(data)
	if err != nil {
		return nil, err
	}
	if ok {
		s.logger.Info("legacy review record migrated", "path", s.path)
		data = migrated
	}

	var rec review.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", review.ErrMalformedRecord, err)
	}
	return review.FromRecord(rec, s.collOpts...)
}

// Save writes the collection's record, replacing the file atomically.
func (s *Store) Save(c *review.Collection) error {
	data, err := Encode(c.Record())
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}

	s.logger.Debug("review record saved", "path", s.path, "points", c.Len())
	return nil
}

// Encode renders a record as pretty-printed JSON.
func Encode(rec review.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return pretty.PrettyOptions(data, &pretty.Options{Indent: "  ", Width: 80}), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
