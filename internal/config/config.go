package config

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dshills/revpoint/internal/config/loader"
	"github.com/dshills/revpoint/internal/log"
	"github.com/dshills/revpoint/internal/review"
	"github.com/dshills/revpoint/internal/review/store"
)

// Defaults.
const (
	DefaultFileName  = ".revpoint.toml"
	DefaultEnvPrefix = "REVPOINT"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDebounce  = 200 * time.Millisecond
)

// Config holds all revpoint settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	// Env: REVPOINT_LOG_LEVEL (default: info)
	LogLevel string `toml:"log_level" split_words:"true"`

	// LogFormat is text or json.
	// Env: REVPOINT_LOG_FORMAT (default: text)
	LogFormat string `toml:"log_format" split_words:"true"`

	// Author is recorded on new review points.
	// Env: REVPOINT_AUTHOR
	Author string `toml:"author" split_words:"true"`

	// Part is the part a fresh workspace starts in.
	// Env: REVPOINT_PART (default: reviewer)
	Part string `toml:"part" split_words:"true"`

	// ReviewFile is the record file, relative to WorkspaceRoot unless absolute.
	// Env: REVPOINT_REVIEW_FILE (default: .vscode/vscode-review.json)
	ReviewFile string `toml:"review_file" split_words:"true"`

	// WorkspaceRoot is the directory review point files are relative to.
	// Env: REVPOINT_WORKSPACE_ROOT (default: current directory)
	WorkspaceRoot string `toml:"workspace_root" split_words:"true"`

	// DefaultComment is the comment given to review points created without one.
	// Env: REVPOINT_DEFAULT_COMMENT (default: "add comment here.")
	DefaultComment string `toml:"default_comment" split_words:"true"`

	// WatchDebounce coalesces bursts of record file changes.
	// Env: REVPOINT_WATCH_DEBOUNCE (default: 200ms)
	WatchDebounce Duration `toml:"watch_debounce" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		Part:           review.PartReviewer.String(),
		ReviewFile:     store.DefaultPath,
		WorkspaceRoot:  ".",
		DefaultComment: review.DefaultComment,
		WatchDebounce:  Duration(DefaultDebounce),
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	workspace  string
	configFile string
	explicit   bool
	dotEnv     string
	envPrefix  string
	skipEnv    bool
}

// WithWorkspace sets the directory searched for .revpoint.toml and .env.
func WithWorkspace(dir string) Option {
	return func(o *options) {
		o.workspace = dir
	}
}

// WithConfigFile loads path instead of <workspace>/.revpoint.toml. The file
// must exist.
func WithConfigFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.configFile = path
			o.explicit = true
		}
	}
}

// WithDotEnv loads path instead of <workspace>/.env.
func WithDotEnv(path string) Option {
	return func(o *options) {
		o.dotEnv = path
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutEnv skips the .env file and environment variable layers.
func WithoutEnv() Option {
	return func(o *options) {
		o.skipEnv = true
	}
}

// Load builds the configuration from every layer and validates it.
func Load(opts ...Option) (Config, error) {
	o := options{workspace: ".", envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = filepath.Join(o.workspace, DefaultFileName)
	}
	if o.dotEnv == "" {
		o.dotEnv = filepath.Join(o.workspace, ".env")
	}

	cfg := Default()
	cfg.WorkspaceRoot = o.workspace

	found, err := loader.LoadTOML(o.configFile, &cfg)
	if err != nil {
		return Config{}, err
	}
	if !found && o.explicit {
		return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, o.configFile)
	}

	if !o.skipEnv {
		if err := loader.LoadDotEnv(o.dotEnv); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", o.dotEnv, err)
		}
		if err := loader.LoadEnv(o.envPrefix, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if !log.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: log_level %q", ErrValidationFailed, c.LogLevel)
	}
	if _, ok := log.ParseFormat(c.LogFormat); !ok {
		return fmt.Errorf("%w: log_format %q", ErrValidationFailed, c.LogFormat)
	}
	if _, err := review.ParsePart(c.Part); err != nil {
		return fmt.Errorf("%w: part: %w", ErrValidationFailed, err)
	}
	if c.ReviewFile == "" {
		return fmt.Errorf("%w: review_file is empty", ErrValidationFailed)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch_debounce %s is negative", ErrValidationFailed, c.WatchDebounce.Std())
	}
	return nil
}

// ReviewPath returns the record file path, resolved against WorkspaceRoot.
func (c Config) ReviewPath() string {
	if filepath.IsAbs(c.ReviewFile) {
		return c.ReviewFile
	}
	return filepath.Join(c.WorkspaceRoot, c.ReviewFile)
}

// Logger builds a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) *log.Logger {
	format, _ := log.ParseFormat(c.LogFormat)
	return log.New(w, format, c.LogLevel)
}

// CollectionOptions returns the review options the settings imply.
func (c Config) CollectionOptions(logger *log.Logger) []review.Option {
	root, err := filepath.Abs(c.WorkspaceRoot)
	if err != nil {
		root = c.WorkspaceRoot
	}
	part, err := review.ParsePart(c.Part)
	if err != nil {
		part = review.PartReviewer
	}
	return []review.Option{
		review.WithInitialPart(part),
		review.WithAuthor(c.Author),
		review.WithDefaultComment(c.DefaultComment),
		review.WithWorkspaceRoot(root),
		review.WithLogger(logger),
	}
}
