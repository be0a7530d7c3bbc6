package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/config"
	"github.com/dshills/revpoint/internal/log"
	"github.com/dshills/revpoint/internal/review"
	"github.com/dshills/revpoint/internal/review/store"
)

// app carries the state shared by every command.
type app struct {
	configFile string
	workspace  string
	logLevel   string

	cfg    config.Config
	logger *log.Logger
	store  *store.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "revpoint",
		Short: "Track code review comments anchored to file ranges",
		Long: `revpoint keeps review comments anchored to ranges of workspace files.

Ranges follow the text as files are edited, and review proceeds in
versions handed back and forth between reviewer and reviewee.
Ranges are written LINE:CHAR-LINE:CHAR, zero-based, with characters
counted in UTF-16 code units.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to config file (default <workspace>/.revpoint.toml)")
	flags.StringVarP(&a.workspace, "workspace", "w", ".", "Workspace root directory")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		addCmd(a),
		listCmd(a),
		commentCmd(a),
		closeCmd(a),
		reopenCmd(a),
		removeCmd(a),
		optionCmd(a),
		reanchorCmd(a),
		editCmd(a),
		commitCmd(a),
		revertCmd(a),
		syncCmd(a),
		watchCmd(a),
		versionCmd(),
	)

	return cmd
}

// init loads configuration and builds the logger and store.
func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(config.WithWorkspace(a.workspace), config.WithConfigFile(a.configFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		if !log.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid log level %q", a.logLevel)
		}
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.logger = cfg.Logger(stderr)
	log.SetDefault(a.logger)
	a.store = store.New(cfg.ReviewPath(),
		store.WithLogger(a.logger),
		store.WithCollectionOptions(cfg.CollectionOptions(a.logger)...),
	)
	return nil
}

// load reads the review record. A malformed record is an error for every
// command so that it is never overwritten by accident.
func (a *app) load() (*review.Collection, error) {
	return a.store.Load()
}

// mutate loads the record, applies fn and saves the result.
func (a *app) mutate(fn func(c *review.Collection) error) error {
	c, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return a.store.Save(c)
}
