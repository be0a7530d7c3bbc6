package main

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/lsp"
)

func syncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Apply editor document notifications read from stdin",
		Long: `Read LSP textDocument notifications (didOpen, didChange, didClose,
didSave) from stdin, one JSON object per line or with Content-Length
framing, and move review point ranges to follow the edits. The record
is saved when the input ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load()
			if err != nil {
				return err
			}

			var dirty atomic.Bool
			c.OnChange(func(string) { dirty.Store(true) })

			root, err := filepath.Abs(a.cfg.WorkspaceRoot)
			if err != nil {
				return err
			}
			s := lsp.NewSync(c, lsp.WithRoot(root), lsp.WithLogger(a.logger))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runErr := s.Run(ctx, lsp.NewReader(cmd.InOrStdin()))
			if errors.Is(runErr, context.Canceled) {
				runErr = nil
			}

			if dirty.Load() {
				if err := a.store.Save(c); err != nil {
					return err
				}
				a.logger.Info("review record updated", "path", a.store.Path(), "stats", c.Stats())
			}
			return runErr
		},
	}
}
