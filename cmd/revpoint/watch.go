package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/review/store"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a summary whenever the review record changes on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.store.Path()
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}

			w, err := store.NewWatcher(path, a.cfg.WatchDebounce.Std(), a.logger)
			if err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s\n", path)
			for {
				select {
				case <-ctx.Done():
					return nil
				case err, ok := <-w.Errors():
					if !ok {
						return nil
					}
					a.logger.Warn("watch error", "error", err)
				case ev, ok := <-w.Events():
					if !ok {
						return nil
					}
					if ev.Removed {
						fmt.Fprintf(out, "%s: removed\n", ev.Timestamp.Format("15:04:05"))
						continue
					}
					c, err := a.load()
					if err != nil {
						a.logger.Warn("reload failed", "error", err)
						continue
					}
					fmt.Fprintf(out, "%s: version %d (%s), %d point(s) in %d file(s)\n",
						ev.Timestamp.Format("15:04:05"), c.Version(), c.Part(), c.Len(), len(c.Files()))
				}
			}
		},
	}
}
