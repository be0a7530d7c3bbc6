package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/review"
)

func editCmd(a *app) *cobra.Command {
	var escapes bool

	cmd := &cobra.Command{
		Use:   "edit FILE RANGE [TEXT]",
		Short: "Report a text edit so review point ranges follow it",
		Long: `Report that RANGE of FILE was replaced with TEXT. Omitting TEXT
reports a deletion. With --escapes, sequences such as \n in TEXT are
interpreted.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(args[1])
			if err != nil {
				return err
			}
			var text string
			if len(args) == 3 {
				text = args[2]
				if escapes {
					if text, err = unescape(text); err != nil {
						return err
					}
				}
			}

			e := buffer.Edit{Deleted: r, Inserted: text}
			return a.mutate(func(c *review.Collection) error {
				before := c.PointsIn(args[0])
				if !c.ApplyEdit(args[0], e) {
					fmt.Fprintln(cmd.OutOrStdout(), "no ranges moved")
					return nil
				}
				for _, old := range before {
					p, _ := c.Get(old.ID)
					if p.Range != old.Range {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", p.ID, formatRange(old.Range), formatRange(p.Range))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&escapes, "escapes", "e", false, "Interpret escape sequences in TEXT")
	return cmd
}

func commitCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Close the current version and hand the review to the other part",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				ws := c.Commit(message)
				fmt.Fprintf(cmd.OutOrStdout(), "committed version %d (%s); now version %d (%s)\n",
					ws.Version, ws.Part, c.Version(), c.Part())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	return cmd
}

func revertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revert",
		Short: "Discard the current version and return to the previous one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				if err := c.Revert(); err != nil {
					if errors.Is(err, review.ErrNothingToRevert) {
						return fmt.Errorf("version %d has no previous version: %w", c.Version(), err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reverted to version %d (%s)\n", c.Version(), c.Part())
				return nil
			})
		},
	}
}
