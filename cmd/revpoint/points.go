package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/review"
)

func addCmd(a *app) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "add FILE RANGE",
		Short: "Add a review point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(args[1])
			if err != nil {
				return err
			}
			return a.mutate(func(c *review.Collection) error {
				p, err := c.Add(args[0], r, comment)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment text (default from config)")
	return cmd
}

func commentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Replace a review point's comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				return report(cmd, args[0], c.UpdateComment(args[0], args[1]), "comment updated")
			})
		},
	}
}

func closeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close ID",
		Short: "Mark a review point resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				return report(cmd, args[0], c.Close(args[0]), "closed")
			})
		},
	}
}

func reopenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen ID",
		Short: "Reopen a resolved review point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				return report(cmd, args[0], c.Reopen(args[0]), "reopened")
			})
		},
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a review point",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(c *review.Collection) error {
				return report(cmd, args[0], c.Remove(args[0]), "removed")
			})
		},
	}
}

func optionCmd(a *app) *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "option ID KEY [VALUE]",
		Short: "Set or delete a review point option",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, key := args[0], args[1]
			if del == (len(args) == 3) {
				return fmt.Errorf("give either VALUE or --delete")
			}
			return a.mutate(func(c *review.Collection) error {
				if del {
					return report(cmd, id, c.DeleteOption(id, key), "option deleted")
				}
				return report(cmd, id, c.SetOption(id, key, args[2]), "option set")
			})
		},
	}

	cmd.Flags().BoolVarP(&del, "delete", "d", false, "Delete the option")
	return cmd
}

func reanchorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reanchor ID FILE RANGE",
		Short: "Move a review point to a new range of its file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(args[2])
			if err != nil {
				return err
			}
			return a.mutate(func(c *review.Collection) error {
				changed, err := c.Reanchor(args[0], args[1], r)
				if err != nil {
					return err
				}
				return report(cmd, args[0], changed, "reanchored to "+formatRange(r))
			})
		},
	}
}

// report prints the outcome of a mutation addressed by id.
func report(cmd *cobra.Command, id string, changed bool, what string) error {
	if !changed {
		what = "no change"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, what)
	return nil
}
