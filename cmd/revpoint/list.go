package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dshills/revpoint/internal/review"
	"github.com/dshills/revpoint/internal/review/store"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleClosed = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

func listCmd(a *app) *cobra.Command {
	var (
		format string
		file   string
		at     string
		open   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List review points",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := store.Encode(c.Record())
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))
				return err
			case "yaml":
				return store.ExportYAML(out, c.Record())
			case "table":
				points := c.Points()
				switch {
				case at != "":
					if file == "" {
						return fmt.Errorf("--at needs --file")
					}
					pos, err := parsePosition(at)
					if err != nil {
						return err
					}
					points = c.PointsAt(file, pos)
				case file != "":
					points = c.PointsIn(file)
				}
				if open {
					points = openOnly(points)
				}
				renderTable(out, c, points)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	cmd.Flags().StringVar(&file, "file", "", "Only show points in this file (table format)")
	cmd.Flags().StringVar(&at, "at", "", "Only show points touching LINE:CHAR of --file (table format)")
	cmd.Flags().BoolVar(&open, "open", false, "Hide closed points (table format)")
	return cmd
}

func openOnly(points []review.ReviewPoint) []review.ReviewPoint {
	out := points[:0]
	for _, p := range points {
		if !p.Closed {
			out = append(out, p)
		}
	}
	return out
}

// renderTable writes one row per point. Styling is dropped automatically
// when out is not a terminal.
func renderTable(out io.Writer, c *review.Collection, points []review.ReviewPoint) {
	fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("version %d (%s), %d point(s)", c.Version(), c.Part(), len(points))))
	if len(points) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("ID", "FILE", "RANGE", "VER", "STATE", "AUTHOR", "COMMENT")
	for _, p := range points {
		state := "open"
		if p.Closed {
			state = "closed"
		}
		t.Row(
			p.ID,
			p.File,
			formatRange(p.Range),
			fmt.Sprint(p.Version),
			state,
			p.Author,
			firstLine(p.Comment),
		)
	}

	// Row 0 is the header; data rows start at 1.
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == 0:
			return styleHeader.Padding(0, 1)
		case points[row-1].Closed:
			return styleClosed.Padding(0, 1)
		default:
			return styleCell
		}
	})

	fmt.Fprintln(out, t.Render())
}

func firstLine(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	if cut {
		return line + " …"
	}
	return line
}
