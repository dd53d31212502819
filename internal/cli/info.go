package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/pkg/pipeline"
	"github.com/matzehuels/corescene/pkg/track"
)

// infoCommand prints the layout of a document: its paper, scale, page
// count and the placement of every track.
func (c *CLI) infoCommand() *cobra.Command {
	var paperName string
	var perPage float64

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Show the paper, pages and track layout of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pipeline.FromFile(args[0])
			if err != nil {
				return err
			}
			opts.Paper = paperName
			opts.PerPage = perPage
			c.applyConfig(&opts)
			return c.runInfo(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&paperName, "paper", "", "paper name or WxH in points (overrides the document)")
	cmd.Flags().Float64Var(&perPage, "per-page", 0, "domain units per page (overrides the document)")

	return cmd
}

func (c *CLI) runInfo(ctx context.Context, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	l, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	s := l.Built.Scene
	content := s.ContentSize()

	if l.Document.Title != "" {
		fmt.Fprintln(out, StyleTitle.Render(l.Document.Title))
	}
	printKeyValue("Paper", l.Paper.String())
	printKeyValue("Per page", track.FormatValue(l.Pageable.PerPage()))
	printKeyValue("Scale", strconv.FormatFloat(s.ScalingFactor(), 'f', 3, 64))
	printKeyValue("Pages", StyleNumber.Render(strconv.Itoa(l.Pageable.PageCount())))
	printKeyValue("Content", fmt.Sprintf("%.0f x %.0f px at y %.0f", content.W, content.H, content.Y))
	printKeyValue("Records", strconv.Itoa(len(l.Built.Models.Models())))
	printNewline()

	rows := make([][]string, 0, len(s.Tracks()))
	for i, t := range s.Tracks() {
		b, _ := s.TrackBounds(t)
		records := "-"
		if iv, ok := t.(*track.Intervals); ok {
			records = fmt.Sprintf("%d %s", len(iv.Records()), iv.Type())
		}
		constraint := s.Constraint(t)
		if constraint == "" {
			constraint = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Name(),
			constraint,
			fmt.Sprintf("%.0f", b.X),
			fmt.Sprintf("%.0f", b.W),
			records,
		})
	}
	printTable([]string{"#", "Track", "Constraint", "X", "Width", "Records"}, rows)
	return nil
}
