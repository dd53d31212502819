package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/pkg/paper"
)

func (c *CLI) paperCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paper",
		Short: "Inspect the known paper sizes",
	}
	cmd.AddCommand(c.paperListCommand())
	cmd.AddCommand(c.paperShowCommand())
	return cmd
}

func (c *CLI) paperListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List paper sizes, marking the locale default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := paper.Default()
			rows := make([][]string, 0, len(paper.All()))
			for _, p := range paper.All() {
				mark := ""
				if p.Name == def.Name {
					mark = iconSuccess
				}
				rows = append(rows, []string{
					mark,
					p.Name,
					fmt.Sprintf("%d x %d", p.Width, p.Height),
					fmt.Sprintf("%d x %d", p.PrintableWidth, p.PrintableHeight),
				})
			}
			printTable([]string{"", "Paper", "Size (pt)", "Printable (pt)"}, rows)
			return nil
		},
	}
}

func (c *CLI) paperShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Resolve a paper name or WxH size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paper.Lookup(args[0])
			if err != nil {
				return err
			}
			printKeyValue("Name", p.Name)
			printKeyValue("Size", fmt.Sprintf("%d x %d pt", p.Width, p.Height))
			printKeyValue("Printable", fmt.Sprintf("%d x %d pt at (%d, %d)", p.PrintableWidth, p.PrintableHeight, p.PrintableX, p.PrintableY))
			printKeyValue("Inches", strconv.FormatFloat(float64(p.Width)/72, 'f', 2, 64)+" x "+strconv.FormatFloat(float64(p.Height)/72, 'f', 2, 64))
			return nil
		},
	}
}
