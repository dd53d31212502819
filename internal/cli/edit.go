package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

// editCommand opens a document in the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a document's intervals in the terminal",
		Long: `Edit a document's intervals in the terminal.

Drag in an interval track to add a record, drag a record to move it or its
edge to resize it. Every change can be undone. Saving writes the document
back in its own format.`,
		Example: `  corescene edit core.toml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return apperr.New(apperr.ErrCodeUnsupported, "edit needs an interactive terminal")
			}
			m, err := newEditor(args[0], c.Logger)
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return err
			}

			switch {
			case m.dirty:
				printWarning("Discarded unsaved changes to %s", args[0])
			case m.saved:
				printSuccess("Saved %s", args[0])
			}
			return nil
		},
	}
}
