package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/pkg/document"
	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/store"
)

// storeCommand manages the document store shared with `corescene serve`.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored documents",
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) storePutCommand() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Validate a document and add it to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := document.FormatFor(path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := document.Parse(data, f); err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			rec := &store.Record{ID: id, Name: name, Format: f, Data: data}
			err = c.withStore(cmd.Context(), func(st store.Store) error {
				return st.Put(cmd.Context(), rec)
			})
			if err != nil {
				return err
			}
			printSuccess("Stored %s", StyleValue.Render(rec.Name))
			printDetail("id %s", rec.ID)
			printNextStep("Serve it", "corescene serve")
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "document id (default: a new uuid)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: the file name)")

	return cmd
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Print a stored document, or write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				rec, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					_, err := out.Write(rec.Data)
					return err
				}
				if err := writeFile(output, rec.Data); err != nil {
					return err
				}
				printSuccess("Wrote %s", rec.Name)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				recs, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No stored documents")
					return nil
				}
				rows := make([][]string, 0, len(recs))
				for _, r := range recs {
					rows = append(rows, []string{r.ID, r.Name, string(r.Format), r.Updated.Local().Format(time.DateTime)})
				}
				printTable([]string{"ID", "Name", "Format", "Updated"}, rows)
				return nil
			})
		},
	}
}

func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]...",
		Aliases: []string{"remove"},
		Short:   "Delete stored documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				var first error
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						printError("%s: %s", id, apperr.UserMessage(err))
						if first == nil {
							first = err
						}
						continue
					}
					printSuccess("Deleted %s", id)
				}
				return first
			})
		},
	}
}
