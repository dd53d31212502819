package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/internal/server"
	"github.com/matzehuels/corescene/pkg/cache"
	"github.com/matzehuels/corescene/pkg/pipeline"
)

// serveCommand serves the document store over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored documents as rendered pages over HTTP",
		Long: `Serve the document store over HTTP.

Documents uploaded to /documents are kept in the configured store and
rendered on request, one page at a time or as a whole PDF.`,
		Example: `  corescene serve
  corescene serve --addr 127.0.0.1:9000
  curl --data-binary @core.toml "localhost:8080/documents?format=toml"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ch, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, appName+":server:"), c.Logger)
			defer runner.Close()

			var defaults pipeline.Options
			c.applyConfig(&defaults)

			printInfo("Serving %s documents on %s", StyleValue.Render(c.Config.Store.Backend), StyleValue.Render(addr))
			return server.New(server.Config{
				Store:    st,
				Runner:   runner,
				Defaults: defaults,
				Logger:   c.Logger,
			}).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render every request")

	return cmd
}
