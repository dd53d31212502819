package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/pkg/pipeline"
	"github.com/matzehuels/corescene/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string // output file (single artifact) or base path
	formats string // comma-separated output formats
	paper   string
	perPage float64
	pages   []int
	zoom    float64
	section string
	noCache bool
	refresh bool
}

// renderCommand creates the render command, which pages a document and
// writes one file per page for SVG and PNG and a single PDF.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a scene document to SVG, PNG or PDF pages",
		Example: `  corescene render core.toml
  corescene render core.toml -f svg,pdf --paper letter --per-page 50
  corescene render core.yaml -f png --zoom 2 --page 1 -o out/core.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single artifact) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper name or WxH in points (overrides the document)")
	cmd.Flags().Float64Var(&opts.perPage, "per-page", 0, "domain units per page (overrides the document)")
	cmd.Flags().IntSliceVar(&opts.pages, "page", nil, "only render these pages (svg, png)")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1, "PNG zoom factor")
	cmd.Flags().StringVar(&opts.section, "section", "", "section name printed in the page header")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results but store fresh ones")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	logger := loggerFromContext(ctx)

	opts, err := pipeline.FromFile(input)
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(ro.formats)
	opts.Paper = ro.paper
	opts.PerPage = ro.perPage
	opts.Pages = ro.pages
	opts.Zoom = ro.zoom
	opts.Section = ro.section
	opts.Refresh = ro.refresh
	c.applyConfig(&opts)

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinner(ctx, "Rendering "+filepath.Base(input))
	spin.Start()
	result, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			printWarning("Render of %s interrupted", input)
		}
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	paths, err := writeArtifacts(result.Artifacts, ro.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printSummary([]string{
		plural(result.Pages, "page"),
		plural(len(result.Artifacts), "file"),
	}, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact next to base and returns the paths.
// A single artifact goes to output verbatim when output names a file of
// that format.
func writeArtifacts(arts []render.Artifact, output, input string) ([]string, error) {
	if len(arts) == 1 && output != "" && strings.EqualFold(filepath.Ext(output), "."+string(arts[0].Format)) {
		if err := writeFile(output, arts[0].Data); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}
	base := basePath(output, input)
	paths := make([]string, 0, len(arts))
	for _, a := range arts {
		p := a.Name(base)
		if err := writeFile(p, a.Data); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// parseFormats splits the --format flag. Validation happens in the
// pipeline.
func parseFormats(s string) []render.Format {
	if strings.TrimSpace(s) == "" {
		return []render.Format{render.FormatSVG}
	}
	var out []render.Format
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, render.Format(strings.ToLower(f)))
		}
	}
	return out
}

// basePath derives the base output path. Without output it is the input
// minus its extension; a known format extension on output is dropped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
