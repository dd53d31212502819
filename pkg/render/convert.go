package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

// ToPDF converts SVG pages to a single PDF with one page per input, using
// rsvg-convert.
func ToPDF(ctx context.Context, pages ...[]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "no pages to convert")
	}
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, apperr.New(apperr.ErrCodeUnsupported,
			"pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	// rsvg-convert reads a single document from stdin; several pages have
	// to be passed as files.
	dir, err := os.MkdirTemp("", "corescene-pdf-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, svg := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%04d.svg", i+1))
		if err := os.WriteFile(path, svg, 0o600); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		args = append(args, path)
	}
	return rsvgConvert(ctx, args...)
}

// rsvgConvert runs rsvg-convert and returns its output.
func rsvgConvert(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
