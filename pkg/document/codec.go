package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// FormatFor picks the encoding from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat,
		"cannot tell the format of %q: use a .toml, .yaml, .yml or .json extension", path)
}

// ParseFormat resolves a format name such as "yml" or "JSON".
func ParseFormat(name string) (Format, error) {
	return FormatFor("." + strings.TrimPrefix(strings.TrimSpace(name), "."))
}

// Read decodes and validates a document from r.
func Read(r io.Reader, f Format) (*Document, error) {
	var d Document
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&d)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&d)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&d)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode %s document", f)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte, f Format) (*Document, error) {
	return Read(bytes.NewReader(data), f)
}

// Load reads the document at path, choosing the format by extension.
func Load(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}

// Write encodes d to w.
func Write(d *Document, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	default:
		return apperr.New(apperr.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal encodes d into memory.
func Marshal(d *Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes d to path, choosing the format by extension.
func Save(d *Document, path string) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(d, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
