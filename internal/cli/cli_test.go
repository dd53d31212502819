package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/render"
)

// coreDoc spans 40 units at 25 units per page: two pages.
const coreDoc = `title = "Core 12A"
paper = "400x600"
per_page = 25.0

[[tracks]]
type = "ruler"

[[tracks]]
type = "intervals"
constraint = "*"

[[intervals]]
type = "interval"
top = 0.0
base = 12.5
label = "sand"

[[intervals]]
type = "interval"
top = 12.5
base = 40.0
`

// testEnv points config, cache and store at a temporary directory and
// returns it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CORESCENE_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("CORESCENE_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("CORESCENE_CACHE_REDIS_ADDR", "")
	t.Setenv("CORESCENE_STORE_BACKEND", "bolt")
	t.Setenv("CORESCENE_STORE_PATH", filepath.Join(dir, "documents.db"))
	return dir
}

func writeDoc(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	saved := out
	out = &buf
	defer func() { out = saved }()

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)
	base := filepath.Join(dir, "out", "core")

	formats, names := "svg", []string{"core-p1.svg", "core-p2.svg"}
	if _, err := exec.LookPath("rsvg-convert"); err == nil {
		formats, names = "svg,pdf", append(names, "core.pdf")
	}

	got, err := execute(t, "render", doc, "-f", formats, "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range names {
		p := filepath.Join(dir, "out", name)
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
		if !strings.Contains(got, p) {
			t.Errorf("output does not list %s:\n%s", p, got)
		}
	}
	if !strings.Contains(got, "2 pages") || !strings.Contains(got, fmt.Sprintf("%d files", len(names))) {
		t.Errorf("summary missing:\n%s", got)
	}

	// The second run is served from the file cache.
	got, err = execute(t, "render", doc, "-f", formats, "-o", base)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(got, iconCached) {
		t.Errorf("second render not cached:\n%s", got)
	}
}

func TestRenderSingleFile(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)
	target := filepath.Join(dir, "first.png")

	if _, err := execute(t, "render", doc, "-f", "png", "--page", "1", "-o", target, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("missing %s: %v", target, err)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)

	tests := []struct {
		name string
		args []string
		code apperr.Code
	}{
		{"missing file", []string{"render", filepath.Join(dir, "nope.toml")}, apperr.ErrCodeFileNotFound},
		{"bad format", []string{"render", doc, "-f", "gif"}, apperr.ErrCodeInvalidFormat},
		{"bad paper", []string{"render", doc, "--paper", "a44"}, apperr.ErrCodeInvalidPaper},
		{"bad page", []string{"render", doc, "--page", "9"}, apperr.ErrCodeInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestInfoCommand(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)

	got, err := execute(t, "info", doc)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Core 12A", "Pages", "intervals", "ruler", "2 interval"} {
		if !strings.Contains(got, want) {
			t.Errorf("info output lacks %q:\n%s", want, got)
		}
	}
}

func TestPaperCommands(t *testing.T) {
	testEnv(t)

	got, err := execute(t, "paper", "list")
	if err != nil {
		t.Fatalf("paper list: %v", err)
	}
	for _, want := range []string{"A4", "Letter (72dpi)", "Tabloid"} {
		if !strings.Contains(got, want) {
			t.Errorf("paper list lacks %q", want)
		}
	}

	got, err = execute(t, "paper", "show", "a4")
	if err != nil {
		t.Fatalf("paper show: %v", err)
	}
	if !strings.Contains(got, "595 x 842 pt") {
		t.Errorf("paper show a4:\n%s", got)
	}

	if _, err := execute(t, "paper", "show", "a44"); !apperr.Is(err, apperr.ErrCodeInvalidPaper) {
		t.Errorf("paper show a44: err = %v, want INVALID_PAPER", err)
	}
}

func TestStoreCommands(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)

	if _, err := execute(t, "store", "put", doc, "--id", "core-12a"); err != nil {
		t.Fatalf("store put: %v", err)
	}

	got, err := execute(t, "store", "ls")
	if err != nil {
		t.Fatalf("store ls: %v", err)
	}
	if !strings.Contains(got, "core-12a") || !strings.Contains(got, "toml") {
		t.Errorf("store ls:\n%s", got)
	}

	got, err = execute(t, "store", "get", "core-12a")
	if err != nil {
		t.Fatalf("store get: %v", err)
	}
	if got != coreDoc {
		t.Errorf("store get returned %q", got)
	}

	copyPath := filepath.Join(dir, "copy.toml")
	if _, err := execute(t, "store", "get", "core-12a", "-o", copyPath); err != nil {
		t.Fatalf("store get -o: %v", err)
	}
	if data, err := os.ReadFile(copyPath); err != nil || string(data) != coreDoc {
		t.Errorf("copy = %q, %v", data, err)
	}

	if _, err := execute(t, "store", "rm", "core-12a"); err != nil {
		t.Fatalf("store rm: %v", err)
	}
	if _, err := execute(t, "store", "get", "core-12a"); !apperr.IsNotFound(err) {
		t.Errorf("get after rm: err = %v, want not found", err)
	}

	got, err = execute(t, "store", "rm", "core-12a")
	if !apperr.IsNotFound(err) {
		t.Errorf("second rm: err = %v, want not found", err)
	}
	if !strings.Contains(got, iconError+" core-12a") {
		t.Errorf("second rm did not report the failure:\n%s", got)
	}
}

func TestStorePutRejectsInvalid(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "bad.toml", "origin = \"sideways\"\n")

	_, err := execute(t, "store", "put", doc)
	if !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want INVALID_DOCUMENT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "core.toml", coreDoc)

	got, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(got) != filepath.Join(dir, "cache") {
		t.Errorf("cache path = %q", got)
	}

	if _, err := execute(t, "render", doc, "-o", filepath.Join(dir, "out", "core")); err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(got, "Cleared") || strings.Contains(got, "Cleared 0 ") {
		t.Errorf("cache clear:\n%s", got)
	}
}

func TestMalformedConfig(t *testing.T) {
	dir := testEnv(t)
	writeDoc(t, dir, "config.toml", "paper = [")

	if _, err := execute(t, "paper", "list"); err == nil {
		t.Error("malformed config accepted")
	}
}

func TestConfigDefaults(t *testing.T) {
	dir := testEnv(t)
	writeDoc(t, dir, "config.toml", "per_page = 50.0\n")
	doc := writeDoc(t, dir, "core.toml", strings.Replace(coreDoc, "per_page = 25.0\n", "", 1))

	got, err := execute(t, "render", doc, "-o", filepath.Join(dir, "out", "core"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "1 page") {
		t.Errorf("config per_page ignored:\n%s", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "cores/core.toml", "cores/core"},
		{"out/core.svg", "core.toml", "out/core"},
		{"out/core.pdf", "core.toml", "out/core"},
		{"out/core", "core.toml", "out/core"},
		{"out/core.v2", "core.toml", "out/core.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []render.Format
	}{
		{"", []render.Format{render.FormatSVG}},
		{"svg", []render.Format{render.FormatSVG}},
		{" PNG , pdf ", []render.Format{render.FormatPNG, render.FormatPDF}},
		{"svg,,png", []render.Format{render.FormatSVG, render.FormatPNG}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	arts := []render.Artifact{
		{Format: render.FormatSVG, Page: 1, Data: []byte("<svg/>")},
		{Format: render.FormatSVG, Page: 2, Data: []byte("<svg/>")},
	}

	paths, err := writeArtifacts(arts, filepath.Join(dir, "core.svg"), "core.toml")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "core-p1.svg"), filepath.Join(dir, "core-p2.svg")}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	single := filepath.Join(dir, "only.svg")
	paths, err = writeArtifacts(arts[:1], single, "core.toml")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("paths = %v, want [%s]", paths, single)
	}
}
