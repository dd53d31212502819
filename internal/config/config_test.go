package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// isolate points every XDG directory and the config path into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("CORESCENE_CONFIG", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Header:  true,
		Footer:  true,
		Borders: true,
		Cache: CacheConfig{
			Dir: filepath.Join(dir, "cache", "corescene"),
			TTL: 24 * time.Hour,
		},
		Store: StoreConfig{
			Backend:       "bolt",
			Path:          filepath.Join(dir, "data", "corescene", "documents.db"),
			MongoDatabase: "corescene",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `paper = "letter"
per_page = 20.0
footer = false

[cache]
ttl = "1h"
redis_addr = "localhost:6379"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CORESCENE_CONFIG", path)
	t.Setenv("CORESCENE_PAPER", "a3")
	t.Setenv("CORESCENE_SERVER_ADDR", "127.0.0.1:9000")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Paper != "a3" {
		t.Errorf("Paper = %q, want env override a3", got.Paper)
	}
	if got.PerPage != 20 || got.Footer || !got.Header {
		t.Errorf("PerPage, Footer, Header = %g, %v, %v", got.PerPage, got.Footer, got.Header)
	}
	if got.Cache.TTL != time.Hour || got.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v", got.Cache)
	}
	if got.Store.Backend != "mongo" || got.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Store = %+v", got.Store)
	}
	if got.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", got.Server.Addr)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("paper = "), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CORESCENE_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a malformed file")
	}
}

func TestPath(t *testing.T) {
	dir := isolate(t)
	if got, want := Path(), filepath.Join(dir, "config", "corescene", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	t.Setenv("CORESCENE_CONFIG", "/etc/corescene.toml")
	if got := Path(); got != "/etc/corescene.toml" {
		t.Errorf("Path() = %q with CORESCENE_CONFIG", got)
	}
}
