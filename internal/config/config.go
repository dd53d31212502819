// Package config loads corescene settings from defaults, an optional TOML
// file and CORESCENE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "corescene"

// Config holds application configuration.
type Config struct {
	Paper   string  `mapstructure:"paper"`
	PerPage float64 `mapstructure:"per_page"`
	Header  bool    `mapstructure:"header"`
	Footer  bool    `mapstructure:"footer"`
	Borders bool    `mapstructure:"borders"`

	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
}

// CacheConfig configures the artifact cache. A RedisAddr selects Redis over
// the file cache in Dir.
type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
}

// StoreConfig configures the document store.
type StoreConfig struct {
	Backend       string `mapstructure:"backend"`
	Path          string `mapstructure:"path"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// ServerConfig configures `corescene serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration. A missing config file is not an error; a
// malformed one is.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("paper", "")
	v.SetDefault("per_page", 0.0)
	v.SetDefault("header", true)
	v.SetDefault("footer", true)
	v.SetDefault("borders", true)
	v.SetDefault("cache.dir", filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), appName))
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("store.backend", "bolt")
	v.SetDefault("store.path", filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), appName, "documents.db"))
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_database", appName)
	v.SetDefault("server.addr", ":8080")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("CORESCENE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", Path(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Path returns the config file location: CORESCENE_CONFIG when set, else
// $XDG_CONFIG_HOME/corescene/config.toml.
func Path() string {
	if p := os.Getenv("CORESCENE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

func xdgDir(env, fallback string) string {
	if d := os.Getenv(env); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), fallback)
	}
	return filepath.Join(home, fallback)
}
