// Package config loads sendfile's TOML configuration file into a
// populated fileserver.Options plus the surrounding server settings,
// following TOML > env var > default precedence for every scalar field.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"sendfile/internal/fileserver"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Files  FilesConfig  `toml:"files"`
}

type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
	LogLevel   string `toml:"log_level"`
	HealthAddr string `toml:"health_addr"`
}

// FilesConfig mirrors the TOML-configurable fileserver.Options fields so a
// TOML file can configure the responder directly (SetHeaders, Start and
// End have no config counterpart); see Config.Options.
type FilesConfig struct {
	Root         string   `toml:"root"`
	Index        []string `toml:"index"`
	Extensions   []string `toml:"extensions"`
	Dotfiles     string   `toml:"dotfiles"`
	MaxAge       string   `toml:"max_age"`
	Immutable    bool     `toml:"immutable"`
	AcceptRanges bool     `toml:"accept_ranges"`
	CacheControl bool     `toml:"cache_control"`
	ETag         bool     `toml:"etag"`
	LastModified bool     `toml:"last_modified"`
	Redirect     bool     `toml:"redirect"`
	Fallthrough  bool     `toml:"fallthrough"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Warn about unknown keys (likely typos).
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("unknown keys in config file (check for typos)", "keys", strings.Join(keys, ", "))
	}

	// Scalar fields follow TOML > env var > default precedence. Index is
	// TOML > default; Extensions is TOML only.
	strDefault(&cfg.Server.ListenAddr, "SENDFILE_LISTEN_ADDR", ":8080")
	strDefault(&cfg.Server.LogLevel, "SENDFILE_LOG_LEVEL", "info")
	strDefault(&cfg.Server.HealthAddr, "SENDFILE_HEALTH_ADDR", "")
	strDefault(&cfg.Files.Root, "SENDFILE_ROOT", ".")
	strDefault(&cfg.Files.Dotfiles, "SENDFILE_DOTFILES", "")
	strDefault(&cfg.Files.MaxAge, "SENDFILE_MAX_AGE", "")

	boolDefault(md, &cfg.Files.AcceptRanges, "SENDFILE_ACCEPT_RANGES", true, "files", "accept_ranges")
	boolDefault(md, &cfg.Files.CacheControl, "SENDFILE_CACHE_CONTROL", true, "files", "cache_control")
	boolDefault(md, &cfg.Files.ETag, "SENDFILE_ETAG", true, "files", "etag")
	boolDefault(md, &cfg.Files.LastModified, "SENDFILE_LAST_MODIFIED", true, "files", "last_modified")
	boolDefault(md, &cfg.Files.Redirect, "SENDFILE_REDIRECT", true, "files", "redirect")
	boolDefault(md, &cfg.Files.Fallthrough, "SENDFILE_FALLTHROUGH", false, "files", "fallthrough")
	boolDefault(md, &cfg.Files.Immutable, "SENDFILE_IMMUTABLE", false, "files", "immutable")

	if len(cfg.Files.Index) == 0 && !md.IsDefined("files", "index") {
		cfg.Files.Index = []string{"index.html"}
	}

	return &cfg, nil
}

// Options builds the fileserver.Options this configuration describes.
// Root is left empty; the caller passes it separately to fileserver.Mount,
// which resolves and sandboxes it.
func (c *Config) Options() (fileserver.Options, error) {
	opts := fileserver.NewOptions()
	opts.Index = c.Files.Index
	opts.Extensions = c.Files.Extensions
	opts.Immutable = c.Files.Immutable
	opts.AcceptRanges = c.Files.AcceptRanges
	opts.CacheControl = c.Files.CacheControl
	opts.ETag = c.Files.ETag
	opts.LastModified = c.Files.LastModified
	opts.Redirect = c.Files.Redirect
	opts.Fallthrough = c.Files.Fallthrough

	switch c.Files.Dotfiles {
	case "", "legacy":
		opts.Dotfiles = fileserver.DotfilesLegacy
	case "allow":
		opts.Dotfiles = fileserver.DotfilesAllow
	case "deny":
		opts.Dotfiles = fileserver.DotfilesDeny
	case "ignore":
		opts.Dotfiles = fileserver.DotfilesIgnore
	default:
		return opts, fmt.Errorf("files.dotfiles: unknown policy %q", c.Files.Dotfiles)
	}

	if c.Files.MaxAge != "" {
		d, ok := fileserver.ParseMaxAge(c.Files.MaxAge)
		if !ok {
			return opts, fmt.Errorf("files.max_age: invalid duration %q", c.Files.MaxAge)
		}
		opts.MaxAge = d
	}

	return opts, nil
}

// strDefault fills *dst from envKey if *dst is empty (not set in TOML),
// then falls back to def.
func strDefault(dst *string, envKey, def string) {
	if *dst == "" {
		*dst = os.Getenv(envKey)
	}
	if *dst == "" {
		*dst = def
	}
}

// boolDefault fills *dst from envKey if the TOML key was not defined,
// then falls back to def. Accepts "true" and "1" as truthy values.
func boolDefault(md toml.MetaData, dst *bool, envKey string, def bool, tomlPath ...string) {
	if md.IsDefined(tomlPath...) {
		return
	}
	if v := os.Getenv(envKey); v != "" {
		*dst = v == "true" || v == "1"
		return
	}
	*dst = def
}
