package config

import (
	"os"
	"path/filepath"
	"testing"

	"sendfile/internal/fileserver"
)

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/sendfile.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(`[[[invalid toml`), 0644)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(""), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("log_level = %q, want %q", cfg.Server.LogLevel, "info")
	}
	if cfg.Files.Root != "." {
		t.Errorf("root = %q, want %q", cfg.Files.Root, ".")
	}
	if len(cfg.Files.Index) != 1 || cfg.Files.Index[0] != "index.html" {
		t.Errorf("index = %v, want [index.html]", cfg.Files.Index)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !opts.AcceptRanges || !opts.CacheControl || !opts.ETag || !opts.LastModified || !opts.Redirect {
		t.Errorf("unexpected default options: %+v", opts)
	}
	if opts.Fallthrough {
		t.Errorf("fallthrough should default to false for a standalone server")
	}
	if opts.Dotfiles != fileserver.DotfilesLegacy {
		t.Errorf("dotfiles = %v, want legacy", opts.Dotfiles)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	if err := os.WriteFile(path, []byte(`
[server]
listen_addr = ":9000"
log_level   = "debug"

[files]
root       = "/srv/www"
index      = ["index.htm"]
extensions = ["html"]
dotfiles   = "deny"
max_age    = "1h"
immutable  = true
`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("listen_addr = %q, want %q", cfg.Server.ListenAddr, ":9000")
	}
	if cfg.Files.Root != "/srv/www" {
		t.Errorf("root = %q, want %q", cfg.Files.Root, "/srv/www")
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Dotfiles != fileserver.DotfilesDeny {
		t.Errorf("dotfiles = %v, want deny", opts.Dotfiles)
	}
	if !opts.Immutable {
		t.Error("immutable should be true")
	}
	if opts.MaxAge.String() != "1h0m0s" {
		t.Errorf("max_age = %v, want 1h0m0s", opts.MaxAge)
	}
	if len(opts.Extensions) != 1 || opts.Extensions[0] != "html" {
		t.Errorf("extensions = %v, want [html]", opts.Extensions)
	}
}

func TestLoad_InvalidDotfilesPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(`
[files]
dotfiles = "sometimes"
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cfg.Options(); err == nil {
		t.Fatal("expected error for unknown dotfiles policy")
	}
}

func TestLoad_InvalidMaxAge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(`
[files]
max_age = "not-a-duration"
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cfg.Options(); err == nil {
		t.Fatal("expected error for invalid max_age")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(""), 0644)

	t.Setenv("SENDFILE_LISTEN_ADDR", ":7000")
	t.Setenv("SENDFILE_ROOT", "/env/root")
	t.Setenv("SENDFILE_FALLTHROUGH", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":7000" {
		t.Errorf("listen_addr = %q, want %q", cfg.Server.ListenAddr, ":7000")
	}
	if cfg.Files.Root != "/env/root" {
		t.Errorf("root = %q, want %q", cfg.Files.Root, "/env/root")
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !opts.Fallthrough {
		t.Error("fallthrough should be true from env override")
	}
}

func TestLoad_ConfigTakesPrecedenceOverEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sendfile.toml")
	os.WriteFile(path, []byte(`
[server]
listen_addr = ":9000"
`), 0644)

	t.Setenv("SENDFILE_LISTEN_ADDR", ":7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("listen_addr = %q, want %q (config should win)", cfg.Server.ListenAddr, ":9000")
	}
}
