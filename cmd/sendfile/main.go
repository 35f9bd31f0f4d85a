// Command sendfile serves a filesystem root over HTTP: config load,
// logging, metrics/health, and graceful shutdown wired around the
// fileserver.Mount handler.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sendfile/config"
	"sendfile/internal/fileserver"
	"sendfile/internal/httplog"
	"sendfile/internal/metrics"
)

func main() {
	configPath := flag.String("config", "sendfile.toml", "path to TOML config file")
	root := flag.String("root", "", "filesystem root to serve (overrides config)")
	listenAddr := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *root != "" {
		cfg.Files.Root = *root
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	})))

	opts, err := cfg.Options()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	fileHandler, err := fileserver.Mount("", cfg.Files.Root, opts, nil)
	if err != nil {
		slog.Error("mounting file responder", "error", err)
		os.Exit(1)
	}

	handler := httplog.Wrap(metrics.Middleware(fileHandler), slog.String("root", cfg.Files.Root))
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	healthSrv := startHealthServer(cfg.Server.HealthAddr)

	go func() {
		slog.Info("serving", "addr", cfg.Server.ListenAddr, "root", cfg.Files.Root)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if healthSrv != nil {
		_ = healthSrv.Shutdown(shutdownCtx)
	}
}

// startHealthServer, if addr is non-empty, starts a separate listener
// exposing /healthz and /metrics, and returns it so the caller can shut
// it down alongside the main server. Returns nil when addr is empty.
func startHealthServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		slog.Info("health/metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("health server failed", "error", err)
		}
	}()
	return srv
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
