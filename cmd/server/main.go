package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/edupipe/edupipe/internal/api"
	"github.com/edupipe/edupipe/internal/builders"
	"github.com/edupipe/edupipe/internal/config"
	"github.com/edupipe/edupipe/internal/engine"
	"github.com/edupipe/edupipe/internal/statement"
	"github.com/edupipe/edupipe/internal/transport"
)

func main() {
	// Optional .env for endpoint credentials referenced from the config.
	_ = godotenv.Load()

	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/edupipe.yaml", "Path to YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Builder registry ──────────────────────────────────────────────────────
	reg := builders.NewRegistry()
	slog.Info("builders registered", "events", len(reg.Kinds()))

	// ── Processor + engine ────────────────────────────────────────────────────
	proc, err := newProcessor(cfg)
	if err != nil {
		slog.Error("failed to build transport", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(ctx, reg, proc, engine.Conf{
		Workers:     cfg.Engine.Workers,
		QueueDepth:  cfg.Engine.QueueDepth,
		EmitTimeout: time.Duration(cfg.Engine.EmitTimeoutMs) * time.Millisecond,
	})

	rebuild := func(newCfg *config.Config) error {
		p, err := newProcessor(newCfg)
		if err != nil {
			return err
		}
		eng.SwapProcessor(p)
		slog.Info("processor rebuilt", "platform", newCfg.Platform.ID)
		return nil
	}

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.Config) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		if err := rebuild(newCfg); err != nil {
			slog.Warn("hot-reload skipped: rebuild failed", "err", err)
		}
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(eng, loader, rebuild)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr, "platform", cfg.Platform.ID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel() // stop workers
	eng.Shutdown()
	slog.Info("goodbye")
}

func newProcessor(cfg *config.Config) (*statement.Processor, error) {
	tr, err := transport.New(cfg.Transport, cfg.Platform.App)
	if err != nil {
		return nil, err
	}
	return statement.NewProcessor(statement.Platform{
		ID:   cfg.Platform.ID,
		Name: cfg.Platform.Name,
		App:  cfg.Platform.App,
	}, tr), nil
}
