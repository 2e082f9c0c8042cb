package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"crpg-api/config"
	"crpg-api/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if cfg.GeneratedSecret {
		slog.Warn("JWT_SECRET not set, generated a temporary secret; tokens will not survive a restart")
	}

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		slog.Error("failed to load rules", "path", cfg.RulesFile, "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(cfg, rules)

	if cfg.RulesFile != "" {
		go func() {
			if err := config.WatchRules(ctx, cfg.RulesFile, srv.SetRules); err != nil {
				slog.Error("rules watcher stopped", "path", cfg.RulesFile, "err", err)
			}
		}()
	}

	slog.Info("starting character server", "port", cfg.Port, "allow_negative", rules.AllowNegative)
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("server shut down")
}
