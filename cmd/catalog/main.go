package main

import (
	"log/slog"
	"os"

	"github.com/tourbook/catalog/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler).With("service", cfg.ServiceName))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()

	if err != nil {
		return nil, err
	}

	setupLogger(cfg)
	return cfg, nil
}
