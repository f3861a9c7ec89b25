// Package main is the entry point for the hostforge HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hostforge/adapters/storage"
	"hostforge/api"
	"hostforge/core/engine"
	"hostforge/internal/config"
	"hostforge/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := run(*cfgPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	config.Set(cfg)
	if addr != "" {
		cfg.Server.ListenAddress = addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return err
	}

	eng, err := engine.New(ctx, store, engine.Config{
		Prefix:   cfg.Naming.Prefix,
		MaxBatch: cfg.Naming.MaxBatch,
		Logger:   logging.Named("engine"),
	})
	if err != nil {
		_ = store.Close()
		return err
	}
	defer eng.Close()

	server := api.NewServer(eng, api.ServerConfig{
		Version: version,
		Logger:  logging.Named("http"),
		Debug:   cfg.Server.Debug,
	})

	logging.Info("hostforge server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.ListenAddress),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("prefix", eng.Prefix()),
	)
	return server.ListenAndServe(ctx, cfg.Server.ListenAddress)
}
