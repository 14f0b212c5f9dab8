package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchwise/internal/clients/metadata"
	"watchwise/internal/config"
	"watchwise/internal/handlers"
	"watchwise/internal/utils"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := utils.NewLogger(cfg.App.Debug, cfg.App.LogFormat, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration:", err)
	}
	if cfg.OMDb.APIKey == "" {
		logger.Warn("No OMDb API key configured; upstream searches will be rejected")
	}

	// Validate guarantees the default type parses
	defaultType, _ := metadata.ParseMediaType(cfg.Search.DefaultType)

	client := metadata.NewOMDbClient(cfg.OMDb.URL, cfg.OMDb.APIKey, cfg.OMDb.Version, cfg.OMDb.Timeout, logger)
	server := handlers.NewServer(cfg, handlers.NewAPIHandler(client, defaultType, logger), logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Unable to bind application to", cfg.Address(), ":", err)
		}
	}()

	// Wait for interrupt
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Graceful shutdown failed:", err)
	}
}
