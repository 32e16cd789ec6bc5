package main

import (
	"errors"
	"fmt"
	"os"

	"taskeasy/internal/app"
	"taskeasy/internal/config"
	"taskeasy/internal/logging"
	"taskeasy/internal/storage"
	"taskeasy/internal/store"
	"taskeasy/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	s := store.New(db,
		store.WithKey(cfg.StorageKey),
		store.WithLogger(logger.WithPrefix("store")),
	)
	s.Load()
	logger.Info("session started", "config", configPath, "db", cfg.DBPath, "tasks", s.Len())

	a := app.New(s, cfg.Filter(), logger)
	if err := ui.Run(a, cfg, configPath, firstLaunch, logger.WithPrefix("ui")); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
