package main

import (
	"crimestats/internal/api"
	"crimestats/internal/config"
	"crimestats/internal/engine"
	"crimestats/internal/logger"
	"os"
	"time"
)

func main() {
	cfg := config.Load()
	lg := logger.New("crimestats", cfg.LogLevel, os.Stdout)

	// 1. API is live immediately and answers 503 until the store is published
	h := api.NewHandler()
	e := api.NewServer(h, cfg.RateLimit, lg)

	path := cfg.DataPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 2. Load in background
	go func() {
		lg.Info("BACKGROUND: Loading crime statistics...")
		t0 := time.Now()

		store, err := engine.LoadFile(path,
			engine.WithLogger(lg),
			engine.WithSkipMalformed(cfg.SkipMalformed),
		)
		if err != nil {
			lg.Fatalf("BACKGROUND: load failed: %v", err)
		}

		if err := h.SetStore(store); err != nil {
			lg.Errorf("BACKGROUND: %v", err)
		}
		lg.Infof("BACKGROUND: %d years loaded in %v. API is fully ready.", store.Len(), time.Since(t0))
	}()

	// 3. Start Server
	lg.Infof("Server ready on %s (data loading in background...)", cfg.Addr)
	e.Logger.Fatal(e.Start(cfg.Addr))
}
