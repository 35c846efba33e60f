package main

import (
	"crimestats/internal/cli"
	"crimestats/internal/config"
	"crimestats/internal/engine"
	"crimestats/internal/logger"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

func main() {
	start := time.Now()
	cfg := config.Load()
	lg := logger.New("crimestats", cfg.LogLevel, os.Stderr)

	// The data file is the first argument; config supplies the fallback.
	path := cfg.DataPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	store, err := engine.LoadFile(path,
		engine.WithLogger(lg),
		engine.WithSkipMalformed(cfg.SkipMalformed),
	)
	if err != nil {
		lg.Errorf("Error loading %s: %v", path, err)
		os.Exit(1)
	}

	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	menu := cli.NewMenu(store, os.Stdin, os.Stdout, useColor)
	if err := menu.Run(); err != nil {
		lg.Errorf("Error reading input: %v", err)
	}

	fmt.Println("Thank you for using the U.S. Crime Stats application")
	fmt.Println(cli.FormatElapsed(time.Since(start)))
}
