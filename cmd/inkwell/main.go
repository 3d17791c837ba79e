package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/config"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return true
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// baseDir resolves the data directory: $INKWELL_DIR or ~/.inkwell.
func baseDir() (string, error) {
	if dir := os.Getenv("INKWELL_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".inkwell"), nil
}

func main() {
	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	dir, err := baseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	// Logs go to stderr: stdout carries MCP stdio traffic and command
	// output.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	c, err := cache.New(cacheConfig(cfg))
	if err != nil {
		// Degraded mode: every read goes straight to the store.
		log.Warn("cache disabled", "error", err)
		c = nil
	}

	svc := ops.New(database, c, cfg, log)

	app := newCLIApp(svc, cfg, log)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cacheConfig maps the application config onto the cache defaults.
func cacheConfig(cfg *config.Config) cache.Config {
	cc := cache.DefaultConfig()
	if cfg.CacheCapacity > 0 {
		cc.Capacity = cfg.CacheCapacity
	}
	if cfg.CacheShards > 0 {
		cc.NumShards = cfg.CacheShards
	}
	if cfg.ListTTLSeconds > 0 {
		cc.ListTTL = time.Duration(cfg.ListTTLSeconds) * time.Second
	}
	if cfg.EntryTTLSeconds > 0 {
		cc.EntryTTL = time.Duration(cfg.EntryTTLSeconds) * time.Second
	}
	return cc
}
