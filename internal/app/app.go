package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coolview/coolview/internal/config"
	"github.com/coolview/coolview/internal/daemon"
	"github.com/coolview/coolview/internal/engine"
	"github.com/coolview/coolview/internal/prefs"
	"github.com/coolview/coolview/internal/state"
	"github.com/coolview/coolview/internal/ui"
)

// catalogAttempts bounds how often the startup catalog load is retried
// before coolview gives up. Polling never starts on a failed load.
const catalogAttempts = 3

// Options configure the coolview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/coolview/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the coolview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := daemon.NewClient(cfg.DaemonAddress)
	if err != nil {
		return fmt.Errorf("init daemon client: %w", err)
	}

	store := state.NewStore()
	sync := engine.New(client, store, cfg.DriftThreshold, cfg.HistoryCapacity)

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	if err := loadCatalog(ctx, sync, interval); err != nil {
		return err
	}

	StartPoller(ctx, sync, store, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// loadCatalog retries the whole startup sequence, not the poll loop: until
// a load has succeeded there is nothing to synchronize against.
func loadCatalog(ctx context.Context, sync *engine.Synchronizer, interval time.Duration) error {
	var err error
	for attempt := 1; attempt <= catalogAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		if err = sync.Load(ctx); err == nil {
			return nil
		}
		log.Printf("catalog load failed (attempt %d/%d): %v", attempt, catalogAttempts, err)
	}
	return fmt.Errorf("load device catalog: %w", err)
}
