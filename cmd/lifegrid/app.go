package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/lifegrid/internal/alarm"
	"github.com/sandeepkv93/lifegrid/internal/config"
	"github.com/sandeepkv93/lifegrid/internal/logging"
	"github.com/sandeepkv93/lifegrid/internal/notify"
	"github.com/sandeepkv93/lifegrid/internal/scheduler"
	"github.com/sandeepkv93/lifegrid/internal/settings"
	"github.com/sandeepkv93/lifegrid/internal/storage"
	"github.com/sandeepkv93/lifegrid/internal/todo"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    config.RuntimeConfig
	log    *logging.Logger
	kv     storage.KV
	todos  *todo.Store
	prefs  *settings.Store
	alarms *alarm.Scheduler
}

func openFromFlags(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	a, err := openApp(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	return a, nil
}

// openApp wires storage, stores and the alarm scheduler. The scheduler is
// left stopped; only the TUI starts it.
func openApp(ctx context.Context, cfg config.RuntimeConfig, logger *logging.Logger) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	kv, err := storage.Open(cfg.StorageBackend, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	logger.Printf("storage: %s at %s", cfg.StorageBackend, cfg.DataPath)

	sink := notify.Multi{notify.Func(func(title, body string) error {
		logger.Printf("notify: %s: %s", title, body)
		return nil
	})}
	if cfg.DesktopNotifications {
		sink = append(sink, notify.Exec{})
	}
	alarms := alarm.New(scheduler.NewEngine(cfg.SchedulerBuffer), sink, logger.With("alarm"))
	a := &app{
		cfg:    cfg,
		log:    logger,
		kv:     kv,
		todos:  todo.New(kv, alarms, logger.With("todo"), now),
		prefs:  settings.New(kv, logger.With("settings")),
		alarms: alarms,
	}
	// Unreadable todos would be overwritten by the next write, so refuse to start.
	if err := a.todos.Load(ctx); err != nil {
		alarms.Stop()
		_ = kv.Close()
		return nil, fmt.Errorf("load todos: %w", err)
	}
	// Bad settings are logged by the store and replaced by defaults.
	_ = a.prefs.Load(ctx)
	return a, nil
}

func (a *app) Close() error {
	a.alarms.Stop()
	return errors.Join(a.kv.Close(), a.log.Close())
}
