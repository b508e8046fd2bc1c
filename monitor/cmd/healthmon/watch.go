package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vitalsight/healthmon/monitor/internal/config"
	"github.com/vitalsight/healthmon/monitor/internal/ingest"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the report every time the input file changes",
		Long: `watch reports on the input file once, then again after every change until
interrupted. When --config is given the config file is watched too and
format, export and alert rule changes apply to the next run.`,
		Args: cobra.NoArgs,
		RunE: a.watch,
	}
}

func (a *app) watch(cmd *cobra.Command, _ []string) error {
	cfg, _ := a.snapshot()
	path := cfg.Monitor.Input
	if path == ingest.InputSample || path == ingest.InputStdin {
		return errors.New("watch: --input must name a file")
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The config watcher only swaps state; runs happen on this goroutine.
	runOnce := func() {
		cfg, engine := a.snapshot()
		if _, err := a.runOnce(ctx, cfg, engine, false); err != nil {
			slog.Error("healthmon: run failed", "input", path, "err", err)
		}
	}

	if a.configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(ctx, a.configPath, cfg.Monitor.WatchDebounce, func(updated *config.Config) {
				if err := a.apply(updated); err != nil {
					slog.Error("healthmon: config rejected, keeping previous", "err", err)
				}
			})
			if err != nil {
				slog.Error("healthmon: config watcher stopped", "err", err)
			}
		}()
	}

	runOnce()
	return ingest.Watch(ctx, path, cfg.Monitor.WatchDebounce, runOnce)
}
