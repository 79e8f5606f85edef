package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <sites-file>",
	Short: "Recompute and print a summary every time the sites file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	if diagram, err := computeDiagram(ctx, path); err != nil {
		slog.Warn("initial compute failed", "error", err)
	} else if err := printSummary(os.Stdout, diagramSummary(diagram)); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			recomputeOnChange(ctx, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func recomputeOnChange(ctx context.Context, path string) {
	diagram, err := computeDiagram(ctx, path)
	if err != nil {
		slog.Warn("recompute failed", "path", path, "error", err)
		return
	}
	if err := printSummary(os.Stdout, diagramSummary(diagram)); err != nil {
		slog.Warn("failed to print summary", "error", err)
	}
}
