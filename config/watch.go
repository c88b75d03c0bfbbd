package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDelay is how long a file must stay quiet before it is re-read.
const ReloadDelay = 100 * time.Millisecond

// Watch re-loads path whenever it changes and sends each valid result on the
// returned channel. Invalid files are logged and skipped. The parent
// directory is watched so editors that replace the file by rename are seen.
// The channel is closed when ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan *Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	out := make(chan *Config, 1)
	go watch(ctx, w, abs, logger, out)
	return out, nil
}

func watch(ctx context.Context, w *fsnotify.Watcher, path string, logger *slog.Logger, out chan<- *Config) {
	defer close(out)
	defer w.Close()

	timer := time.NewTimer(ReloadDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(ReloadDelay)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "path", path, "error", err)

		case <-timer.C:
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("config reload rejected", "path", path, "error", err)
				continue
			}
			logger.Info("config reloaded", "path", path)
			select {
			case out <- cfg:
			case <-ctx.Done():
				return
			}
		}
	}
}
