package synonym

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 400 * time.Millisecond

// Watch reloads the supplement file into the expander whenever it changes on
// disk. It watches the parent directory so editors that replace the file
// (write to temp, rename over) are still seen. Returns after setup; the
// watch goroutine runs until ctx is cancelled.
func Watch(ctx context.Context, path string, expander *Expander, logger *zap.Logger) error {
	if path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				// Debounce: editors emit bursts of events per save.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					table, err := LoadTable(path)
					if err != nil {
						logger.Warn("synonym reload failed", zap.String("path", path), zap.Error(err))
						return
					}
					expander.Swap(table)
					logger.Info("synonym table reloaded", zap.String("path", path), zap.Int("entries", table.Len()))
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if err != nil {
					logger.Debug("synonym watcher error", zap.Error(err))
				}
			}
		}
	}()
	return nil
}
