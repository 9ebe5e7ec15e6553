package phrase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch loads every phrase file in dir and keeps the catalog in sync with
// later writes until ctx is cancelled. Reload failures are logged and the
// previous phrases for that locale stay in place. A reload replaces the whole
// locale table, so watched directories hold one file per locale.
func (c *Catalog) Watch(ctx context.Context, dir string) error {
	if err := c.LoadFS(os.DirFS(dir)); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("phrase: create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("phrase: watch %s: %w", dir, err)
	}

	go func() {
		defer func() {
			_ = w.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isPhraseFile(ev.Name) {
					continue
				}
				if err := c.LoadFile(ev.Name); err != nil {
					c.logger.Warn("phrase reload failed", slog.String("path", ev.Name), slog.String("err", err.Error()))
					continue
				}
				c.logger.Info("phrase file reloaded", slog.String("path", filepath.Base(ev.Name)))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				c.logger.Warn("phrase watcher error", slog.String("err", err.Error()))
			}
		}
	}()
	return nil
}
