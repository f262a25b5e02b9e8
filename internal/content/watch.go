package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/folio/internal/storage"
)

// ReloadCallback is called after the watcher installed a new catalog.
type ReloadCallback func(c *Catalog)

const reloadDebounce = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the vault root and reloads the catalog
// into holder whenever content files change, until ctx is cancelled.
//
// Bursts of events are debounced into one reload. A reload whose content
// version matches the current catalog is skipped, and a vault that fails to
// load keeps the previous catalog in place.
func Watch(ctx context.Context, store storage.Provider, vaultRoot string, holder *Holder, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			reload(store, holder, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					schedule()
					continue
				}
			}

			if !storage.IsContentFile(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("watcher: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func reload(store storage.Provider, holder *Holder, logger *slog.Logger, cb ReloadCallback) {
	if current := holder.Catalog(); current != nil && current.Version() != "" {
		v, err := Version(store)
		if err == nil && v == current.Version() {
			logger.Debug("watcher: content unchanged", slog.String("version", v))
			return
		}
	}

	c, err := LoadVault(store)
	if err != nil {
		logger.Warn("watcher: reload failed, keeping previous catalog", slog.String("error", err.Error()))
		return
	}
	holder.Replace(c)
	logger.Info("watcher: catalog reloaded",
		slog.String("version", c.Version()),
		slog.Int("posts", c.Len()))
	if cb != nil {
		cb(c)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
