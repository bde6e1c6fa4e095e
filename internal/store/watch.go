package store

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the store whenever the slot file is rewritten on disk,
// e.g. by a second instance or a headless import running alongside the
// UI. The reload lands as the usual change notification.
//
// The watcher observes the data directory rather than the file itself so
// it survives editors and imports that replace the file.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.slot.Path())); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.slot.Path() {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.log.Debug("slot changed on disk, reloading", zap.String("op", event.Op.String()))
				s.Reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("slot watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
