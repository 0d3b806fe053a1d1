package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads the store whenever its directory changes, until ctx is done.
// It returns an error straight away when the store has no directory.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if s.dir == "" {
		return errors.New("content store has no directory to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	for _, d := range []string{s.dir, filepath.Join(s.dir, "blog")} {
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	s.log.Info("Watching content", logfields.Path(s.dir))

	go s.watchLoop(ctx, w, debounce)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration) {
	defer w.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			s.log.Debug("Content change detected", logfields.Path(ev.Name))
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Error("Content watcher error", logfields.Error(err))
		case <-timer.C:
			if err := s.Reload(); err != nil {
				s.log.Error("Reloading content failed", logfields.Error(err))
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(ev.Name) {
	case ".yaml", ".md":
		return true
	}
	return false
}
