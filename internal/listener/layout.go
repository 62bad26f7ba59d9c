package listener

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// listenForLayoutChanges watches the layout file's directory, since editors
// usually replace the file rather than write it in place.
func (l *Listener) listenForLayoutChanges(ctx context.Context, events chan<- Event) error {
	path := filepath.Clean(l.layoutPath)
	tracker := &hashTracker{}
	if _, err := tracker.changed(path); err != nil {
		slog.Debug("layout watcher: initial read failed", "error", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating layout file watcher: %w", err)
	}
	slog.Debug("layout watcher: fsnotify watcher created")

	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("closing layout file watcher", "error", err)
		}
	}()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("adding layout directory to watcher: %w", err)
	}
	slog.Debug("layout watcher: fsnotify watch list", "list", w.WatchList())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			changed, err := tracker.changed(path)
			if err != nil || !changed {
				slog.Debug("layout watcher: no content change", "op", event.Op.String(), "error", err)
				continue
			}

			slog.Debug("fsnotify: file modified", "file", event.Name)
			if !send(ctx, events, Event{Type: LayoutUpdatedEvent, Details: path}) {
				return nil
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("layout watcher fsnotify error: %w", err)
		}
	}
}

// hashTracker remembers the last seen content hash of a file.
type hashTracker struct {
	last [32]byte
}

// changed reports whether the file's content differs from the last call.
func (h *hashTracker) changed(path string) (bool, error) {
	sum, err := fileHash(path)
	if err != nil {
		return false, err
	}

	if sum == h.last {
		return false, nil
	}

	h.last = sum
	return true, nil
}

func fileHash(path string) ([32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
