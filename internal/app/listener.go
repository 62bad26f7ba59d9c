package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/dsrosen6/gnome-monitor-config/internal/listener"
)

// EventSource feeds watch mode. *listener.Listener satisfies it.
type EventSource interface {
	Listen(ctx context.Context, events chan<- listener.Event) error
}

// Watch applies the layout file at path, then re-applies it whenever the file
// changes or the set of connected monitors changes.
func (a *App) Watch(ctx context.Context, src EventSource, path string, opts ApplyOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lastKey string
	apply := func(s *display.State) {
		lastKey = connectorKey(s)
		if err := a.applyLayout(ctx, s, path, opts); err != nil {
			slog.Error("applying layout", "error", err)
		}
	}

	s, err := a.Mgr.FetchCurrentState(ctx)
	if err != nil {
		return err
	}
	apply(s)

	events := make(chan listener.Event, 16)
	errc := make(chan error, 1)

	go func() {
		if err := src.Listen(ctx, events); err != nil {
			errc <- err
			cancel()
		}
	}()

	for {
		select {
		case ev := <-events:
			slog.Info("received event from listener", "type", ev.Type, "details", ev.Details)

			s, err := a.Mgr.FetchCurrentState(ctx)
			if err != nil {
				slog.Error("fetching display state", "error", err)
				continue
			}

			switch ev.Type {
			case listener.LayoutUpdatedEvent:
				apply(s)

			case listener.MonitorsChangedEvent:
				// Our own apply also emits MonitorsChanged; only a different set
				// of monitors warrants another one.
				if key := connectorKey(s); key == lastKey {
					slog.Debug("connected monitors unchanged, skipping", "monitors", key)
					continue
				}
				apply(s)
			}

		case err := <-errc:
			return fmt.Errorf("listener failed: %w", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
