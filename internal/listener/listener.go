// Package listener produces the events watch mode reacts to.
package listener

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

type Listener struct {
	conn       *dbus.Conn
	layoutPath string
}

var ErrNoSources = errors.New("nothing to listen to")

// New returns a Listener for the MonitorsChanged signal on conn and for
// changes to the layout file at layoutPath. Either may be left empty.
func New(conn *dbus.Conn, layoutPath string) *Listener {
	return &Listener{
		conn:       conn,
		layoutPath: layoutPath,
	}
}

// Listen runs every configured source until ctx is done or one of them fails.
func (l *Listener) Listen(ctx context.Context, events chan<- Event) error {
	if l.conn == nil && l.layoutPath == "" {
		return ErrNoSources
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)

	if l.conn != nil {
		go func() {
			if err := l.listenForMonitorChanges(ctx, events); err != nil {
				errc <- fmt.Errorf("monitors listener: %w", err)
			}
		}()
	}

	if l.layoutPath != "" {
		go func() {
			if err := l.listenForLayoutChanges(ctx, events); err != nil {
				errc <- fmt.Errorf("layout listener: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		return err
	}
}

// send delivers ev unless ctx is done first.
func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
