package listener

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dsrosen6/gnome-monitor-config/internal/mutter"
	"github.com/godbus/dbus/v5"
)

var monitorsChangedSignal = mutter.DisplayConfigInterface + "." + mutter.MonitorsChangedMember

func monitorsChangedMatch() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchInterface(mutter.DisplayConfigInterface),
		dbus.WithMatchMember(mutter.MonitorsChangedMember),
		dbus.WithMatchObjectPath(dbus.ObjectPath(mutter.DisplayConfigPath)),
	}
}

func (l *Listener) listenForMonitorChanges(ctx context.Context, events chan<- Event) error {
	signals := make(chan *dbus.Signal, 10)

	if err := l.conn.AddMatchSignalContext(ctx, monitorsChangedMatch()...); err != nil {
		return fmt.Errorf("adding dbus match rule: %w", err)
	}
	defer func() {
		if err := l.conn.RemoveMatchSignal(monitorsChangedMatch()...); err != nil {
			slog.Error("removing dbus match rule", "error", err)
		}
	}()

	l.conn.Signal(signals)
	defer l.conn.RemoveSignal(signals)
	slog.Debug("monitors listener: subscribed", "signal", monitorsChangedSignal)

	for {
		select {
		case <-ctx.Done():
			return nil

		case sig, ok := <-signals:
			if !ok {
				return fmt.Errorf("signals channel closed")
			}

			if !isMonitorsChanged(sig) {
				continue
			}

			slog.Debug("monitors listener: got signal", "sender", sig.Sender)
			if !send(ctx, events, Event{Type: MonitorsChangedEvent, Details: string(sig.Path)}) {
				return nil
			}
		}
	}
}

func isMonitorsChanged(sig *dbus.Signal) bool {
	return sig != nil &&
		sig.Name == monitorsChangedSignal &&
		sig.Path == dbus.ObjectPath(mutter.DisplayConfigPath)
}
