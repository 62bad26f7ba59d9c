// Package mutter talks to the compositor's display configuration service over
// the session bus.
package mutter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	DisplayConfigDest      = "org.gnome.Mutter.DisplayConfig"
	DisplayConfigPath      = "/org/gnome/Mutter/DisplayConfig"
	DisplayConfigInterface = "org.gnome.Mutter.DisplayConfig"

	GetCurrentStateMethod     = DisplayConfigInterface + ".GetCurrentState"
	ApplyMonitorsConfigMethod = DisplayConfigInterface + ".ApplyMonitorsConfig"
	MonitorsChangedMember     = "MonitorsChanged"

	ShellDest               = "org.gnome.Shell"
	ShellPath               = "/org/gnome/Shell"
	ShellInterface          = "org.gnome.Shell"
	ShowMonitorLabelsMethod = ShellInterface + ".ShowMonitorLabels2"
	HideMonitorLabelsMethod = ShellInterface + ".HideMonitorLabels"

	LayoutModeProperty    = "layout-mode"
	MaxScreenSizeProperty = "max-screen-size"
	DisplayNameProperty   = "display-name"
	IsBuiltinProperty     = "is-builtin"
)

type Client struct {
	conn    *dbus.Conn
	display dbus.BusObject
	shell   dbus.BusObject
	owned   bool
}

// Connect opens a private session bus connection. The caller must Close the
// returned client.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}

	c := NewClient(conn)
	c.owned = true
	return c, nil
}

// NewClient wraps an existing connection, which stays owned by the caller.
func NewClient(conn *dbus.Conn) *Client {
	return &Client{
		conn:    conn,
		display: conn.Object(DisplayConfigDest, dbus.ObjectPath(DisplayConfigPath)),
		shell:   conn.Object(ShellDest, dbus.ObjectPath(ShellPath)),
	}
}

// Conn returns the underlying connection, e.g. for signal subscriptions.
func (c *Client) Conn() *dbus.Conn {
	return c.conn
}

func (c *Client) Close() error {
	if !c.owned {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) GetCurrentState(ctx context.Context) (CurrentState, error) {
	var s CurrentState
	call := c.display.CallWithContext(ctx, GetCurrentStateMethod, 0)
	if err := call.Store(&s.Serial, &s.Monitors, &s.LogicalMonitors, &s.Properties); err != nil {
		return CurrentState{}, fmt.Errorf("calling GetCurrentState: %w", err)
	}

	slog.Debug("got current display state", "serial", s.Serial,
		"monitors", len(s.Monitors), "logical_monitors", len(s.LogicalMonitors))
	return s, nil
}

func (c *Client) ApplyMonitorsConfig(ctx context.Context, serial, method uint32, logical []LogicalMonitorConfig, props map[string]dbus.Variant) error {
	if props == nil {
		props = map[string]dbus.Variant{}
	}

	call := c.display.CallWithContext(ctx, ApplyMonitorsConfigMethod, 0, serial, method, logical, props)
	if call.Err != nil {
		return fmt.Errorf("calling ApplyMonitorsConfig: %w", call.Err)
	}

	slog.Debug("applied monitors config", "serial", serial, "method", method, "logical_monitors", len(logical))
	return nil
}

// ShowMonitorLabels asks the shell to draw labels keyed by connector. No reply
// is awaited; the shell drops the labels when this connection goes away.
func (c *Client) ShowMonitorLabels(ctx context.Context, labels map[string]dbus.Variant) error {
	call := c.shell.CallWithContext(ctx, ShowMonitorLabelsMethod, dbus.FlagNoReplyExpected, labels)
	if call.Err != nil {
		return fmt.Errorf("calling ShowMonitorLabels2: %w", call.Err)
	}
	return nil
}

func (c *Client) HideMonitorLabels(ctx context.Context) error {
	call := c.shell.CallWithContext(ctx, HideMonitorLabelsMethod, 0)
	if call.Err != nil {
		return fmt.Errorf("calling HideMonitorLabels: %w", call.Err)
	}
	return nil
}
