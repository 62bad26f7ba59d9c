// Package manager fetches the compositor's display state and submits new
// configurations to it.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/dsrosen6/gnome-monitor-config/internal/mutter"
	"github.com/godbus/dbus/v5"
)

type (
	// Service is the transport the manager drives. *mutter.Client satisfies it.
	Service interface {
		GetCurrentState(ctx context.Context) (mutter.CurrentState, error)
		ApplyMonitorsConfig(ctx context.Context, serial, method uint32, logical []mutter.LogicalMonitorConfig, props map[string]dbus.Variant) error
		ShowMonitorLabels(ctx context.Context, labels map[string]dbus.Variant) error
		HideMonitorLabels(ctx context.Context) error
	}

	Manager struct {
		svc Service
	}

	// Method says how the compositor should treat an applied configuration.
	Method uint32
)

const (
	MethodVerify     Method = 0
	MethodTemporary  Method = 1
	MethodPersistent Method = 2
)

var (
	ErrNilConfig     = errors.New("no configuration given")
	ErrStateMismatch = errors.New("configuration was built against a different display state")
	ErrInvalidMethod = errors.New("invalid apply method")
)

var _ Service = (*mutter.Client)(nil)

func New(svc Service) *Manager {
	return &Manager{svc: svc}
}

// FetchCurrentState makes one GetCurrentState round trip.
func (m *Manager) FetchCurrentState(ctx context.Context) (*display.State, error) {
	cs, err := m.svc.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching current state: %w", err)
	}

	return mutter.DecodeState(cs), nil
}

// Apply submits cfg, which must have been built against state, using state's
// serial. Nothing is sent when cfg is unusable.
func (m *Manager) Apply(ctx context.Context, state *display.State, cfg *display.Config, method Method) error {
	if cfg == nil || state == nil {
		return ErrNilConfig
	}

	if len(cfg.LogicalMonitors()) == 0 {
		return display.ErrIncompleteConfig
	}

	if cfg.State() != state {
		return ErrStateMismatch
	}

	if !method.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMethod, uint32(method))
	}

	logical, props, err := mutter.EncodeConfig(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	slog.Debug("applying config", "serial", state.Serial(), "method", method.String(), "logical_monitors", len(logical))
	if err := m.svc.ApplyMonitorsConfig(ctx, state.Serial(), uint32(method), logical, props); err != nil {
		return fmt.Errorf("applying config: %w", err)
	}

	return nil
}

// ShowLabels numbers every monitor of state from 1, in state order, and asks
// the shell to label them.
func (m *Manager) ShowLabels(ctx context.Context, state *display.State) error {
	labels := make(map[string]dbus.Variant, len(state.Monitors()))
	for i, mon := range state.Monitors() {
		labels[mon.Connector()] = dbus.MakeVariant(int32(i + 1))
	}

	if err := m.svc.ShowMonitorLabels(ctx, labels); err != nil {
		return fmt.Errorf("showing monitor labels: %w", err)
	}
	return nil
}

func (m *Manager) HideLabels(ctx context.Context) error {
	if err := m.svc.HideMonitorLabels(ctx); err != nil {
		return fmt.Errorf("hiding monitor labels: %w", err)
	}
	return nil
}

func (m Method) Valid() bool {
	return m <= MethodPersistent
}

func (m Method) String() string {
	switch m {
	case MethodVerify:
		return "verify"
	case MethodTemporary:
		return "temporary"
	case MethodPersistent:
		return "persistent"
	default:
		return fmt.Sprintf("method(%d)", uint32(m))
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verify":
		return MethodVerify, nil
	case "temporary", "":
		return MethodTemporary, nil
	case "persistent":
		return MethodPersistent, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}
