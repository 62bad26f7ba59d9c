package mutter

import (
	"fmt"
	"log/slog"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/godbus/dbus/v5"
)

// DecodeState turns a GetCurrentState reply into a display.State.
func DecodeState(s CurrentState) *display.State {
	monitors := make([]display.Monitor, 0, len(s.Monitors))
	for _, m := range s.Monitors {
		monitors = append(monitors, decodeMonitor(m))
	}

	logical := make([]display.LogicalMonitorSpec, 0, len(s.LogicalMonitors))
	for _, l := range s.LogicalMonitors {
		logical = append(logical, decodeLogicalMonitor(l))
	}

	return display.NewState(s.Serial, monitors, logical, decodeStateProperties(s.Properties))
}

func decodeMonitorSpec(s MonitorSpec) display.MonitorSpec {
	return display.MonitorSpec{
		Connector: s.Connector,
		Vendor:    s.Vendor,
		Product:   s.Product,
		Serial:    s.Serial,
	}
}

func decodeMonitor(m Monitor) display.Monitor {
	modes := make([]display.Mode, 0, len(m.Modes))
	for _, md := range m.Modes {
		modes = append(modes, display.NewMode(md.Width, md.Height, md.RefreshRate, md.PreferredScale, md.SupportedScales, md.Flags))
	}

	var name string
	if v, ok := m.Properties[DisplayNameProperty]; ok {
		if s, ok := v.Value().(string); ok {
			name = s
		} else {
			slog.Warn("ignoring display-name of unexpected type", "connector", m.Spec.Connector, "signature", v.Signature().String())
		}
	}

	mon := display.NewMonitor(decodeMonitorSpec(m.Spec), modes, name)
	if v, ok := m.Properties[IsBuiltinProperty]; ok {
		if b, ok := v.Value().(bool); ok {
			mon.Builtin = b
		} else {
			slog.Warn("ignoring is-builtin of unexpected type", "connector", m.Spec.Connector, "signature", v.Signature().String())
		}
	}

	return mon
}

func decodeLogicalMonitor(l LogicalMonitor) display.LogicalMonitorSpec {
	specs := make([]display.MonitorSpec, 0, len(l.Monitors))
	for _, s := range l.Monitors {
		specs = append(specs, decodeMonitorSpec(s))
	}

	return display.LogicalMonitorSpec{
		X:         l.X,
		Y:         l.Y,
		Scale:     l.Scale,
		Transform: display.Transform(l.Transform),
		Primary:   l.Primary,
		Monitors:  specs,
	}
}

func decodeStateProperties(props map[string]dbus.Variant) display.StateProperties {
	var p display.StateProperties

	if v, ok := props[MaxScreenSizeProperty]; ok {
		size, err := decodeSize(v)
		if err != nil {
			slog.Warn("ignoring max-screen-size", "error", err)
		} else {
			p.MaxScreenSize = size
		}
	}

	if v, ok := props[LayoutModeProperty]; ok {
		if lm, ok := v.Value().(uint32); ok && display.LayoutMode(lm).Valid() {
			p.LayoutMode = display.LayoutMode(lm)
		} else {
			slog.Warn("ignoring layout-mode", "value", v.String())
		}
	}

	return p
}

// decodeSize reads an (ii) struct, which arrives in a variant as a two
// element slice.
func decodeSize(v dbus.Variant) (*display.Size, error) {
	vals, ok := v.Value().([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected type %s", v.Signature().String())
	}

	var s display.Size
	if err := dbus.Store(vals, &s.Width, &s.Height); err != nil {
		return nil, fmt.Errorf("storing size: %w", err)
	}

	return &s, nil
}

// EncodeConfig serializes cfg for ApplyMonitorsConfig. Each logical monitor's
// scale is snapped once to the nearest scale supported by its first monitor's
// mode.
func EncodeConfig(cfg *display.Config) ([]LogicalMonitorConfig, map[string]dbus.Variant, error) {
	out := make([]LogicalMonitorConfig, 0, len(cfg.LogicalMonitors()))
	for i, lm := range cfg.LogicalMonitors() {
		mcs := lm.MonitorConfigs()
		if len(mcs) == 0 {
			return nil, nil, fmt.Errorf("logical monitor %d: %w", i, display.ErrIncompleteConfig)
		}

		scale, err := display.NearestSupportedScale(mcs[0].Mode(), lm.Scale)
		if err != nil {
			return nil, nil, fmt.Errorf("logical monitor %d: %w", i, err)
		}

		if scale != lm.Scale {
			slog.Debug("snapped scale to supported value", "requested", lm.Scale, "scale", scale,
				"connector", mcs[0].Monitor().Connector())
		}

		monitors := make([]MonitorConfig, 0, len(mcs))
		for _, mc := range mcs {
			monitors = append(monitors, MonitorConfig{
				Connector:  mc.Monitor().Connector(),
				ModeID:     mc.Mode().ID(),
				Properties: map[string]dbus.Variant{},
			})
		}

		out = append(out, LogicalMonitorConfig{
			X:         lm.X,
			Y:         lm.Y,
			Scale:     scale,
			Transform: uint32(lm.Transform),
			Primary:   lm.Primary,
			Monitors:  monitors,
		})
	}

	props := map[string]dbus.Variant{}
	if mode, ok := cfg.LayoutMode(); ok {
		props[LayoutModeProperty] = dbus.MakeVariant(uint32(mode))
	}

	return out, props, nil
}

// EncodeState converts a State back into wire records. It is the inverse of
// DecodeState for states whose logical monitors all resolved.
func EncodeState(s *display.State) CurrentState {
	out := CurrentState{
		Serial:     s.Serial(),
		Properties: map[string]dbus.Variant{},
	}

	for _, m := range s.Monitors() {
		wm := Monitor{
			Spec:       encodeMonitorSpec(m.Spec),
			Properties: map[string]dbus.Variant{},
		}
		for _, md := range m.Modes() {
			var flags uint32
			if md.Preferred {
				flags |= display.ModeFlagPreferred
			}
			if md.Current {
				flags |= display.ModeFlagCurrent
			}
			wm.Modes = append(wm.Modes, Mode{
				Width:           md.Width,
				Height:          md.Height,
				RefreshRate:     md.RefreshRate,
				PreferredScale:  md.PreferredScale,
				SupportedScales: md.SupportedScales,
				Flags:           flags,
			})
		}
		if m.DisplayName != "" {
			wm.Properties[DisplayNameProperty] = dbus.MakeVariant(m.DisplayName)
		}
		if m.Builtin {
			wm.Properties[IsBuiltinProperty] = dbus.MakeVariant(true)
		}
		out.Monitors = append(out.Monitors, wm)
	}

	for _, lm := range s.LogicalMonitors() {
		wl := LogicalMonitor{
			X:          lm.X,
			Y:          lm.Y,
			Scale:      lm.Scale,
			Transform:  uint32(lm.Transform),
			Primary:    lm.Primary,
			Properties: map[string]dbus.Variant{},
		}
		for _, m := range lm.Monitors() {
			wl.Monitors = append(wl.Monitors, encodeMonitorSpec(m.Spec))
		}
		out.LogicalMonitors = append(out.LogicalMonitors, wl)
	}

	if size, ok := s.MaxScreenSize(); ok {
		out.Properties[MaxScreenSizeProperty] = dbus.MakeVariant([]any{size.Width, size.Height})
	}
	if mode, ok := s.LayoutMode(); ok {
		out.Properties[LayoutModeProperty] = dbus.MakeVariant(uint32(mode))
	}

	return out
}

func encodeMonitorSpec(s display.MonitorSpec) MonitorSpec {
	return MonitorSpec{
		Connector: s.Connector,
		Vendor:    s.Vendor,
		Product:   s.Product,
		Serial:    s.Serial,
	}
}
