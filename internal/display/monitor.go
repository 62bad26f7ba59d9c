package display

import "log/slog"

// MonitorSpec identifies a physical monitor. The connector alone is unique
// within one State.
type MonitorSpec struct {
	Connector string
	Vendor    string
	Product   string
	Serial    string
}

// Monitor is one physical display output and the modes it supports.
type Monitor struct {
	Spec        MonitorSpec
	DisplayName string

	// Builtin is set for laptop panels.
	Builtin bool

	modes     []Mode
	current   int
	preferred int
}

// NewMonitor builds a Monitor and caches its current and preferred modes from
// the mode flags. A second mode flagged preferred or current is a snapshot
// inconsistency; it is logged and the first flagged mode is kept.
func NewMonitor(spec MonitorSpec, modes []Mode, displayName string) Monitor {
	m := Monitor{
		Spec:        spec,
		DisplayName: displayName,
		modes:       modes,
		current:     -1,
		preferred:   -1,
	}

	for i := range modes {
		if modes[i].Preferred {
			if m.preferred >= 0 {
				slog.Warn("monitor reports more than one preferred mode",
					"connector", spec.Connector, "kept", modes[m.preferred].ID(), "ignored", modes[i].ID())
			} else {
				m.preferred = i
			}
		}

		if modes[i].Current {
			if m.current >= 0 {
				slog.Warn("monitor reports more than one current mode",
					"connector", spec.Connector, "kept", modes[m.current].ID(), "ignored", modes[i].ID())
			} else {
				m.current = i
			}
		}
	}

	return m
}

func (m *Monitor) Connector() string {
	return m.Spec.Connector
}

// Modes returns the monitor's modes in the order the compositor reported them.
func (m *Monitor) Modes() []*Mode {
	out := make([]*Mode, len(m.modes))
	for i := range m.modes {
		out[i] = &m.modes[i]
	}
	return out
}

// CurrentMode returns nil when the monitor is inactive.
func (m *Monitor) CurrentMode() *Mode {
	return m.modeAt(m.current)
}

func (m *Monitor) PreferredMode() *Mode {
	return m.modeAt(m.preferred)
}

// IsActive reports whether the monitor is lit, i.e. has a current mode.
func (m *Monitor) IsActive() bool {
	return m.current >= 0
}

func (m *Monitor) IsBuiltin() bool {
	return m.Builtin
}

// LookupMode returns the mode with the given id, or nil.
func (m *Monitor) LookupMode(id string) *Mode {
	return m.modeAt(findMode(m.modes, id))
}

// defaultMode is the mode a newly added monitor gets: the preferred one, else
// the current one, else the first.
func (m *Monitor) defaultMode() int {
	switch {
	case m.preferred >= 0:
		return m.preferred
	case m.current >= 0:
		return m.current
	case len(m.modes) > 0:
		return 0
	default:
		return -1
	}
}

func (m *Monitor) modeAt(i int) *Mode {
	if i < 0 || i >= len(m.modes) {
		return nil
	}
	return &m.modes[i]
}
