package display

import (
	"log/slog"
	"slices"
)

type (
	// State is an immutable snapshot of the compositor's monitors and logical
	// monitors at one serial. It owns every Monitor and LogicalMonitor it hands
	// out; a Config built against it borrows them and must not be used with
	// another State.
	State struct {
		serial        uint32
		monitors      []Monitor
		logical       []LogicalMonitor
		maxScreenSize *Size
		layoutMode    LayoutMode
	}

	// LogicalMonitor is one compositor-visible output region, backed by one
	// or more mirrored monitors.
	LogicalMonitor struct {
		X         int32
		Y         int32
		Scale     float64
		Transform Transform
		Primary   bool

		state    *State
		monitors []int
	}

	// LogicalMonitorSpec is a logical monitor as reported on the wire, still
	// referring to its monitors by identity.
	LogicalMonitorSpec struct {
		X         int32
		Y         int32
		Scale     float64
		Transform Transform
		Primary   bool
		Monitors  []MonitorSpec
	}

	// StateProperties holds the state-level properties the tool reads.
	StateProperties struct {
		MaxScreenSize *Size
		LayoutMode    LayoutMode
	}

	Size struct {
		Width  int32
		Height int32
	}
)

// NewState assembles a State. Each logical monitor's specs are resolved
// against monitors by exact identity. A logical monitor with an unresolved
// spec, or with no specs at all, is logged and left out.
func NewState(serial uint32, monitors []Monitor, logical []LogicalMonitorSpec, props StateProperties) *State {
	s := &State{
		serial:        serial,
		monitors:      slices.Clone(monitors),
		maxScreenSize: props.MaxScreenSize,
		layoutMode:    props.LayoutMode,
	}

	for _, ls := range logical {
		lm := LogicalMonitor{
			X:         ls.X,
			Y:         ls.Y,
			Scale:     ls.Scale,
			Transform: ls.Transform,
			Primary:   ls.Primary,
			state:     s,
		}

		resolved := true
		for _, spec := range ls.Monitors {
			i := s.indexOfSpec(spec)
			if i < 0 {
				slog.Warn("couldn't find monitor given spec, ignoring logical monitor",
					"connector", spec.Connector, "vendor", spec.Vendor,
					"product", spec.Product, "serial", spec.Serial)
				resolved = false
				break
			}
			lm.monitors = append(lm.monitors, i)
		}

		if !resolved {
			continue
		}

		if len(lm.monitors) == 0 {
			slog.Warn("got an empty logical monitor, ignoring", "x", ls.X, "y", ls.Y)
			continue
		}

		s.logical = append(s.logical, lm)
	}

	slog.Debug("display state built", "serial", serial, "monitors", len(s.monitors), "logical_monitors", len(s.logical))
	return s
}

func (s *State) Serial() uint32 {
	return s.serial
}

// Monitors returns all monitors, active or not, in compositor order.
func (s *State) Monitors() []*Monitor {
	out := make([]*Monitor, len(s.monitors))
	for i := range s.monitors {
		out[i] = &s.monitors[i]
	}
	return out
}

func (s *State) LogicalMonitors() []*LogicalMonitor {
	out := make([]*LogicalMonitor, len(s.logical))
	for i := range s.logical {
		out[i] = &s.logical[i]
	}
	return out
}

// MaxScreenSize reports the screen size bound; ok is false when unbounded.
func (s *State) MaxScreenSize() (size Size, ok bool) {
	if s.maxScreenSize == nil {
		return Size{}, false
	}
	return *s.maxScreenSize, true
}

// LayoutMode reports the compositor's current layout mode, if it told us.
func (s *State) LayoutMode() (LayoutMode, bool) {
	return s.layoutMode, s.layoutMode.Valid()
}

// LookupMonitor returns the monitor with the given connector, or nil.
func (s *State) LookupMonitor(connector string) *Monitor {
	i := s.indexOfConnector(connector)
	if i < 0 {
		return nil
	}
	return &s.monitors[i]
}

func (s *State) indexOfConnector(connector string) int {
	for i := range s.monitors {
		if s.monitors[i].Spec.Connector == connector {
			return i
		}
	}
	return -1
}

func (s *State) indexOfSpec(spec MonitorSpec) int {
	for i := range s.monitors {
		if s.monitors[i].Spec == spec {
			return i
		}
	}
	return -1
}

// Monitors returns the monitors merged into this logical monitor. It is never
// empty.
func (l *LogicalMonitor) Monitors() []*Monitor {
	out := make([]*Monitor, len(l.monitors))
	for i, idx := range l.monitors {
		out[i] = &l.state.monitors[idx]
	}
	return out
}
