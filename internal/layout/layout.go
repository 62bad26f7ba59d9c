// Package layout reads layout profile files: named monitor arrangements that
// are applied when the monitors they describe are connected.
package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
)

type (
	File struct {
		Profiles []Profile `toml:"profile"`
	}

	Profile struct {
		Name            string           `toml:"name"`
		LayoutMode      string           `toml:"layout_mode,omitempty"`
		Method          string           `toml:"method,omitempty"`
		LogicalMonitors []LogicalMonitor `toml:"logical_monitor"`
	}

	LogicalMonitor struct {
		X         int32        `toml:"x"`
		Y         int32        `toml:"y"`
		Scale     float64      `toml:"scale,omitempty"`
		Transform string       `toml:"transform,omitempty"`
		Primary   bool         `toml:"primary,omitempty"`
		Monitors  []MonitorRef `toml:"monitor"`
	}

	// MonitorRef picks a monitor by any combination of identifiers; empty
	// fields are not compared.
	MonitorRef struct {
		Connector string `toml:"connector,omitempty"`
		Vendor    string `toml:"vendor,omitempty"`
		Product   string `toml:"product,omitempty"`
		Serial    string `toml:"serial,omitempty"`
		Mode      string `toml:"mode,omitempty"`
	}
)

var (
	ErrNoProfiles = errors.New("layout file has no profiles")
	ErrNoMatch    = errors.New("no profile matches the connected monitors")
)

// Load reads and validates the layout file at path.
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("decoding layout file: %w", err)
	}

	for _, k := range md.Undecoded() {
		slog.Warn("ignoring unknown key in layout file", "path", path, "key", k.String())
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validating layout file: %w", err)
	}

	slog.Debug("layout file loaded", "path", path, "profiles", len(f.Profiles))
	return &f, nil
}

func (f *File) Validate() error {
	if len(f.Profiles) == 0 {
		return ErrNoProfiles
	}

	names := newSet[string]()
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if p.Name == "" {
			return fmt.Errorf("profile %d: missing name", i)
		}

		if names.contains(p.Name) {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		names.add(p.Name)

		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}

	return nil
}

func (p *Profile) Validate() error {
	if p.LayoutMode != "" {
		if _, err := display.ParseLayoutMode(p.LayoutMode); err != nil {
			return err
		}
	}

	if p.Method != "" {
		if _, err := manager.ParseMethod(p.Method); err != nil {
			return err
		}
	}

	if len(p.LogicalMonitors) == 0 {
		return fmt.Errorf("%w: no logical monitors", display.ErrIncompleteConfig)
	}

	for i, lm := range p.LogicalMonitors {
		if lm.Scale < 0 || math.IsInf(lm.Scale, 0) || math.IsNaN(lm.Scale) {
			return fmt.Errorf("logical monitor %d: %w: %g", i, display.ErrInvalidScale, lm.Scale)
		}

		if lm.Transform != "" {
			if _, err := display.ParseTransform(lm.Transform); err != nil {
				return fmt.Errorf("logical monitor %d: %w", i, err)
			}
		}

		if len(lm.Monitors) == 0 {
			return fmt.Errorf("logical monitor %d: %w: no monitors", i, display.ErrIncompleteConfig)
		}

		for j, ref := range lm.Monitors {
			if ref.empty() {
				return fmt.Errorf("logical monitor %d, monitor %d: no identifiers set", i, j)
			}
		}
	}

	return nil
}

// Match returns the first profile whose every monitor reference resolves
// against state. Profiles are tried in file order.
func (f *File) Match(state *display.State) (*Profile, error) {
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if _, ok := p.resolve(state); ok {
			slog.Debug("layout profile matched", "profile", p.Name)
			return p, nil
		}
		slog.Debug("layout profile does not match", "profile", p.Name)
	}

	return nil, ErrNoMatch
}

// Lookup returns the profile with the given name, or nil.
func (f *File) Lookup(name string) *Profile {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i]
		}
	}
	return nil
}

// Steps turns the profile into builder steps against state.
func (p *Profile) Steps(state *display.State) ([]display.Step, error) {
	conns, ok := p.resolve(state)
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", p.Name, display.ErrUnknownMonitor)
	}

	var steps []display.Step
	if p.LayoutMode != "" {
		lm, err := display.ParseLayoutMode(p.LayoutMode)
		if err != nil {
			return nil, err
		}
		steps = append(steps, display.LayoutModeStep(lm))
	}

	for i, lm := range p.LogicalMonitors {
		steps = append(steps,
			display.BeginLogicalMonitorStep(),
			display.PositionStep(lm.X, lm.Y),
		)

		if lm.Scale > 0 {
			steps = append(steps, display.ScaleStep(lm.Scale))
		}

		if lm.Transform != "" {
			t, err := display.ParseTransform(lm.Transform)
			if err != nil {
				return nil, err
			}
			steps = append(steps, display.TransformStep(t))
		}

		if lm.Primary {
			steps = append(steps, display.PrimaryStep())
		}

		for j, ref := range lm.Monitors {
			steps = append(steps, display.MonitorStep(conns[i][j]))
			if ref.Mode != "" {
				steps = append(steps, display.ModeStep(ref.Mode))
			}
		}
	}

	return steps, nil
}

// ApplyMethod returns the profile's apply method, or def when it has none.
func (p *Profile) ApplyMethod(def manager.Method) manager.Method {
	if p.Method == "" {
		return def
	}

	m, err := manager.ParseMethod(p.Method)
	if err != nil {
		return def
	}
	return m
}

// resolve maps every monitor reference to a connector of state. A monitor is
// used at most once per profile. References naming a connector are resolved
// first so a looser vendor/product reference can't take their monitor.
func (p *Profile) resolve(state *display.State) ([][]string, bool) {
	type refIndex struct{ lm, mon int }

	var order []refIndex
	out := make([][]string, len(p.LogicalMonitors))
	for i, lm := range p.LogicalMonitors {
		out[i] = make([]string, len(lm.Monitors))
		for j := range lm.Monitors {
			order = append(order, refIndex{lm: i, mon: j})
		}
	}

	slices.SortStableFunc(order, func(a, b refIndex) int {
		ac := p.LogicalMonitors[a.lm].Monitors[a.mon].Connector != ""
		bc := p.LogicalMonitors[b.lm].Monitors[b.mon].Connector != ""
		switch {
		case ac == bc:
			return 0
		case ac:
			return -1
		default:
			return 1
		}
	})

	used := newSet[string]()
	for _, ri := range order {
		conn, ok := p.LogicalMonitors[ri.lm].Monitors[ri.mon].find(state, used)
		if !ok {
			return nil, false
		}
		used.add(conn)
		out[ri.lm][ri.mon] = conn
	}

	return out, true
}

func (r MonitorRef) find(state *display.State, used set[string]) (string, bool) {
	for _, m := range state.Monitors() {
		if used.contains(m.Connector()) {
			continue
		}
		if r.matches(m.Spec) {
			return m.Connector(), true
		}
	}
	return "", false
}

func (r MonitorRef) empty() bool {
	return r.Connector == "" && r.Vendor == "" && r.Product == "" && r.Serial == ""
}

// matches only checks the non-empty fields of the reference, since a profile
// may identify a monitor by connector alone or by vendor/product/serial.
func (r MonitorRef) matches(spec display.MonitorSpec) bool {
	if r.empty() {
		return false
	}

	if r.Connector != "" && r.Connector != spec.Connector {
		return false
	}

	if r.Vendor != "" && r.Vendor != spec.Vendor {
		return false
	}

	if r.Product != "" && r.Product != spec.Product {
		return false
	}

	if r.Serial != "" && r.Serial != spec.Serial {
		return false
	}

	return true
}
