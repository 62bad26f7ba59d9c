package display

import (
	"fmt"
	"log/slog"
	"math"
)

type builderPhase int

const (
	phaseEmpty builderPhase = iota
	phaseOpen
	phaseClosed
	phaseFinalized
)

// Builder assembles a Config one command at a time. Property and monitor
// commands apply to the logical monitor opened by the latest
// BeginLogicalMonitor; SetMode applies to the monitor added last. A Builder is
// single use: after Finalize every command fails.
type Builder struct {
	state *State
	cfg   *Config
	phase builderPhase
	open  *LogicalMonitorConfig

	// currentMonitor is the state index of the monitor added last to the open
	// logical monitor, or -1.
	currentMonitor int
}

// Step is one queued builder command.
type Step func(b *Builder) error

func NewBuilder(state *State) *Builder {
	return &Builder{
		state:          state,
		cfg:            &Config{state: state},
		phase:          phaseEmpty,
		currentMonitor: -1,
	}
}

// Run applies steps in order and stops at the first error.
func (b *Builder) Run(steps ...Step) error {
	for _, s := range steps {
		if err := s(b); err != nil {
			return err
		}
	}
	return nil
}

// BeginLogicalMonitor closes the open logical monitor, if any, and opens a new
// one at (0,0) with scale 1 and no transform.
func (b *Builder) BeginLogicalMonitor() error {
	if b.phase == phaseFinalized {
		return ErrBuilderFinalized
	}

	if b.phase == phaseOpen {
		if err := b.closeOpen(); err != nil {
			return err
		}
	}

	b.open = &LogicalMonitorConfig{Scale: 1.0, Transform: TransformNormal}
	b.currentMonitor = -1
	b.phase = phaseOpen
	return nil
}

func (b *Builder) SetPosition(x, y int32) error {
	lm, err := b.openLogicalMonitor()
	if err != nil {
		return err
	}

	lm.X, lm.Y = x, y
	return nil
}

func (b *Builder) SetScale(scale float64) error {
	lm, err := b.openLogicalMonitor()
	if err != nil {
		return err
	}

	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}

	lm.Scale = scale
	return nil
}

func (b *Builder) SetTransform(t Transform) error {
	lm, err := b.openLogicalMonitor()
	if err != nil {
		return err
	}

	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTransform, uint32(t))
	}

	lm.Transform = t
	return nil
}

func (b *Builder) SetPrimary() error {
	lm, err := b.openLogicalMonitor()
	if err != nil {
		return err
	}

	lm.Primary = true
	return nil
}

// AddMonitor appends the monitor with the given connector to the open logical
// monitor, using its preferred mode. On error the builder is left unchanged.
func (b *Builder) AddMonitor(connector string) error {
	lm, err := b.openLogicalMonitor()
	if err != nil {
		return err
	}

	i := b.state.indexOfConnector(connector)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMonitor, connector)
	}

	mode := b.state.monitors[i].defaultMode()
	if mode < 0 {
		return fmt.Errorf("%w: monitor %q reports no modes", ErrUnknownMode, connector)
	}

	lm.monitors = append(lm.monitors, MonitorConfig{state: b.state, monitor: i, mode: mode})
	b.currentMonitor = i
	slog.Debug("added monitor to logical monitor", "connector", connector, "mode", b.state.monitors[i].modes[mode].ID())
	return nil
}

// SetMode replaces the mode of the monitor added last.
func (b *Builder) SetMode(id string) error {
	if b.phase == phaseFinalized {
		return ErrBuilderFinalized
	}

	if b.currentMonitor < 0 || b.open == nil || len(b.open.monitors) == 0 {
		return ErrNoCurrentMonitor
	}

	mode := findMode(b.state.monitors[b.currentMonitor].modes, id)
	if mode < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}

	b.open.monitors[len(b.open.monitors)-1].mode = mode
	return nil
}

// SetLayoutMode records the layout mode override. It may be set once.
func (b *Builder) SetLayoutMode(mode LayoutMode) error {
	if b.phase == phaseFinalized {
		return ErrBuilderFinalized
	}

	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLayoutMode, uint32(mode))
	}

	if b.cfg.layoutModeSet {
		return fmt.Errorf("%w: %s", ErrLayoutModeSet, b.cfg.layoutMode)
	}

	b.cfg.layoutMode = mode
	b.cfg.layoutModeSet = true
	return nil
}

// Finalize closes the open logical monitor and returns the finished Config.
func (b *Builder) Finalize() (*Config, error) {
	switch b.phase {
	case phaseFinalized:
		return nil, ErrBuilderFinalized
	case phaseEmpty:
		return nil, ErrIncompleteConfig
	case phaseOpen:
		if err := b.closeOpen(); err != nil {
			return nil, err
		}
	}

	b.phase = phaseFinalized
	slog.Debug("configuration finalized", "logical_monitors", len(b.cfg.logical))
	return b.cfg, nil
}

func (b *Builder) openLogicalMonitor() (*LogicalMonitorConfig, error) {
	switch b.phase {
	case phaseFinalized:
		return nil, ErrBuilderFinalized
	case phaseOpen:
		return b.open, nil
	default:
		return nil, ErrNoLogicalMonitor
	}
}

func (b *Builder) closeOpen() error {
	if len(b.open.monitors) == 0 {
		return fmt.Errorf("%w: logical monitor has no monitors", ErrIncompleteConfig)
	}

	b.cfg.logical = append(b.cfg.logical, b.open)
	b.open = nil
	b.currentMonitor = -1
	b.phase = phaseClosed
	return nil
}

// Step constructors, for queueing commands before the State is known.

func BeginLogicalMonitorStep() Step {
	return func(b *Builder) error { return b.BeginLogicalMonitor() }
}

func PositionXStep(x int32) Step {
	return func(b *Builder) error {
		lm, err := b.openLogicalMonitor()
		if err != nil {
			return err
		}
		return b.SetPosition(x, lm.Y)
	}
}

func PositionYStep(y int32) Step {
	return func(b *Builder) error {
		lm, err := b.openLogicalMonitor()
		if err != nil {
			return err
		}
		return b.SetPosition(lm.X, y)
	}
}

func PositionStep(x, y int32) Step {
	return func(b *Builder) error { return b.SetPosition(x, y) }
}

func ScaleStep(scale float64) Step {
	return func(b *Builder) error { return b.SetScale(scale) }
}

func TransformStep(t Transform) Step {
	return func(b *Builder) error { return b.SetTransform(t) }
}

func PrimaryStep() Step {
	return func(b *Builder) error { return b.SetPrimary() }
}

func MonitorStep(connector string) Step {
	return func(b *Builder) error { return b.AddMonitor(connector) }
}

func ModeStep(id string) Step {
	return func(b *Builder) error { return b.SetMode(id) }
}

func LayoutModeStep(mode LayoutMode) Step {
	return func(b *Builder) error { return b.SetLayoutMode(mode) }
}
