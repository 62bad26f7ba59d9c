package display

type (
	// Config is a desired arrangement, built with a Builder against one State.
	// It borrows that State's monitors and modes, so the State must outlive it.
	Config struct {
		state         *State
		logical       []*LogicalMonitorConfig
		layoutMode    LayoutMode
		layoutModeSet bool
	}

	// LogicalMonitorConfig assigns one or more monitors to a position, scale
	// and transform.
	LogicalMonitorConfig struct {
		X         int32
		Y         int32
		Scale     float64
		Transform Transform
		Primary   bool

		monitors []MonitorConfig
	}

	// MonitorConfig pairs a monitor with the mode it should drive. Both are
	// indices into the State's monitor arena.
	MonitorConfig struct {
		state   *State
		monitor int
		mode    int
	}
)

// State returns the State the config was built against.
func (c *Config) State() *State {
	return c.state
}

func (c *Config) LogicalMonitors() []*LogicalMonitorConfig {
	return c.logical
}

// LayoutMode returns the layout mode override; ok is false when the
// compositor should pick its default.
func (c *Config) LayoutMode() (mode LayoutMode, ok bool) {
	return c.layoutMode, c.layoutModeSet
}

func (l *LogicalMonitorConfig) MonitorConfigs() []MonitorConfig {
	return l.monitors
}

func (m MonitorConfig) Monitor() *Monitor {
	return &m.state.monitors[m.monitor]
}

func (m MonitorConfig) Mode() *Mode {
	return m.Monitor().modeAt(m.mode)
}
