package mutter

import "github.com/godbus/dbus/v5"

// Wire records, field order matching the D-Bus signatures.
type (
	// CurrentState is the full reply of GetCurrentState.
	CurrentState struct {
		Serial          uint32
		Monitors        []Monitor
		LogicalMonitors []LogicalMonitor
		Properties      map[string]dbus.Variant
	}

	// MonitorSpec is (ssss): connector, vendor, product, serial.
	MonitorSpec struct {
		Connector string
		Vendor    string
		Product   string
		Serial    string
	}

	// Mode is (iiddadu).
	Mode struct {
		Width           int32
		Height          int32
		RefreshRate     float64
		PreferredScale  float64
		SupportedScales []float64
		Flags           uint32
	}

	// Monitor is ((ssss)a(iiddadu)a{sv}).
	Monitor struct {
		Spec       MonitorSpec
		Modes      []Mode
		Properties map[string]dbus.Variant
	}

	// LogicalMonitor is (iiduba(ssss)a{sv}).
	LogicalMonitor struct {
		X          int32
		Y          int32
		Scale      float64
		Transform  uint32
		Primary    bool
		Monitors   []MonitorSpec
		Properties map[string]dbus.Variant
	}

	// MonitorConfig is (ssa{sv}): connector, mode id, properties.
	MonitorConfig struct {
		Connector  string
		ModeID     string
		Properties map[string]dbus.Variant
	}

	// LogicalMonitorConfig is (iiduba(ssa{sv})).
	LogicalMonitorConfig struct {
		X         int32
		Y         int32
		Scale     float64
		Transform uint32
		Primary   bool
		Monitors  []MonitorConfig
	}
)
