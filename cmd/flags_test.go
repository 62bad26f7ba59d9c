package cmd

import (
	"io"
	"testing"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/spf13/pflag"
)

func testState() *display.State {
	dp1 := display.NewMonitor(display.MonitorSpec{Connector: "DP-1", Vendor: "DEL", Product: "U2720Q", Serial: "1"}, []display.Mode{
		display.NewMode(3840, 2160, 60, 2, []float64{1, 1.5, 2}, display.ModeFlagPreferred|display.ModeFlagCurrent),
		display.NewMode(1920, 1080, 60, 1, []float64{1, 1.25}, 0),
	}, "")
	edp := display.NewMonitor(display.MonitorSpec{Connector: "eDP-1", Vendor: "BOE", Product: "0x095f", Serial: "0"}, []display.Mode{
		display.NewMode(2256, 1504, 60, 1.5, []float64{1, 1.25, 1.5, 2}, display.ModeFlagPreferred|display.ModeFlagCurrent),
	}, "")

	return display.NewState(3, []display.Monitor{dp1, edp}, nil, display.StateProperties{})
}

func parseSteps(t *testing.T, args ...string) []display.Step {
	t.Helper()
	var list stepList
	fs := pflag.NewFlagSet("set", pflag.ContinueOnError)
	addStepFlags(fs, &list)

	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing flags %v: %v", args, err)
	}
	return list.steps
}

func TestStepFlags_Order(t *testing.T) {
	steps := parseSteps(t,
		"-L", "-M", "DP-1", "-m", "1920x1080@60", "-p", "-s", "1.25",
		"-L", "-M", "eDP-1", "-x", "1920", "-y", "-200", "-t", "left",
		"--physical-layout-mode",
	)

	b := display.NewBuilder(testState())
	if err := b.Run(steps...); err != nil {
		t.Fatalf("running steps: %v", err)
	}

	cfg, err := b.Finalize()
	if err != nil {
		t.Fatalf("finalizing: %v", err)
	}

	lms := cfg.LogicalMonitors()
	if len(lms) != 2 {
		t.Fatalf("expected 2 logical monitors, got %d", len(lms))
	}

	first := lms[0]
	if !first.Primary || first.Scale != 1.25 || first.X != 0 || first.Y != 0 {
		t.Errorf("unexpected first logical monitor: %+v", first)
	}
	if got := first.MonitorConfigs()[0].Mode().ID(); got != "1920x1080@60" {
		t.Errorf("expected mode 1920x1080@60 on DP-1, got %s", got)
	}

	second := lms[1]
	if second.Primary || second.X != 1920 || second.Y != -200 || second.Transform != display.Transform90 {
		t.Errorf("unexpected second logical monitor: %+v", second)
	}
	if got := second.MonitorConfigs()[0].Monitor().Connector(); got != "eDP-1" {
		t.Errorf("expected eDP-1 in second logical monitor, got %s", got)
	}

	if mode, ok := cfg.LayoutMode(); !ok || mode != display.LayoutModePhysical {
		t.Errorf("expected physical layout mode, got %v (ok=%v)", mode, ok)
	}
}

func TestStepFlags_Mirror(t *testing.T) {
	steps := parseSteps(t, "-L", "-M", "DP-1", "-m", "1920x1080@60", "-M", "eDP-1")

	b := display.NewBuilder(testState())
	if err := b.Run(steps...); err != nil {
		t.Fatalf("running steps: %v", err)
	}

	cfg, err := b.Finalize()
	if err != nil {
		t.Fatalf("finalizing: %v", err)
	}

	mcs := cfg.LogicalMonitors()[0].MonitorConfigs()
	if len(mcs) != 2 {
		t.Fatalf("expected 2 mirrored monitors, got %d", len(mcs))
	}
	if got := mcs[1].Mode().ID(); got != "2256x1504@60" {
		t.Errorf("expected preferred mode for eDP-1, got %s", got)
	}
}

func TestStepFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad scale", args: []string{"-L", "-s", "big"}},
		{name: "bad x", args: []string{"-L", "-x", "1.5"}},
		{name: "x overflow", args: []string{"-L", "-x", "4294967296"}},
		{name: "bad transform", args: []string{"-L", "-t", "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list stepList
			fs := pflag.NewFlagSet("set", pflag.ContinueOnError)
			fs.SetOutput(io.Discard)
			addStepFlags(fs, &list)

			if err := fs.Parse(tt.args); err == nil {
				t.Errorf("expected parse error for %v", tt.args)
			}
		})
	}
}

func TestStepFlags_BuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "monitor before logical monitor", args: []string{"-M", "DP-1"}},
		{name: "unknown monitor", args: []string{"-L", "-M", "HDMI-1"}},
		{name: "mode without monitor", args: []string{"-L", "-m", "1920x1080@60"}},
		{name: "layout mode twice", args: []string{"--logical-layout-mode", "--physical-layout-mode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := parseSteps(t, tt.args...)
			if err := display.NewBuilder(testState()).Run(steps...); err == nil {
				t.Errorf("expected builder error for %v", tt.args)
			}
		})
	}
}
