package display

import (
	"testing"
)

func dp1Spec() MonitorSpec {
	return MonitorSpec{Connector: "DP-1", Vendor: "DEL", Product: "U2720Q", Serial: "ABC123"}
}

func dp2Spec() MonitorSpec {
	return MonitorSpec{Connector: "DP-2", Vendor: "GSM", Product: "LG HDR 4K", Serial: "0x01"}
}

// newTestState returns a State with DP-1 (1920x1080@60 preferred+current,
// 1280x720@60) and DP-2 (2560x1440@144 current, 3840x2160@60 preferred), each
// in its own logical monitor.
func newTestState(t *testing.T) *State {
	t.Helper()
	dp1 := NewMonitor(dp1Spec(), []Mode{
		NewMode(1920, 1080, 60, 1, []float64{1, 1.25}, ModeFlagPreferred|ModeFlagCurrent),
		NewMode(1280, 720, 60, 1, []float64{1}, 0),
	}, "Dell 27\"")
	dp2 := NewMonitor(dp2Spec(), []Mode{
		NewMode(2560, 1440, 144, 1, []float64{1, 1.5, 2}, ModeFlagCurrent),
		NewMode(3840, 2160, 60, 2, []float64{1, 1.5, 2, 2.5}, ModeFlagPreferred),
	}, "")

	return NewState(42, []Monitor{dp1, dp2}, []LogicalMonitorSpec{
		{X: 0, Y: 0, Scale: 1, Primary: true, Monitors: []MonitorSpec{dp1Spec()}},
		{X: 1920, Y: 0, Scale: 1.5, Transform: Transform90, Monitors: []MonitorSpec{dp2Spec()}},
	}, StateProperties{MaxScreenSize: &Size{Width: 8192, Height: 8192}})
}

func TestNewState(t *testing.T) {
	s := newTestState(t)

	if s.Serial() != 42 {
		t.Errorf("expected serial 42, got %d", s.Serial())
	}
	if len(s.Monitors()) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(s.Monitors()))
	}
	if len(s.LogicalMonitors()) != 2 {
		t.Fatalf("expected 2 logical monitors, got %d", len(s.LogicalMonitors()))
	}

	size, ok := s.MaxScreenSize()
	if !ok || size.Width != 8192 || size.Height != 8192 {
		t.Errorf("expected max screen size 8192x8192, got %v (ok=%v)", size, ok)
	}

	if _, ok := s.LayoutMode(); ok {
		t.Error("layout mode should be unset")
	}

	lm := s.LogicalMonitors()[1]
	if lm.Transform != Transform90 || lm.Scale != 1.5 {
		t.Errorf("unexpected logical monitor: %+v", lm)
	}
	if got := lm.Monitors()[0].Connector(); got != "DP-2" {
		t.Errorf("expected DP-2 in second logical monitor, got %s", got)
	}
}

func TestNewState_DropsUnresolvedLogicalMonitor(t *testing.T) {
	dp1 := NewMonitor(dp1Spec(), []Mode{
		NewMode(1920, 1080, 60, 1, []float64{1}, ModeFlagPreferred|ModeFlagCurrent),
	}, "")

	stale := dp1Spec()
	stale.Serial = "gone"

	s := NewState(1, []Monitor{dp1}, []LogicalMonitorSpec{
		{Scale: 1, Monitors: []MonitorSpec{stale}},
		{Scale: 1, Monitors: []MonitorSpec{dp1Spec(), stale}},
		{Scale: 1},
		{X: 10, Scale: 1, Monitors: []MonitorSpec{dp1Spec()}},
	}, StateProperties{})

	lms := s.LogicalMonitors()
	if len(lms) != 1 {
		t.Fatalf("expected 1 logical monitor after dropping stale ones, got %d", len(lms))
	}
	if lms[0].X != 10 {
		t.Errorf("kept the wrong logical monitor: %+v", lms[0])
	}
}

func TestNewState_NoMaxScreenSize(t *testing.T) {
	s := NewState(1, nil, nil, StateProperties{LayoutMode: LayoutModePhysical})
	if _, ok := s.MaxScreenSize(); ok {
		t.Error("expected unbounded screen size")
	}
	if lm, ok := s.LayoutMode(); !ok || lm != LayoutModePhysical {
		t.Errorf("expected physical layout mode, got %v (ok=%v)", lm, ok)
	}
}

func TestNewMonitor_Flags(t *testing.T) {
	m := NewMonitor(dp1Spec(), []Mode{
		NewMode(1920, 1080, 60, 1, []float64{1}, ModeFlagPreferred),
		NewMode(1280, 720, 60, 1, []float64{1}, ModeFlagPreferred|ModeFlagCurrent),
		NewMode(800, 600, 60, 1, []float64{1}, ModeFlagCurrent),
	}, "")

	if m.PreferredMode().Width != 1920 {
		t.Errorf("expected first preferred mode to be kept, got %s", m.PreferredMode().ID())
	}
	if m.CurrentMode().Width != 1280 {
		t.Errorf("expected first current mode to be kept, got %s", m.CurrentMode().ID())
	}
	if !m.IsActive() {
		t.Error("monitor with a current mode should be active")
	}
	if m.IsBuiltin() {
		t.Error("builtin detection should be off")
	}
}

func TestMonitor_Inactive(t *testing.T) {
	m := NewMonitor(dp2Spec(), []Mode{
		NewMode(1920, 1080, 60, 1, []float64{1}, 0),
	}, "")

	if m.IsActive() {
		t.Error("monitor without a current mode should be inactive")
	}
	if m.CurrentMode() != nil {
		t.Error("expected nil current mode")
	}
	if m.PreferredMode() != nil {
		t.Error("expected nil preferred mode")
	}
}

func TestMonitor_LookupMode(t *testing.T) {
	m := NewMonitor(dp1Spec(), []Mode{
		NewMode(1920, 1080, 59.950172424316406, 1, []float64{1}, 0),
		NewMode(1920, 1080, 60.000, 1, []float64{1}, 0),
		NewMode(1920, 1080, 143.98, 1, []float64{1}, 0),
		NewMode(1280, 720, 60, 1, []float64{1}, 0),
	}, "")

	tests := []struct {
		id          string
		wantRefresh float64
		wantNil     bool
	}{
		{id: "1920x1080@60", wantRefresh: 60},
		{id: "1920x1080@59.950172424316406", wantRefresh: 59.950172424316406},
		{id: "1920x1080@144", wantRefresh: 143.98},
		{id: "1920x1080@120", wantNil: true},
		{id: "2560x1440@60", wantNil: true},
		{id: "garbage", wantNil: true},
		{id: "1920x1080", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := m.LookupMode(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no mode, got %s", got.ID())
				}
				return
			}
			if got == nil {
				t.Fatal("expected a mode, got nil")
			}
			if got.RefreshRate != tt.wantRefresh {
				t.Errorf("expected refresh %g, got %g", tt.wantRefresh, got.RefreshRate)
			}
		})
	}
}

func TestMode_ID(t *testing.T) {
	m := NewMode(2560, 1440, 143.912, 1, nil, 0)
	if got := m.ID(); got != "2560x1440@143.912" {
		t.Errorf("unexpected id %q", got)
	}
}

func TestState_LookupMonitor(t *testing.T) {
	s := newTestState(t)
	if m := s.LookupMonitor("DP-2"); m == nil || m.Spec != dp2Spec() {
		t.Errorf("expected DP-2, got %+v", m)
	}
	if m := s.LookupMonitor("HDMI-1"); m != nil {
		t.Errorf("expected nil for unknown connector, got %+v", m)
	}
}
