package display

import (
	"fmt"
	"math"
)

// Rect is a logical monitor's area in the global coordinate space.
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// NearestSupportedScale returns the scale supported by mode that is closest to
// requested. On a tie the scale listed first wins.
func NearestSupportedScale(mode *Mode, requested float64) (float64, error) {
	if mode == nil || len(mode.SupportedScales) == 0 {
		return 0, ErrNoSupportedScales
	}

	closest := mode.SupportedScales[0]
	closestDiff := math.Abs(requested - closest)
	for _, s := range mode.SupportedScales[1:] {
		if d := math.Abs(requested - s); d < closestDiff {
			closest, closestDiff = s, d
		}
	}

	return closest, nil
}

// Layout returns the logical monitor's rectangle. The size comes from the
// first monitor's current mode only; mirrored monitors are assumed to share a
// resolution.
func (l *LogicalMonitor) Layout() Rect {
	r := Rect{X: l.X, Y: l.Y}
	if len(l.monitors) == 0 {
		return r
	}

	if m := l.state.monitors[l.monitors[0]].CurrentMode(); m != nil {
		r.Width, r.Height = m.Resolution()
	}

	return r
}

// Layout returns the rectangle this logical monitor config would occupy, sized
// by the first monitor config's mode.
func (l *LogicalMonitorConfig) Layout() Rect {
	r := Rect{X: l.X, Y: l.Y}
	if len(l.monitors) == 0 {
		return r
	}

	if m := l.monitors[0].Mode(); m != nil {
		r.Width, r.Height = m.Resolution()
	}

	return r
}
