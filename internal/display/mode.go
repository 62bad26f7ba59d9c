package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode flag bits as reported by GetCurrentState.
const (
	ModeFlagPreferred uint32 = 1 << 0
	ModeFlagCurrent   uint32 = 1 << 1
)

// Mode is one resolution/refresh rate combination a monitor can drive.
type Mode struct {
	Width           int32
	Height          int32
	RefreshRate     float64
	PreferredScale  float64
	SupportedScales []float64
	Preferred       bool
	Current         bool
}

// NewMode builds a Mode, translating the wire flag bits.
func NewMode(width, height int32, refresh, preferredScale float64, scales []float64, flags uint32) Mode {
	return Mode{
		Width:           width,
		Height:          height,
		RefreshRate:     refresh,
		PreferredScale:  preferredScale,
		SupportedScales: scales,
		Preferred:       flags&ModeFlagPreferred != 0,
		Current:         flags&ModeFlagCurrent != 0,
	}
}

// ID returns the mode identifier, e.g. "1920x1080@60".
func (m *Mode) ID() string {
	return fmt.Sprintf("%dx%d@%g", m.Width, m.Height, m.RefreshRate)
}

func (m *Mode) Resolution() (width, height int32) {
	return m.Width, m.Height
}

// maxRefreshSlack is how far a requested refresh rate may be from the real one
// (e.g. 60 for 59.950172424316406) when no mode id matches exactly.
const maxRefreshSlack = 0.5

// parseModeID splits "WxH@R" into its parts.
func parseModeID(id string) (width, height int32, refresh float64, err error) {
	res, rate, ok := strings.Cut(id, "@")
	if !ok {
		return 0, 0, 0, fmt.Errorf("missing refresh rate in %q", id)
	}

	ws, hs, ok := strings.Cut(res, "x")
	if !ok {
		return 0, 0, 0, fmt.Errorf("missing resolution in %q", id)
	}

	w, err := strconv.ParseInt(ws, 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing width: %w", err)
	}

	h, err := strconv.ParseInt(hs, 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing height: %w", err)
	}

	r, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing refresh rate: %w", err)
	}

	return int32(w), int32(h), r, nil
}

// findMode returns the index of the mode matching id, or -1. An exact id match
// wins; otherwise the mode with the same resolution and the closest refresh
// rate within maxRefreshSlack is used.
func findMode(modes []Mode, id string) int {
	for i := range modes {
		if modes[i].ID() == id {
			return i
		}
	}

	w, h, r, err := parseModeID(id)
	if err != nil {
		return -1
	}

	best, bestDiff := -1, math.MaxFloat64
	for i := range modes {
		if modes[i].Width != w || modes[i].Height != h {
			continue
		}

		diff := math.Abs(modes[i].RefreshRate - r)
		if diff <= maxRefreshSlack && diff < bestDiff {
			best, bestDiff = i, diff
		}
	}

	return best
}
