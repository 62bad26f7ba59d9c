package display

import "errors"

var (
	ErrNoLogicalMonitor  = errors.New("no logical monitor open")
	ErrUnknownMonitor    = errors.New("unknown monitor")
	ErrNoCurrentMonitor  = errors.New("no current monitor")
	ErrUnknownMode       = errors.New("invalid mode")
	ErrIncompleteConfig  = errors.New("configuration incomplete")
	ErrBuilderFinalized  = errors.New("configuration already finalized")
	ErrLayoutModeSet     = errors.New("layout mode already set")
	ErrNoSupportedScales = errors.New("mode has no supported scales")
	ErrInvalidScale      = errors.New("invalid scale")
	ErrInvalidTransform  = errors.New("invalid transform")
	ErrInvalidLayoutMode = errors.New("invalid layout mode")
)
