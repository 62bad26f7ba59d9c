package display

import (
	"fmt"
	"strings"
)

// Transform is a logical monitor's rotation/flip, using the compositor's
// numbering.
type Transform uint32

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

var transformNames = map[Transform]string{
	TransformNormal:     "normal",
	Transform90:         "left",
	Transform180:        "upside down",
	Transform270:        "right",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "left flipped",
	TransformFlipped180: "upside down flipped",
	TransformFlipped270: "right flipped",
}

// transformAliases holds the short names accepted on the command line and in
// layout files on top of the display names above.
var transformAliases = map[string]Transform{
	"flip":        Transform180,
	"90":          Transform90,
	"180":         Transform180,
	"270":         Transform270,
	"flipped-90":  TransformFlipped90,
	"flipped-180": TransformFlipped180,
	"flipped-270": TransformFlipped270,
}

func (t Transform) Valid() bool {
	return t <= TransformFlipped270
}

func (t Transform) String() string {
	if n, ok := transformNames[t]; ok {
		return n
	}
	return fmt.Sprintf("transform(%d)", uint32(t))
}

// ParseTransform accepts "normal", "left", "right", "flip" and the other names
// printed by String.
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range transformNames {
		if n == s {
			return t, nil
		}
	}

	if t, ok := transformAliases[s]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTransform, s)
}

// LayoutMode governs how logical monitor coordinates relate to physical
// pixels. The zero value means "not set".
type LayoutMode uint32

const (
	LayoutModeLogical  LayoutMode = 1
	LayoutModePhysical LayoutMode = 2
)

func (l LayoutMode) Valid() bool {
	return l == LayoutModeLogical || l == LayoutModePhysical
}

func (l LayoutMode) String() string {
	switch l {
	case LayoutModeLogical:
		return "logical"
	case LayoutModePhysical:
		return "physical"
	default:
		return "unset"
	}
}

func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "logical":
		return LayoutModeLogical, nil
	case "physical":
		return LayoutModePhysical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLayoutMode, s)
	}
}
