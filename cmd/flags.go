package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/spf13/pflag"
)

// stepList collects builder steps in command line order.
type stepList struct {
	steps []display.Step
}

// stepFlag is a pflag.Value that turns every occurrence of its flag into a
// builder step, so that flag order carries meaning.
type stepFlag struct {
	list  *stepList
	typ   string
	parse func(string) (display.Step, error)
}

func (f *stepFlag) String() string { return "" }

func (f *stepFlag) Type() string { return f.typ }

func (f *stepFlag) Set(s string) error {
	st, err := f.parse(s)
	if err != nil {
		return err
	}

	if st != nil {
		f.list.steps = append(f.list.steps, st)
	}
	return nil
}

// switchStep builds a step for a flag that takes no value.
func switchStep(step func() display.Step) func(string) (display.Step, error) {
	return func(s string) (display.Step, error) {
		on, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}

		if !on {
			return nil, nil
		}
		return step(), nil
	}
}

func addStepFlags(fs *pflag.FlagSet, list *stepList) {
	add := func(name, short, typ, usage string, parse func(string) (display.Step, error)) *pflag.Flag {
		return fs.VarPF(&stepFlag{list: list, typ: typ, parse: parse}, name, short, usage)
	}

	addSwitch := func(name, short, usage string, step func() display.Step) {
		f := add(name, short, "", usage, switchStep(step))
		f.NoOptDefVal = "true"
	}

	addSwitch("logical-monitor", "L", "start a new logical monitor", display.BeginLogicalMonitorStep)

	add("x", "x", "int", "x position of the logical monitor", func(s string) (display.Step, error) {
		v, err := parseInt32(s)
		if err != nil {
			return nil, err
		}
		return display.PositionXStep(v), nil
	})

	add("y", "y", "int", "y position of the logical monitor", func(s string) (display.Step, error) {
		v, err := parseInt32(s)
		if err != nil {
			return nil, err
		}
		return display.PositionYStep(v), nil
	})

	add("scale", "s", "float", "scale of the logical monitor", func(s string) (display.Step, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing scale: %w", err)
		}
		return display.ScaleStep(v), nil
	})

	add("transform", "t", "transform", "transform: normal, left, right, flip, flipped, ...", func(s string) (display.Step, error) {
		t, err := display.ParseTransform(s)
		if err != nil {
			return nil, err
		}
		return display.TransformStep(t), nil
	})

	addSwitch("primary", "p", "mark the logical monitor as primary", display.PrimaryStep)

	add("monitor", "M", "connector", "add a monitor to the logical monitor", func(s string) (display.Step, error) {
		return display.MonitorStep(s), nil
	})

	add("mode", "m", "mode", "mode of the last added monitor, e.g. 1920x1080@60", func(s string) (display.Step, error) {
		return display.ModeStep(s), nil
	})

	addSwitch("logical-layout-mode", "", "use the logical layout mode", func() display.Step {
		return display.LayoutModeStep(display.LayoutModeLogical)
	})

	addSwitch("physical-layout-mode", "", "use the physical layout mode", func() display.Step {
		return display.LayoutModeStep(display.LayoutModePhysical)
	})
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing position: %w", err)
	}
	return int32(v), nil
}
