package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dsrosen6/gnome-monitor-config/internal/display"
	"github.com/dsrosen6/gnome-monitor-config/internal/layout"
	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
)

// ApplyOptions controls how a layout file is applied.
type ApplyOptions struct {
	// Profile forces a profile by name instead of matching one.
	Profile string
	// Method overrides the profile's and the configured method when set.
	Method *manager.Method
}

var ErrUnknownProfile = errors.New("unknown profile")

// List prints the current monitors, modes and logical monitors.
func (a *App) List(ctx context.Context) error {
	s, err := a.Mgr.FetchCurrentState(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(a.Out, a.renderState(s))
	return nil
}

// Set builds a configuration from steps against the current state, prints it
// and applies it.
func (a *App) Set(ctx context.Context, steps []display.Step, method manager.Method) error {
	s, err := a.Mgr.FetchCurrentState(ctx)
	if err != nil {
		return err
	}

	cfg, err := build(s, steps)
	if err != nil {
		return err
	}

	fmt.Fprint(a.Out, a.renderConfig(cfg))
	if err := a.Mgr.Apply(ctx, s, cfg, method); err != nil {
		return err
	}

	slog.Info("configuration applied", "method", method.String(), "serial", s.Serial())
	return nil
}

// Show labels every monitor with its number for the configured linger, then
// hides the labels again.
func (a *App) Show(ctx context.Context) error {
	s, err := a.Mgr.FetchCurrentState(ctx)
	if err != nil {
		return err
	}

	if err := a.Mgr.ShowLabels(ctx, s); err != nil {
		return err
	}

	var linger time.Duration
	if a.Cfg != nil {
		linger = a.Cfg.LabelLinger
	}

	slog.Info("showing monitor labels", "linger", linger)
	if err := a.sleep(ctx, linger); err != nil {
		slog.Debug("label linger interrupted", "error", err)
	}

	return a.Mgr.HideLabels(context.WithoutCancel(ctx))
}

// ApplyFile applies a profile from the layout file at path to the current
// state.
func (a *App) ApplyFile(ctx context.Context, path string, opts ApplyOptions) error {
	s, err := a.Mgr.FetchCurrentState(ctx)
	if err != nil {
		return err
	}

	return a.applyLayout(ctx, s, path, opts)
}

func (a *App) applyLayout(ctx context.Context, s *display.State, path string, opts ApplyOptions) error {
	f, err := layout.Load(path)
	if err != nil {
		return err
	}

	var p *layout.Profile
	if opts.Profile != "" {
		p = f.Lookup(opts.Profile)
		if p == nil {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, opts.Profile)
		}
	} else {
		p, err = f.Match(s)
		if err != nil {
			return fmt.Errorf("connected monitors %s: %w", connectorKey(s), err)
		}
	}

	steps, err := p.Steps(s)
	if err != nil {
		return err
	}

	cfg, err := build(s, steps)
	if err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}

	method := p.ApplyMethod(a.Method())
	if opts.Method != nil {
		method = *opts.Method
	}

	fmt.Fprint(a.Out, a.renderConfig(cfg))
	if err := a.Mgr.Apply(ctx, s, cfg, method); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}

	slog.Info("layout profile applied", "profile", p.Name, "method", method.String(), "serial", s.Serial())
	return nil
}

func build(s *display.State, steps []display.Step) (*display.Config, error) {
	b := display.NewBuilder(s)
	if err := b.Run(steps...); err != nil {
		return nil, fmt.Errorf("building configuration: %w", err)
	}

	cfg, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalizing configuration: %w", err)
	}

	return cfg, nil
}

// connectorKey identifies the set of connected monitors.
func connectorKey(s *display.State) string {
	conns := make([]string, 0, len(s.Monitors()))
	for _, m := range s.Monitors() {
		conns = append(conns, m.Connector())
	}
	slices.Sort(conns)
	return strings.Join(conns, ",")
}
