// Package app ties the display manager, config, layout files and listener
// together for the CLI.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dsrosen6/gnome-monitor-config/internal/config"
	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
)

type App struct {
	Mgr *manager.Manager
	Cfg *config.Config
	Out io.Writer

	styles styles
	// sleep waits out the label linger; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewApp(cfg *config.Config, mgr *manager.Manager, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}

	return &App{
		Mgr:    mgr,
		Cfg:    cfg,
		Out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
		sleep:  sleepCtx,
	}
}

// Method returns the configured default apply method.
func (a *App) Method() manager.Method {
	if a.Cfg == nil {
		return manager.MethodTemporary
	}

	m, err := a.Cfg.Method()
	if err != nil {
		return manager.MethodTemporary
	}
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
