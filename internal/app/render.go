package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dsrosen6/gnome-monitor-config/internal/display"
)

type styles struct {
	heading lipgloss.Style
	on      lipgloss.Style
	off     lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true),
		on:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		off:     r.NewStyle().Foreground(lipgloss.Color("8")),
		flag:    r.NewStyle().Foreground(lipgloss.Color("4")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (a *App) renderState(s *display.State) string {
	var b strings.Builder

	for _, m := range s.Monitors() {
		status := a.styles.off.Render("OFF")
		if m.IsActive() {
			status = a.styles.on.Render("ON")
		}

		builtin := ""
		if m.IsBuiltin() {
			builtin = " " + a.styles.flag.Render("BUILTIN")
		}

		fmt.Fprintf(&b, "%s %s%s\n", a.styles.heading.Render("Monitor [ "+m.Connector()+" ]"), status, builtin)
		if m.DisplayName != "" {
			fmt.Fprintf(&b, "  display-name: %s\n", m.DisplayName)
		}

		for _, md := range m.Modes() {
			b.WriteString("  " + a.renderMode(md) + "\n")
		}
	}

	for _, lm := range s.LogicalMonitors() {
		b.WriteString(a.renderLogicalHeading(lm.Layout(), lm.Primary, lm.Scale, lm.Transform) + "\n")
		for _, m := range lm.Monitors() {
			fmt.Fprintf(&b, "  %s\n", m.Connector())
		}
	}

	if size, ok := s.MaxScreenSize(); ok {
		fmt.Fprintf(&b, "Max screen size: %dx%d\n", size.Width, size.Height)
	} else {
		b.WriteString("Max screen size: unlimited\n")
	}

	if lm, ok := s.LayoutMode(); ok {
		fmt.Fprintf(&b, "Layout mode: %s\n", lm)
	}

	return b.String()
}

func (a *App) renderMode(md *display.Mode) string {
	scales := make([]string, len(md.SupportedScales))
	for i, s := range md.SupportedScales {
		scales[i] = fmt.Sprintf("%g", s)
	}

	line := fmt.Sprintf("%dx%d@%g %s", md.Width, md.Height, md.RefreshRate,
		a.styles.dim.Render(fmt.Sprintf("[id: '%s'] [preferred scale = %g (%s)]", md.ID(), md.PreferredScale, strings.Join(scales, " "))))

	if md.Preferred {
		line += " " + a.styles.flag.Render("PREFERRED")
	}
	if md.Current {
		line += " " + a.styles.flag.Render("CURRENT")
	}
	return line
}

func (a *App) renderLogicalHeading(r display.Rect, primary bool, scale float64, t display.Transform) string {
	heading := a.styles.heading.Render("Logical monitor [ " + r.String() + " ]")
	if primary {
		heading += ", " + a.styles.flag.Render("PRIMARY")
	}
	return fmt.Sprintf("%s, scale = %g, transform = %s", heading, scale, t)
}

// renderConfig prints a pending configuration before it is applied.
func (a *App) renderConfig(cfg *display.Config) string {
	var b strings.Builder
	b.WriteString(a.styles.heading.Render("Pending configuration:") + "\n")

	for _, lm := range cfg.LogicalMonitors() {
		b.WriteString(a.renderLogicalHeading(lm.Layout(), lm.Primary, lm.Scale, lm.Transform) + "\n")
		for _, mc := range lm.MonitorConfigs() {
			fmt.Fprintf(&b, "  %s %s\n", mc.Monitor().Connector(), a.styles.dim.Render(mc.Mode().ID()))
		}
	}

	if lm, ok := cfg.LayoutMode(); ok {
		fmt.Fprintf(&b, "Layout mode: %s\n", lm)
	}

	return b.String()
}
