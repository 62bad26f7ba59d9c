package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dsrosen6/gnome-monitor-config/internal/app"
	"github.com/dsrosen6/gnome-monitor-config/internal/config"
	"github.com/dsrosen6/gnome-monitor-config/internal/listener"
	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
	"github.com/dsrosen6/gnome-monitor-config/internal/mutter"
	"github.com/spf13/cobra"
)

const (
	version = "0.1.0"
)

type runner struct {
	cfgPath string
	client  *mutter.Client
	app     *app.App
}

// Run is the primary entry point of gnome-monitor-config.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	r := &runner{}

	root := &cobra.Command{
		Use:               "gnome-monitor-config",
		Short:             "Inspect and change GNOME display configuration",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return r.close()
		},
	}

	root.PersistentFlags().StringVarP(&r.cfgPath, "config", "c", "", "specify a config file")

	root.AddCommand(
		r.newListCmd(),
		r.newSetCmd(),
		r.newShowCmd(),
		r.newApplyCmd(),
		r.newWatchCmd(),
		newVersionCmd(),
	)

	return root
}

// setup loads the config, configures logging and connects to the session bus.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.InitConfig(r.cfgPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	setupLogging(cfg)
	slog.Debug("initiated config", "path", cfg.Path())

	c, err := mutter.Connect()
	if err != nil {
		return err
	}

	r.client = c
	r.app = app.NewApp(cfg, manager.New(c), cmd.OutOrStdout())
	return nil
}

func (r *runner) close() error {
	if r.client == nil {
		return nil
	}

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("closing session bus connection: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}

	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func (r *runner) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monitors, their modes and the logical monitor layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.List(cmd.Context())
		},
	}
}

func (r *runner) newSetCmd() *cobra.Command {
	var (
		steps      stepList
		persistent bool
		verify     bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Build a configuration from flags and apply it",
		Long: `Build a configuration from flags and apply it.

Flags are applied in order: -L starts a logical monitor, and the flags after
it set its properties until the next -L. -m sets the mode of the monitor added
by the preceding -M.`,
		Example: "  gnome-monitor-config set -L -M DP-1 -p -s 1.25 -L -M HDMI-1 -x 1920",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(steps.steps) == 0 {
				return errors.New("nothing to set; start a logical monitor with -L")
			}

			return r.app.Set(cmd.Context(), steps.steps, r.method(persistent, verify))
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	addStepFlags(f, &steps)
	f.BoolVarP(&persistent, "persistent", "P", false, "store the configuration persistently")
	f.BoolVarP(&verify, "verify", "V", false, "only verify the configuration")
	cmd.MarkFlagsMutuallyExclusive("persistent", "verify")

	return cmd
}

func (r *runner) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show monitor labels on every screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.Show(cmd.Context())
		},
	}
}

func (r *runner) newApplyCmd() *cobra.Command {
	var (
		opts       app.ApplyOptions
		watch      bool
		persistent bool
		verify     bool
	)

	cmd := &cobra.Command{
		Use:   "apply [FILE]",
		Short: "Apply the layout profile matching the connected monitors",
		Long: `Apply the layout profile matching the connected monitors.

FILE defaults to the layout_file setting. With --watch, keep running and
re-apply when the file or the set of connected monitors changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.layoutPath(args)
			if persistent || verify {
				m := r.method(persistent, verify)
				opts.Method = &m
			}

			if watch {
				return r.watch(cmd.Context(), path, opts)
			}
			return r.app.ApplyFile(cmd.Context(), path, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&watch, "watch", "w", false, "keep running and re-apply on changes")
	f.StringVar(&opts.Profile, "profile", "", "apply this profile instead of matching one")
	f.BoolVarP(&persistent, "persistent", "P", false, "store the configuration persistently")
	f.BoolVarP(&verify, "verify", "V", false, "only verify the configuration")
	cmd.MarkFlagsMutuallyExclusive("persistent", "verify")

	return cmd
}

func (r *runner) newWatchCmd() *cobra.Command {
	var opts app.ApplyOptions

	cmd := &cobra.Command{
		Use:   "watch [FILE]",
		Short: "Apply layout profiles whenever monitors or the layout file change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.watch(cmd.Context(), r.layoutPath(args), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "apply this profile instead of matching one")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No config or bus connection needed.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// watch is the entry point to the listener; meant to be run as a systemd user
// unit or from the session's autostart.
func (r *runner) watch(ctx context.Context, path string, opts app.ApplyOptions) error {
	slog.Info("watching for display changes", "layout_file", path)
	l := listener.New(r.client.Conn(), path)

	err := r.app.Watch(ctx, l, path, opts)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *runner) method(persistent, verify bool) manager.Method {
	switch {
	case persistent:
		return manager.MethodPersistent
	case verify:
		return manager.MethodVerify
	default:
		return r.app.Method()
	}
}

func (r *runner) layoutPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return r.app.Cfg.LayoutFile
}
