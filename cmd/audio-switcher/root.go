package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/777genius/audio-switcher/internal/config"
	"github.com/777genius/audio-switcher/internal/errorhandler"
	"github.com/777genius/audio-switcher/internal/logging"
	"github.com/777genius/audio-switcher/internal/notifier"
	"github.com/777genius/audio-switcher/internal/platform"
	"github.com/777genius/audio-switcher/internal/pulse"
	"github.com/777genius/audio-switcher/internal/selector"
)

// sinkClient lists sinks and switches the default one
type sinkClient interface {
	ListSinks(ctx context.Context) (pulse.Listing, error)
	SetDefaultSink(ctx context.Context, index int) error
}

// switchNotifier announces a completed switch
type switchNotifier interface {
	SendSwitched(label string) error
}

// deps are the collaborators built from the loaded config
type deps struct {
	newClient   func(cfg *config.Config) sinkClient
	newNotifier func(cfg *config.Config) switchNotifier
}

func defaultDeps() deps {
	return deps{
		newClient: func(cfg *config.Config) sinkClient {
			return pulse.New(cfg, pulse.ExecRunner{})
		},
		newNotifier: func(cfg *config.Config) switchNotifier {
			return notifier.New(cfg)
		},
	}
}

type rootOptions struct {
	selector.Options
	device     string
	configPath string
	debug      bool
}

func newRootCmd(d deps, stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "audio-switcher",
		Short: "Audio Output Switcher",
		Long: "Cycle the default audio output to the next device, or switch to a named one.\n" +
			"Devices are read from the sound server's sink listing on every run.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("device") {
				opts.Device = &opts.device
			}
			if !cmd.Flags().Changed("outputs") && len(cfg.Outputs) > 0 {
				opts.Outputs = cfg.Outputs
			}
			return run(cmd.Context(), d, cfg, opts.Options, stdout)
		},
	}

	cmd.SetOut(stdout)
	cmd.Flags().BoolVarP(&opts.List, "list-devices", "l", false, "list audio outputs")
	cmd.Flags().StringVarP(&opts.device, "device", "d", "", "switch to this specific output")
	cmd.Flags().StringArrayVarP(&opts.Outputs, "outputs", "o", nil, "limit switcher to the listed outputs (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the output that would be selected without switching")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file path")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log debug messages to stderr")

	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "audio-switcher v%s\n", version)
		},
	}
}

func initLogging(debug bool) {
	if _, err := logging.InitLogger(platform.StateDir()); err != nil {
		errorhandler.HandleError(err, "Failed to initialize logger")
	}
	logging.SetPrefix(uuid.NewString()[:8])
	logging.SetVerbose(debug)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, d deps, cfg *config.Config, opts selector.Options, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client := d.newClient(cfg)
	listing, err := client.ListSinks(ctx)
	if err != nil {
		return err
	}

	sel := selector.New(client, d.newNotifier(cfg), stdout)
	return sel.Run(ctx, listing, opts)
}
