package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the arbor CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "arbor",
		Short:        "Arbor analyzes neuron skeleton morphology",
		Long:         `Arbor is a CLI tool for working with reconstructed neuron skeletons: classifying their topology, downsampling, rerooting, cutting, and measuring them, from local SWC files or straight off a CATMAID server.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("arbor %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/arbor/config.toml)")

	root.AddCommand(newClassifyCmd(&configPath))
	root.AddCommand(newResampleCmd(&configPath))
	root.AddCommand(newRerootCmd(&configPath))
	root.AddCommand(newCutCmd(&configPath))
	root.AddCommand(newStrahlerCmd(&configPath))
	root.AddCommand(newLongestCmd(&configPath))
	root.AddCommand(newCableCmd(&configPath))
	root.AddCommand(newSynapsesCmd(&configPath))
	root.AddCommand(newInVolumeCmd(&configPath))
	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newCacheCmd(&configPath))

	return root.ExecuteContext(ctx)
}
