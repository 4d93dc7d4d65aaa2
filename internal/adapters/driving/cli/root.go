package cli

import (
	"github.com/spf13/cobra"

	"github.com/treeline-labs/freemap-cli/internal/adapters/driven/config/file"
	"github.com/treeline-labs/freemap-cli/internal/core/ports/driven"
	"github.com/treeline-labs/freemap-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configStore driven.ConfigStore
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "freemap",
	Short: "Read, query and edit Freeplane mindmap files",
	Long: `freemap works with Freeplane .mm files from the command line.
It reads maps written by any supported Freeplane or FreeMind release,
keeps unrecognized content intact, and writes files the editor opens
without complaint.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity: debug, info, warn or error")
}

// setup wires the config store and logger before any command runs.
// The --log-level flag wins over the configured default.
func setup(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return err
		}
		configStore = store
	}

	level := logLevel
	if level == "" {
		level = configStore.GetString("log.level")
	}
	if level != "" {
		parsed, ok := logger.ParseLevel(level)
		if !ok {
			logger.Warn("unknown log level %q, keeping default", level)
			return nil
		}
		logger.SetLevel(parsed)
	}
	return nil
}
