package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semoutline/internal/configloader"
	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/pkg/config"
	"github.com/yaklabco/semoutline/pkg/outliner"
)

// loadConfig resolves the layered configuration for a command. cliCfg holds
// only the values set by flags on that command.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(cmd.Context())

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug && loadResult.Config.LogLevel != "" { //nolint:errcheck // Registered persistent flag
		logger.SetLevel(logging.ParseLevel(loadResult.Config.LogLevel))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

// newOutliner builds the C# outliner configured by cfg.
func newOutliner(cfg *config.Config) *outliner.Outliner {
	return outliner.NewCSharp(
		outliner.WithVerify(config.Enabled(cfg.Verify)),
		outliner.WithMaxFileSize(cfg.MaxFileSize),
	)
}

// usageArgs wraps a cobra argument validator so its failures map to ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
