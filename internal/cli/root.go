// Package cli provides the Cobra command structure for semoutline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/internal/session"
	"github.com/yaklabco/semoutline/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// sessionArgs is the number of positional arguments that start a session.
const sessionArgs = 2

// NewRootCommand creates the root semoutline command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "semoutline [<shell> <flagfile>]",
		Short: "Outline C# sources for semantic merge tools",
		Long: `semoutline turns C# source files into outline trees of their declarations
with exact character spans and line/column locations, written as YAML.

Invoked with two arguments it runs as an external parser for a merge tool:
it writes a ready byte to <flagfile>, then reads requests from stdin as
three lines each (input path, encoding, output path) and answers OK or KO
until it reads "end".`,
		Args: usageArgs(func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != sessionArgs {
				return fmt.Errorf("expected 0 or %d arguments, got %d", sessionArgs, len(args))
			}
			return nil
		}),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !config.ColorMode(color).IsValid() {
				return fmt.Errorf("%w: invalid --color %q: must be auto, always or never", ErrUsage, color)
			}
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSession(cmd, args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newBatchCommand(info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

func runSession(cmd *cobra.Command, shell, flagFile string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	loadResult, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	logger.Debug("session starting", logging.FieldShell, shell, logging.FieldFlagFile, flagFile)

	if err := session.SignalReady(flagFile); err != nil {
		return err
	}

	stats, err := session.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), newOutliner(loadResult.Config))
	logger.Debug("session finished",
		logging.FieldRequests, stats.Requests,
		logging.FieldFilesWithErrors, stats.WithErrors,
		logging.FieldFilesFailed, stats.Failed,
		logging.FieldDuration, stats.TotalDuration,
	)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}
