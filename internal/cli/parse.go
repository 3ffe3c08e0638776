package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/internal/ui/pretty"
	"github.com/yaklabco/semoutline/pkg/config"
	"github.com/yaklabco/semoutline/pkg/outline"
	"github.com/yaklabco/semoutline/pkg/yamlout"
)

type parseFlags struct {
	output   string
	encoding string
	verify   bool
	tree     bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Outline a single C# file",
		Long: `Outline a single C# file and write the outline as YAML.

The outline goes to stdout unless --output names a file. With --tree an
indented summary of the outline is printed instead of YAML on stdout.
The command exits with status 1 when the file has parsing errors.

Examples:
  semoutline parse Socket.cs
  semoutline parse Socket.cs -o Socket.cs.outline.yml
  semoutline parse Legacy.cs -e windows-1252 --verify
  semoutline parse Socket.cs --tree`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the YAML outline to this file")
	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", "", "source encoding (default from config, utf-8)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "check the outline against the tree invariants")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "print an indented outline summary")

	return cmd
}

func runParse(cmd *cobra.Command, input string, flags *parseFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{Encoding: flags.encoding}
	if cmd.Flags().Changed("verify") {
		cliCfg.Verify = config.Bool(flags.verify)
	}

	loadResult, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	outliner := newOutliner(cfg)

	var file *outline.File
	if flags.output != "" {
		file, err = outliner.OutlineTo(ctx, input, cfg.Encoding, flags.output)
	} else {
		file, err = outliner.OutlineFile(ctx, input, cfg.Encoding)
	}
	if err != nil {
		return fmt.Errorf("outline %s: %w", input, err)
	}

	switch {
	case flags.tree:
		colorMode, _ := cmd.Flags().GetString("color") //nolint:errcheck // Registered persistent flag
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
		if _, err := fmt.Fprint(cmd.OutOrStdout(), styles.FormatOutline(file)); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
	case flags.output == "":
		if err := yamlout.Write(cmd.OutOrStdout(), file); err != nil {
			return fmt.Errorf("write outline: %w", err)
		}
	}

	if file.ParsingErrorsDetected() {
		first := file.ParsingErrors[0]
		logger.Warn("parsing errors found",
			logging.FieldInput, input,
			logging.FieldParseErrors, len(file.ParsingErrors),
			logging.FieldLine, first.Location.Line,
			logging.FieldColumn, first.Location.Column,
		)
		return ErrParsingErrorsFound
	}

	return nil
}
