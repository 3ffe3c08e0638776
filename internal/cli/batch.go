package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/pkg/config"
	"github.com/yaklabco/semoutline/pkg/reporter"
	"github.com/yaklabco/semoutline/pkg/runner"
)

type batchFlags struct {
	encoding       string
	suffix         string
	jobs           int
	exclude        []string
	include        []string
	hidden         bool
	followSymlinks bool
	noGitignore    bool
	noSkip         bool
	verify         bool
	dryRun         bool
	verbose        bool
	format         string
	compact        bool
}

func newBatchCommand(info BuildInfo) *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Outline every C# file under the given paths",
		Long: `Outline every C# file found under the given files and directories and
write each outline next to its source as <file><suffix>.

By default the current directory is searched. Hidden directories, paths
ignored by .gitignore, vendored directories and generated sources are
skipped. The command exits with status 1 when any file has parsing errors
and with status 74 when any file could not be outlined.

Examples:
  semoutline batch                      # Outline the current directory
  semoutline batch src/ tests/          # Outline two trees
  semoutline batch --exclude "**/obj/**" --jobs 4
  semoutline batch --dry-run -v         # Report without writing outlines
  semoutline batch --format sarif       # Parsing errors as SARIF for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags, info)
		},
	}

	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", "", "source encoding (default from config, utf-8)")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "outline file suffix (default "+config.DefaultSuffix+")")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns to include")
	cmd.Flags().BoolVar(&flags.hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noGitignore, "no-gitignore", false, "do not honor .gitignore files")
	cmd.Flags().BoolVar(&flags.noSkip, "no-skip", false, "outline vendored and generated files too")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "check each outline against the tree invariants")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "outline files without writing outlines")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every file with its status (table format)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")

	return cmd
}

// cliConfig converts the flags that were set on cmd into a config layer.
func (f *batchFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Encoding: f.encoding,
		Suffix:   f.suffix,
		Jobs:     f.jobs,
		Include:  f.include,
		Exclude:  f.exclude,
	}

	changed := cmd.Flags().Changed
	if changed("hidden") {
		cfg.IncludeHidden = config.Bool(f.hidden)
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(f.followSymlinks)
	}
	if changed("no-gitignore") {
		cfg.RespectGitignore = config.Bool(!f.noGitignore)
	}
	if changed("no-skip") {
		cfg.SkipVendored = config.Bool(!f.noSkip)
		cfg.SkipGenerated = config.Bool(!f.noSkip)
	}
	if changed("verify") {
		cfg.Verify = config.Bool(f.verify)
	}

	return cfg
}

func runBatch(cmd *cobra.Command, args []string, flags *batchFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.verbose && format == reporter.FormatText {
		format = reporter.FormatTable
	}

	loadResult, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		Extensions:       cfg.Extensions,
		IncludeGlobs:     cfg.Include,
		ExcludeGlobs:     cfg.Exclude,
		RespectGitignore: config.Enabled(cfg.RespectGitignore),
		IncludeHidden:    config.Enabled(cfg.IncludeHidden),
		FollowSymlinks:   config.Enabled(cfg.FollowSymlinks),
		SkipVendored:     config.Enabled(cfg.SkipVendored),
		SkipGenerated:    config.Enabled(cfg.SkipGenerated),
		Jobs:             cfg.Jobs,
		Encoding:         cfg.Encoding,
		Suffix:           cfg.Suffix,
		DryRun:           flags.dryRun,
	}

	logger.Debug("starting batch run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldSuffix, opts.Suffix,
	)

	result, err := runner.New(newOutliner(cfg)).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	logger.Debug("batch run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesWithErrors, result.Stats.FilesWithErrors,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
	)

	colorMode := string(cfg.Color)
	if cmd.Flags().Changed("color") {
		colorMode, _ = cmd.Flags().GetString("color") //nolint:errcheck // Registered persistent flag
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
		Version:     info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return errorFromResult(result)
}
