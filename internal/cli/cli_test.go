package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/internal/cli"
	"github.com/yaklabco/semoutline/internal/configloader"
	"github.com/yaklabco/semoutline/pkg/fsutil"
	"github.com/yaklabco/semoutline/pkg/outliner"
	"github.com/yaklabco/semoutline/pkg/reporter"
	"github.com/yaklabco/semoutline/pkg/runner"
)

const (
	socketSource = "class Socket\n{\n   void Connect(string server)\n   {\n   }\n}"
	brokenSource = "}}}}"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "semoutline", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "batch", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "parse", flags: []string{"output", "encoding", "verify", "tree"}},
		{command: "batch", flags: []string{
			"encoding", "suffix", "jobs", "exclude", "include", "hidden",
			"follow-symlinks", "no-gitignore", "no-skip", "verify", "dry-run", "verbose",
			"format", "compact",
		}},
		{command: "init", flags: []string{"force", "full", "output"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			subCmd, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, name := range tt.flags {
				assert.NotNil(t, subCmd.Flags().Lookup(name), name)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestRootCommand_WrongArgumentCount(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "only-one")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestRootCommand_InvalidColor(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--color", "sometimes", "version"})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", "--no-such-flag", "x.cs")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestRootCommand_Session(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeSource(t, dir, "Socket.cs", socketSource)
	bad := writeSource(t, dir, "Broken.cs", brokenSource)
	flagFile := filepath.Join(dir, "flag")

	stdin := fmt.Sprintf("%s\nutf-8\n%s\n%s\nutf-8\n%s\nend\n",
		good, good+".yml", bad, bad+".yml")

	out, err := execute(t, stdin, "shell", flagFile)
	require.NoError(t, err)
	assert.Equal(t, "OK\nKO\n", out)

	ready, err := os.ReadFile(flagFile)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42}, ready)

	assert.FileExists(t, good+".yml")
	assert.FileExists(t, bad+".yml")
}

func TestParseCommand_Stdout(t *testing.T) {
	t.Parallel()

	input := writeSource(t, t.TempDir(), "Socket.cs", socketSource)

	out, err := execute(t, "", "parse", input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "type: file")
	assert.Contains(t, out, "name: Socket")
	assert.Contains(t, out, "name: Connect")
	assert.Contains(t, out, "parsingErrorsDetected: false")
}

func TestParseCommand_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeSource(t, dir, "Socket.cs", socketSource)
	output := filepath.Join(dir, "out", "Socket.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))

	out, err := execute(t, "", "parse", input, "-o", output, "--verify")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Socket")
}

func TestParseCommand_Tree(t *testing.T) {
	t.Parallel()

	input := writeSource(t, t.TempDir(), "Socket.cs", socketSource)

	out, err := execute(t, "", "parse", input, "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "  class Socket  1:0-6:0")
	assert.Contains(t, out, "    method Connect  3:0-5:4")
	assert.NotContains(t, out, "---")
}

func TestParseCommand_ParsingErrors(t *testing.T) {
	t.Parallel()

	input := writeSource(t, t.TempDir(), "Broken.cs", brokenSource)

	out, err := execute(t, "", "parse", input)
	require.ErrorIs(t, err, cli.ErrParsingErrorsFound)
	assert.Equal(t, cli.ExitParsingErrors, cli.ExitCode(err))
	assert.Contains(t, out, "parsingErrorsDetected: true")
}

func TestParseCommand_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.cs"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestParseCommand_RequiresInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestBatchCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	socket := writeSource(t, dir, "src/Socket.cs", socketSource)
	other := writeSource(t, dir, "src/Net/Client.cs", "class Client { }")
	writeSource(t, dir, "README.md", "# readme")

	out, err := execute(t, "", "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files outlined")

	assert.FileExists(t, socket+runner.DefaultSuffix)
	assert.FileExists(t, other+runner.DefaultSuffix)
	assert.NoFileExists(t, filepath.Join(dir, "README.md"+runner.DefaultSuffix))
}

func TestBatchCommand_DryRunVerbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	socket := writeSource(t, dir, "Socket.cs", socketSource)

	out, err := execute(t, "", "batch", "--dry-run", "-v", "--suffix", ".yml", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Socket.cs")
	assert.Contains(t, out, "Summary")
	assert.NoFileExists(t, socket+".yml")
}

func TestBatchCommand_ParsingErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "Socket.cs", socketSource)
	broken := writeSource(t, dir, "Broken.cs", brokenSource)

	out, err := execute(t, "", "batch", dir)
	require.ErrorIs(t, err, cli.ErrParsingErrorsFound)
	assert.Contains(t, out, "1 with parsing errors")
	assert.Contains(t, out, broken)
	assert.FileExists(t, broken+runner.DefaultSuffix)
}

func TestBatchCommand_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "Socket.cs", socketSource)

	out, err := execute(t, "", "batch", "--format", "json", "--dry-run", dir)
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "1.2.3", decoded.Version)
	assert.Equal(t, 1, decoded.Summary.FilesProcessed)
	assert.Positive(t, decoded.Files[0].Nodes)
}

func TestBatchCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "batch", "--format", "xml", t.TempDir())
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestBatchCommand_Exclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kept := writeSource(t, dir, "Socket.cs", socketSource)
	skipped := writeSource(t, dir, "obj/Temp.cs", socketSource)

	_, err := execute(t, "", "batch", "--exclude", "**/obj/**", dir)
	require.NoError(t, err)

	assert.FileExists(t, kept+runner.DefaultSuffix)
	assert.NoFileExists(t, skipped+runner.DefaultSuffix)
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), configloader.ProjectConfigName)

	_, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "encoding: utf-8")

	_, err = execute(t, "", "init", "--output", output)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "", "init", "--output", output, "--force", "--full")
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "parsing errors", err: cli.ErrParsingErrorsFound, want: cli.ExitParsingErrors},
		{name: "usage", err: fmt.Errorf("%w: bad", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: x", configloader.ErrInvalidConfig), want: cli.ExitConfigError},
		{name: "not found", err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "write", err: outliner.ErrWriteFailure, want: cli.ExitIOError},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitParsingErrors, cli.ExitCodeFromResult(&runner.Result{
		Stats: runner.Stats{FilesWithErrors: 1},
	}))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromResult(&runner.Result{
		Stats: runner.Stats{FilesWithErrors: 1, FilesFailed: 1},
	}))
}
