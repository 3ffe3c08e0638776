package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/config"
)

// isolated returns options that only see files under dir.
func isolated(dir string, env map[string]string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		LookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir(), nil))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeConfig(t, filepath.Join(root, ".semoutline.yml"), "suffix: .yaml\nskip_vendored: false\n")

	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested, nil))
	require.NoError(t, err)

	assert.Equal(t, ".yaml", result.Config.Suffix)
	assert.False(t, config.Enabled(result.Config.SkipVendored))
	assert.True(t, config.Enabled(result.Config.SkipGenerated))
	assert.Equal(t, []string{filepath.Join(root, ".semoutline.yml")}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".semoutline.yml"), "suffix: .outer\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo, nil))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSuffix, result.Config.Suffix)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".semoutline.yml"), "jobs: 2\nencoding: latin1\nsuffix: .project\nverify: true\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeConfig(t, explicit, "jobs: 3\nsuffix: .explicit\n")

	opts := isolated(dir, map[string]string{
		"SEMOUTLINE_JOBS":    "4",
		"SEMOUTLINE_EXCLUDE": "**/obj/**, **/bin/**",
	})
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{Jobs: 8, Verify: config.Bool(false)}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 8, cfg.Jobs, "CLI beats environment")
	assert.Equal(t, []string{"**/obj/**", "**/bin/**"}, cfg.Exclude, "environment applies")
	assert.Equal(t, ".explicit", cfg.Suffix, "explicit beats project")
	assert.Equal(t, "latin1", cfg.Encoding, "project applies")
	assert.False(t, config.Enabled(cfg.Verify), "CLI can switch a setting off")
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown key", content: "flavor: gfm\n"},
		{name: "bad encoding", content: "encoding: klingon\n"},
		{name: "bad glob", content: "exclude:\n  - \"[abc\"\n"},
		{name: "negative jobs", content: "jobs: -1\n"},
		{name: "bad color", content: "color: sometimes\n"},
		{name: "bad env bool", env: map[string]string{"SEMOUTLINE_VERIFY": "maybe"}},
		{name: "bad env int", env: map[string]string{"SEMOUTLINE_JOBS": "many"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tc.content != "" {
				writeConfig(t, filepath.Join(dir, ".semoutline.yml"), tc.content)
			}

			_, err := Load(context.Background(), isolated(dir, tc.env))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".semoutline.yml"), "extensions:\n  - cs\n")

	result, err := Load(context.Background(), isolated(dir, nil))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "extensions[0]")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir(), nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{Include: []string{"src/**"}, RespectGitignore: config.Bool(false)}

	merged := MergeAll(base, nil, override)
	assert.Equal(t, []string{"src/**"}, merged.Include)
	assert.False(t, config.Enabled(merged.RespectGitignore))
	assert.Equal(t, config.DefaultEncoding, merged.Encoding)
	assert.True(t, config.Enabled(base.RespectGitignore), "base is not modified")

	assert.Nil(t, MergeAll())
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SEMOUTLINE_SKIP_GENERATED", GetEnvVarName("skip_generated"))
	assert.Empty(t, GetEnvVarName("nope"))
	assert.Contains(t, ListEnvVars(), "SEMOUTLINE_ENCODING")
	assert.Len(t, ListEnvVars(), len(envMappings))
}
