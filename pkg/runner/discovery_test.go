package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/runner"
)

// writeTree creates files under dir, with the given content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func abs(dir string, names ...string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(name)))
	}
	return paths
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"Program.cs":                  "class Program { }",
		"src/Model/Order.cs":          "class Order { }",
		"src/Model/Order.CS":          "class Upper { }",
		"src/readme.md":               "# readme",
		"src/Tests/OrderTests.cs":     "class OrderTests { }",
		".hidden/Secret.cs":           "class Secret { }",
		"vendor/lib/Library.cs":       "class Library { }",
		"build/Generated.cs":          "class Generated { }",
		"src/.editor/Settings.cs":     "class Settings { }",
		"tools/scripts/Install.csx":   "class Install { }",
		"tools/scripts/.gitignore":    "Ignored.cs\n",
		"tools/scripts/Ignored.cs":    "class Ignored { }",
		"tools/scripts/NotIgnored.cs": "class NotIgnored { }",
	}

	tests := []struct {
		name     string
		opts     runner.Options
		expected []string
	}{
		{
			name: "defaults",
			expected: []string{
				"Program.cs", "build/Generated.cs", "src/Model/Order.CS", "src/Model/Order.cs",
				"src/Tests/OrderTests.cs", "tools/scripts/Ignored.cs", "tools/scripts/NotIgnored.cs",
				"vendor/lib/Library.cs",
			},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"build/**", "**/*Tests.cs", "vendor"}},
			expected: []string{
				"Program.cs", "src/Model/Order.CS", "src/Model/Order.cs",
				"tools/scripts/Ignored.cs", "tools/scripts/NotIgnored.cs",
			},
		},
		{
			name:     "include globs",
			opts:     runner.Options{IncludeGlobs: []string{"src/**"}},
			expected: []string{"src/Model/Order.CS", "src/Model/Order.cs", "src/Tests/OrderTests.cs"},
		},
		{
			name:     "extensions",
			opts:     runner.Options{Extensions: []string{"csx"}},
			expected: []string{"tools/scripts/Install.csx"},
		},
		{
			name: "gitignore and vendored",
			opts: runner.Options{RespectGitignore: true, SkipVendored: true},
			expected: []string{
				"Program.cs", "build/Generated.cs", "src/Model/Order.CS", "src/Model/Order.cs",
				"src/Tests/OrderTests.cs", "tools/scripts/NotIgnored.cs",
			},
		},
		{
			name:     "hidden included",
			opts:     runner.Options{IncludeHidden: true, Paths: []string{".hidden", "src/.editor"}},
			expected: []string{".hidden/Secret.cs", "src/.editor/Settings.cs"},
		},
		{
			name:     "explicit file",
			opts:     runner.Options{Paths: []string{"vendor/lib/Library.cs"}, SkipVendored: true},
			expected: []string{"vendor/lib/Library.cs"},
		},
		{
			name:     "overlapping paths are deduplicated",
			opts:     runner.Options{Paths: []string{"src/Model", "src/Model/Order.cs"}},
			expected: []string{"src/Model/Order.CS", "src/Model/Order.cs"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := tc.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tc.expected...), files)
		})
	}
}

func TestDiscoverInvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.ErrorIs(t, err, runner.ErrInvalidGlob)
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"nope"},
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real/Linked.cs": "class Linked { }"})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "root"), 0o755))
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "root", "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// A cycle back to the root must not loop forever.
	require.NoError(t, os.Symlink(filepath.Join(dir, "root"), filepath.Join(dir, "real", "back")))

	opts := runner.Options{WorkingDir: dir, Paths: []string{"root"}}

	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, files)

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "real", "Linked.cs")}, files)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}
