package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/yaklabco/semoutline/pkg/langdetect"
)

// ErrInvalidGlob is returned for include or exclude patterns that do not compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

const gitignoreFile = ".gitignore"

// matcher holds the compiled filters for one discovery run.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
	opts       Options

	// ignores maps a directory to the .gitignore compiled from it.
	ignores map[string]*gitignore.GitIgnore
}

// Discover finds C# files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Paths named explicitly are subject to the extension and glob filters but
// never to hidden, gitignore or vendored rules, which only prune walks.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath, map[string]struct{}{})
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)

	return files, nil
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}

	return &matcher{
		workDir:    workDir,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
		opts:       opts,
		ignores:    make(map[string]*gitignore.GitIgnore),
	}, nil
}

// compileGlobs compiles slash-separated patterns: "*" stays within a path
// segment and "**" spans segments.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively walks root. visited holds the real paths of directories
// already entered through symlinks, so symlink cycles end.
func (m *matcher) walk(ctx context.Context, root string, visited map[string]struct{}) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && m.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			if m.opts.RespectGitignore {
				m.loadGitignore(path)
			}
			return nil
		}

		if !m.opts.IncludeHidden && isHidden(entry.Name()) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !m.opts.FollowSymlinks || m.skipDir(path, entry.Name()) {
					return nil
				}
				if _, ok := visited[realPath]; ok {
					return nil
				}
				visited[realPath] = struct{}{}
				// Walk the target: WalkDir does not descend into symlinks.
				subFiles, err := m.walk(ctx, realPath, visited)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if m.ignored(path, false) {
			return nil
		}
		if m.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// skipDir reports whether the walk should not descend into dir.
func (m *matcher) skipDir(dir, name string) bool {
	if !m.opts.IncludeHidden && isHidden(name) {
		return true
	}
	rel := m.rel(dir)
	if m.opts.SkipVendored && langdetect.Detect(rel+"/", nil).Vendored {
		return true
	}
	if matchAny(m.exclude, rel) || matchAny(m.exclude, rel+"/") {
		return true
	}
	return m.ignored(dir, true)
}

// matchesFile checks a file path against the extension and glob filters.
func (m *matcher) matchesFile(path string) bool {
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	rel := m.rel(path)
	base := filepath.Base(path)

	if matchAny(m.exclude, rel) || matchAny(m.exclude, base) {
		return false
	}
	if len(m.include) > 0 && !matchAny(m.include, rel) && !matchAny(m.include, base) {
		return false
	}
	return true
}

func (m *matcher) loadGitignore(dir string) {
	if _, ok := m.ignores[dir]; ok {
		return
	}
	path := filepath.Join(dir, gitignoreFile)
	if _, err := os.Stat(path); err != nil {
		m.ignores[dir] = nil
		return
	}
	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		m.ignores[dir] = nil
		return
	}
	m.ignores[dir] = ignore
}

// ignored reports whether any .gitignore in an ancestor directory of path
// matches it.
func (m *matcher) ignored(path string, isDir bool) bool {
	if !m.opts.RespectGitignore {
		return false
	}
	for dir, ignore := range m.ignores {
		if ignore == nil {
			continue
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if ignore.MatchesPath(rel) || (isDir && ignore.MatchesPath(rel+"/")) {
			return true
		}
	}
	return false
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
