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

	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
)

// Discover resolves opts.Paths into the inputs to convert. Directories are
// walked for files with a configured extension; files named explicitly are
// kept whatever their extension unless an exclude pattern matches. The
// result is sorted, with "-" (stdin) first when requested.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if arg == StdinPath {
			w.add(StdinPath)
			continue
		}

		abs := arg
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(w.workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !w.exclude.Match(w.rel(abs)) {
				w.add(abs)
			}
			continue
		}
		if err := w.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	// "-" sorts before any absolute path.
	slices.Sort(w.files)
	return w.files, nil
}

// walker collects inputs for a single Discover call.
type walker struct {
	workDir    string
	extensions []string
	include    fsutil.GlobSet
	exclude    fsutil.GlobSet
	follow     bool

	seen  map[string]struct{}
	files []string
}

func newWalker(opts Options) (*walker, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	include, err := fsutil.CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := fsutil.CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}
	return &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory for pattern matching.
// Paths outside it are matched as given.
func (w *walker) rel(path string) string {
	if r, err := filepath.Rel(w.workDir, path); err == nil {
		return r
	}
	return path
}

// walk adds every convertible file below root. Hidden entries are skipped
// and unreadable directories are ignored.
func (w *walker) walk(ctx context.Context, root string) error {
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

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		rel := w.rel(path)

		if entry.IsDir() {
			if hidden || w.exclude.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveLink(path)
			if !ok {
				return nil
			}
			if target.IsDir() {
				if !w.follow {
					return nil
				}
				// WalkDir does not descend through links, so walk the target.
				dest, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // link vanished after resolveLink
				}
				return w.walk(ctx, dest)
			}
		}

		if w.accepts(path, rel) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// resolveLink stats the target of a symlink. Broken links report false.
func resolveLink(path string) (fs.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}

func (w *walker) accepts(path, rel string) bool {
	if !formatdetect.MatchesExtension(path, w.extensions) {
		return false
	}
	if w.exclude.Match(rel) {
		return false
	}
	return w.include.Empty() || w.include.Match(rel)
}
