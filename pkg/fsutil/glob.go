package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// GlobSet matches slash-separated relative paths against ignore or include
// patterns. "*" stays within one path segment and "**" spans segments.
// A pattern without a slash also matches the base name, so "*.tmp" applies
// at any depth.
type GlobSet struct {
	patterns []compiledGlob
}

type compiledGlob struct {
	source   string
	variants []glob.Glob
	baseName bool
}

// CompileGlob compiles a single pattern. It is used to validate patterns
// before a run starts.
func CompileGlob(pattern string) error {
	_, err := compileOne(pattern)
	return err
}

// CompileGlobs compiles patterns into a GlobSet. The first malformed
// pattern is reported.
func CompileGlobs(patterns []string) (GlobSet, error) {
	set := GlobSet{patterns: make([]compiledGlob, 0, len(patterns))}
	for _, p := range patterns {
		c, err := compileOne(p)
		if err != nil {
			return GlobSet{}, err
		}
		set.patterns = append(set.patterns, c)
	}
	return set, nil
}

func compileOne(pattern string) (compiledGlob, error) {
	p := filepath.ToSlash(pattern)
	sources := []string{p}
	// "**/x" also matches x at the root and "x/**" matches x itself.
	if rest, ok := strings.CutPrefix(p, "**/"); ok && rest != "" {
		sources = append(sources, rest)
	}
	if dir, ok := strings.CutSuffix(p, "/**"); ok && dir != "" {
		sources = append(sources, dir)
	}

	c := compiledGlob{source: pattern, baseName: !strings.Contains(p, "/")}
	for _, src := range sources {
		g, err := glob.Compile(src, '/')
		if err != nil {
			return compiledGlob{}, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		c.variants = append(c.variants, g)
	}
	return c, nil
}

// Empty reports whether the set has no patterns.
func (s GlobSet) Empty() bool {
	return len(s.patterns) == 0
}

// Match reports whether rel matches any pattern in the set.
func (s GlobSet) Match(rel string) bool {
	_, ok := s.Which(rel)
	return ok
}

// Which returns the first pattern that matches rel.
func (s GlobSet) Which(rel string) (string, bool) {
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, c := range s.patterns {
		for _, g := range c.variants {
			if g.Match(rel) || (c.baseName && g.Match(base)) {
				return c.source, true
			}
		}
	}
	return "", false
}
