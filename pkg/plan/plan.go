// pkg/plan/plan.go
package plan

import (
	"fmt"
	"path/filepath"

	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/resolve"
)

// Plan is the final build configuration handed to the native
// compilation step. Immutable once emitted.
type Plan struct {
	Feature  string            `yaml:"feature"`
	Version  string            `yaml:"version,omitempty"`
	Contrib  bool              `yaml:"contrib"`
	Source   string            `yaml:"source,omitempty"`
	Includes []string          `yaml:"includes"`
	LibDirs  []string          `yaml:"lib_dirs"`
	Links    []string          `yaml:"links"`
	Defines  map[string]string `yaml:"defines"`
	Stub     bool              `yaml:"stub,omitempty"`
}

// Emit transforms a resolver selection into a build plan. The only
// failure mode is path normalization; a path that cannot be made
// absolute means discovery already misbehaved, so it is fatal.
func Emit(sel *resolve.Selection) (*Plan, error) {
	c := sel.Candidate

	includes, err := normalize(c.IncludePaths)
	if err != nil {
		return nil, fmt.Errorf("normalizing include path: %w", err)
	}
	libDirs, err := normalize(c.LibPaths)
	if err != nil {
		return nil, fmt.Errorf("normalizing lib path: %w", err)
	}

	links := c.LinkLibs
	if len(links) == 0 {
		links = resolve.LinkNames(sel.Feature, sel.ContribEnabled)
	}

	defines := map[string]string{
		sel.Feature.Define(): "1",
	}
	if sel.ContribEnabled {
		defines["OCVRS_HAS_CONTRIB"] = "1"
	}

	return &Plan{
		Feature:  string(sel.Feature),
		Version:  c.Version,
		Contrib:  sel.ContribEnabled,
		Source:   c.Source,
		Includes: includes,
		LibDirs:  libDirs,
		Links:    links,
		Defines:  defines,
	}, nil
}

// Stub emits a documentation-only plan: the feature defines without
// any native discovery, sufficient for doc generation and nothing
// else.
func Stub(opts *core.Options) *Plan {
	defines := map[string]string{
		opts.Feature.Define(): "1",
		"OCVRS_DOCS_ONLY":     "1",
	}
	if opts.Contrib {
		defines["OCVRS_HAS_CONTRIB"] = "1"
	}
	return &Plan{
		Feature: string(opts.Feature),
		Contrib: opts.Contrib,
		Defines: defines,
		Stub:    true,
	}
}

// normalize makes every path absolute and clean, deduplicating while
// preserving order.
func normalize(paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", p, err)
		}
		abs = filepath.Clean(abs)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out, nil
}
