// pkg/resolve/resolver.go
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

var (
	// ErrNoLibraryFound indicates the locator produced no candidates
	ErrNoLibraryFound = errors.New("no OpenCV library found")

	// ErrVersionMismatch indicates no candidate matches the configured
	// version feature. The resolver validates, never substitutes:
	// binding signatures are version-specific and a silent substitution
	// would surface as link failures or ABI mismatches at runtime.
	ErrVersionMismatch = errors.New("OpenCV version mismatch")

	// ErrContribUnavailable indicates contrib modules were requested
	// but the selected installation does not provide them
	ErrContribUnavailable = errors.New("contrib modules unavailable")
)

// Selection is the validated outcome of resolution: the chosen
// candidate bound to the active version feature.
type Selection struct {
	Feature        core.VersionFeature
	ContribEnabled bool
	Candidate      *discovery.Candidate
}

// Resolve validates the discovered candidates against the configured
// options and selects exactly one. Candidates are considered in
// locator preference order; the first one whose version family matches
// wins.
func Resolve(candidates []*discovery.Candidate, opts *core.Options) (*Selection, error) {
	if opts == nil {
		opts = core.DefaultOptions()
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: feature %s requires an installed OpenCV %s.x",
			ErrNoLibraryFound, opts.Feature, opts.Feature.ExpectedPrefix())
	}

	ordered := candidates
	if opts.VersionHint != "" {
		ordered = preferHint(candidates, opts.VersionHint)
	}

	var selected *discovery.Candidate
	for _, c := range ordered {
		if MatchesFeature(c.Version, opts.Feature) {
			selected = c
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: feature %s expects %s.x, found %s",
			ErrVersionMismatch, opts.Feature, opts.Feature.ExpectedPrefix(), foundVersions(candidates))
	}

	if opts.Contrib && !selected.HasContrib {
		return nil, fmt.Errorf("%w: OpenCV %s at %s was built without contrib modules (e.g. %s)",
			ErrContribUnavailable, selected.Version, selected.Source, ContribModules[0])
	}

	return &Selection{
		Feature:        opts.Feature,
		ContribEnabled: opts.Contrib,
		Candidate:      applyOverrides(selected, opts),
	}, nil
}

// applyOverrides merges manifest-pinned discovery inputs into the
// selected candidate. Extra dirs go after the discovered ones so the
// mechanism's answer keeps precedence; pinned link libs replace the
// discovered set, since a partial link line is useless. The input
// candidate is left untouched.
func applyOverrides(c *discovery.Candidate, opts *core.Options) *discovery.Candidate {
	if len(opts.IncludeDirs) == 0 && len(opts.LibDirs) == 0 && len(opts.LinkLibs) == 0 {
		return c
	}

	merged := *c
	merged.IncludePaths = append(append([]string(nil), c.IncludePaths...), opts.IncludeDirs...)
	merged.LibPaths = append(append([]string(nil), c.LibPaths...), opts.LibDirs...)
	if len(opts.LinkLibs) > 0 {
		merged.LinkLibs = append([]string(nil), opts.LinkLibs...)
	}
	return &merged
}

// MatchesFeature reports whether a library version belongs to the
// feature's version family.
func MatchesFeature(version string, feature core.VersionFeature) bool {
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	switch feature {
	case core.FeatureOpenCV32:
		return semver.MajorMinor(v) == "v3.2"
	case core.FeatureOpenCV34:
		return semver.MajorMinor(v) == "v3.4"
	default:
		return semver.Major(v) == "v4"
	}
}

// preferHint moves candidates matching the version hint to the front,
// preserving relative order otherwise.
func preferHint(candidates []*discovery.Candidate, hint string) []*discovery.Candidate {
	ordered := make([]*discovery.Candidate, 0, len(candidates))
	var rest []*discovery.Candidate
	for _, c := range candidates {
		if c.Version == hint {
			ordered = append(ordered, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(ordered, rest...)
}

func foundVersions(candidates []*discovery.Candidate) string {
	versions := make([]string, len(candidates))
	for i, c := range candidates {
		versions[i] = fmt.Sprintf("%s (%s)", c.Version, c.Source)
	}
	return strings.Join(versions, ", ")
}
