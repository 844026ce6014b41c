package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

func candidate(version, source string, contrib bool) *discovery.Candidate {
	return &discovery.Candidate{
		Version:      version,
		IncludePaths: []string{"/usr/include/opencv4"},
		LibPaths:     []string{"/usr/lib"},
		LinkLibs:     []string{"opencv_core"},
		HasContrib:   contrib,
		Source:       source,
	}
}

func TestResolveEmptyCandidates(t *testing.T) {
	_, err := Resolve(nil, &core.Options{Feature: core.FeatureOpenCV4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoLibraryFound)
}

func TestResolveMatchingFamily(t *testing.T) {
	sel, err := Resolve(
		[]*discovery.Candidate{candidate("4.2.0", discovery.MechanismPkgConfig, true)},
		&core.Options{Feature: core.FeatureOpenCV4, Contrib: true},
	)
	require.NoError(t, err)
	assert.Equal(t, core.FeatureOpenCV4, sel.Feature)
	assert.True(t, sel.ContribEnabled)
	assert.Equal(t, "4.2.0", sel.Candidate.Version)
}

func TestResolveVersionMismatch(t *testing.T) {
	// Filesystem fallback found 3.2.0 but the build expects 3.4.x
	_, err := Resolve(
		[]*discovery.Candidate{candidate("3.2.0", discovery.MechanismSysroot, false)},
		&core.Options{Feature: core.FeatureOpenCV34},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionMismatch)
	assert.Contains(t, err.Error(), "3.2.0", "diagnostic names what was found")
	assert.Contains(t, err.Error(), "3.4", "diagnostic names what was expected")
}

func TestResolveNeverSubstitutes(t *testing.T) {
	// A 4.x install must not satisfy a 3.4 build even when it is the
	// only candidate
	_, err := Resolve(
		[]*discovery.Candidate{candidate("4.8.0", discovery.MechanismPkgConfig, true)},
		&core.Options{Feature: core.FeatureOpenCV34},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestResolveContrib(t *testing.T) {
	tests := []struct {
		name       string
		hasContrib bool
		wantErr    bool
	}{
		{name: "contrib present", hasContrib: true},
		{name: "contrib absent", hasContrib: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Resolve(
				[]*discovery.Candidate{candidate("4.2.0", discovery.MechanismPkgConfig, tt.hasContrib)},
				&core.Options{Feature: core.FeatureOpenCV4, Contrib: true},
			)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrContribUnavailable)
				return
			}
			require.NoError(t, err)
			assert.True(t, sel.ContribEnabled)
		})
	}
}

func TestResolvePicksFirstMatching(t *testing.T) {
	sel, err := Resolve(
		[]*discovery.Candidate{
			candidate("3.4.16", discovery.MechanismPkgConfig, false),
			candidate("4.2.0", discovery.MechanismSysroot, false),
			candidate("4.8.0", discovery.MechanismSysroot, false),
		},
		&core.Options{Feature: core.FeatureOpenCV4},
	)
	require.NoError(t, err)
	assert.Equal(t, "4.2.0", sel.Candidate.Version)
}

func TestResolveVersionHint(t *testing.T) {
	sel, err := Resolve(
		[]*discovery.Candidate{
			candidate("4.2.0", discovery.MechanismSysroot, false),
			candidate("4.8.0", discovery.MechanismSysroot, false),
		},
		&core.Options{Feature: core.FeatureOpenCV4, VersionHint: "4.8.0"},
	)
	require.NoError(t, err)
	assert.Equal(t, "4.8.0", sel.Candidate.Version)
}

func TestResolveAppliesManifestOverrides(t *testing.T) {
	input := candidate("4.2.0", discovery.MechanismPkgConfig, false)
	sel, err := Resolve(
		[]*discovery.Candidate{input},
		&core.Options{
			Feature:     core.FeatureOpenCV4,
			IncludeDirs: []string{"/opt/opencv/include"},
			LibDirs:     []string{"/opt/opencv/lib"},
			LinkLibs:    []string{"opencv_world480"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"/usr/include/opencv4", "/opt/opencv/include"}, sel.Candidate.IncludePaths,
		"pinned dirs go after the discovered ones")
	assert.Equal(t, []string{"/usr/lib", "/opt/opencv/lib"}, sel.Candidate.LibPaths)
	assert.Equal(t, []string{"opencv_world480"}, sel.Candidate.LinkLibs,
		"pinned link libs replace the discovered set")

	// the discovered candidate is not mutated
	assert.Equal(t, []string{"opencv_core"}, input.LinkLibs)
	assert.Equal(t, []string{"/usr/include/opencv4"}, input.IncludePaths)
}

func TestMatchesFeature(t *testing.T) {
	tests := []struct {
		version string
		feature core.VersionFeature
		want    bool
	}{
		{version: "3.2.0", feature: core.FeatureOpenCV32, want: true},
		{version: "3.2.17", feature: core.FeatureOpenCV32, want: true},
		{version: "3.4.16", feature: core.FeatureOpenCV32, want: false},
		{version: "3.4.16", feature: core.FeatureOpenCV34, want: true},
		{version: "4.2.0", feature: core.FeatureOpenCV4, want: true},
		{version: "4.10.0", feature: core.FeatureOpenCV4, want: true},
		{version: "3.4.16", feature: core.FeatureOpenCV4, want: false},
		{version: "garbage", feature: core.FeatureOpenCV4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.version+"/"+string(tt.feature), func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFeature(tt.version, tt.feature))
		})
	}
}

func TestLinkNames(t *testing.T) {
	base := LinkNames(core.FeatureOpenCV4, false)
	assert.Contains(t, base, "opencv_core")
	assert.NotContains(t, base, "opencv_xfeatures2d")

	withContrib := LinkNames(core.FeatureOpenCV4, true)
	assert.Contains(t, withContrib, "opencv_xfeatures2d")
	assert.Greater(t, len(withContrib), len(base))
}
