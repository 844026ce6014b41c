// pkg/core/feature.go
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates an inconsistent build configuration, such
// as two version features selected at once
var ErrInvalidConfig = errors.New("invalid configuration")

// VersionFeature selects the expected OpenCV version family. Exactly
// one feature is active per build; the type makes the invariant
// structural instead of runtime-checked.
type VersionFeature string

const (
	// FeatureOpenCV32 expects OpenCV 3.2.x
	FeatureOpenCV32 VersionFeature = "opencv-32"
	// FeatureOpenCV34 expects OpenCV 3.4.x
	FeatureOpenCV34 VersionFeature = "opencv-34"
	// FeatureOpenCV4 expects OpenCV 4.x (the default)
	FeatureOpenCV4 VersionFeature = "opencv-4"
)

// ParseFeature parses a feature flag name
func ParseFeature(s string) (VersionFeature, error) {
	switch s {
	case string(FeatureOpenCV32):
		return FeatureOpenCV32, nil
	case string(FeatureOpenCV34):
		return FeatureOpenCV34, nil
	case string(FeatureOpenCV4), "":
		return FeatureOpenCV4, nil
	default:
		return "", fmt.Errorf("%w: unknown version feature %q", ErrInvalidConfig, s)
	}
}

// FeatureFromFlags collapses the three mutually exclusive flags into a
// single feature. Setting more than one is a configuration error; none
// selects the default.
func FeatureFromFlags(v32, v34, v4 bool) (VersionFeature, error) {
	var selected VersionFeature
	count := 0
	if v32 {
		selected = FeatureOpenCV32
		count++
	}
	if v34 {
		selected = FeatureOpenCV34
		count++
	}
	if v4 {
		selected = FeatureOpenCV4
		count++
	}
	switch count {
	case 0:
		return FeatureOpenCV4, nil
	case 1:
		return selected, nil
	default:
		return "", fmt.Errorf("%w: version features are mutually exclusive", ErrInvalidConfig)
	}
}

// ExpectedPrefix returns the version prefix this feature requires,
// e.g. "3.4" for opencv-34 and "4" for opencv-4.
func (f VersionFeature) ExpectedPrefix() string {
	switch f {
	case FeatureOpenCV32:
		return "3.2"
	case FeatureOpenCV34:
		return "3.4"
	default:
		return "4"
	}
}

// Define returns the preprocessor define name emitted into build plans
// for this feature.
func (f VersionFeature) Define() string {
	switch f {
	case FeatureOpenCV32:
		return "OCVRS_OPENCV_32"
	case FeatureOpenCV34:
		return "OCVRS_OPENCV_34"
	default:
		return "OCVRS_OPENCV_4"
	}
}

// Options holds the per-build configuration knobs recognized by the
// discovery and resolution pipeline.
type Options struct {
	Feature VersionFeature // expected version family

	// Contrib requires contrib/extra modules to be present
	Contrib bool

	// BindgenMode records header search paths for the interop code
	// generator (buildtime-bindgen)
	BindgenMode bool

	// ForceSysroot skips pkg-config and vcpkg probing and scans the
	// filesystem directly (force-3rd-party-libs-discovery)
	ForceSysroot bool

	// DocsOnly skips native discovery entirely and emits a stub plan
	DocsOnly bool

	// VersionHint narrows discovery to a specific version, if set
	VersionHint string

	// Pinned discovery inputs from the project manifest. Extra dirs
	// are appended to the selected candidate's; pinned link libs
	// replace the discovered set entirely.
	IncludeDirs []string
	LibDirs     []string
	LinkLibs    []string
}

// DefaultOptions returns options with the default feature selected
func DefaultOptions() *Options {
	return &Options{
		Feature: FeatureOpenCV4,
	}
}
