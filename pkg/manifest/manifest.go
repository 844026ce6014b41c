// pkg/manifest/manifest.go
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vision-bindings/cvprobe/pkg/core"
)

// DefaultFile is the manifest name looked up in the working directory
const DefaultFile = "cvprobe.toml"

// Features mirrors the build-time feature flags of the binding crate.
// The three version flags are mutually exclusive; the zero value
// selects the default family.
type Features struct {
	OpenCV32       bool `toml:"opencv-32"`
	OpenCV34       bool `toml:"opencv-34"`
	OpenCV4        bool `toml:"opencv-4"`
	Contrib        bool `toml:"contrib"`
	BindgenMode    bool `toml:"buildtime-bindgen"`
	ForceDiscovery bool `toml:"force-3rd-party-libs-discovery"`
	DocsOnly       bool `toml:"docs-only"`
}

// Overrides lets a project pin discovery inputs that the mechanisms
// cannot find on their own.
type Overrides struct {
	VersionHint string   `toml:"version-hint"`
	IncludeDirs []string `toml:"include-dirs"`
	LibDirs     []string `toml:"lib-dirs"`
	LinkLibs    []string `toml:"link-libs"`
}

// Manifest represents a cvprobe.toml project manifest
type Manifest struct {
	Features  Features  `toml:"features"`
	Overrides Overrides `toml:"opencv"`
}

// Load reads and parses a manifest file. A missing file is not an
// error; it yields an empty manifest so defaults apply.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// Options validates the manifest and collapses it into pipeline
// options. Two version features set at once is a construction error.
func (m *Manifest) Options() (*core.Options, error) {
	feature, err := core.FeatureFromFlags(m.Features.OpenCV32, m.Features.OpenCV34, m.Features.OpenCV4)
	if err != nil {
		return nil, err
	}

	return &core.Options{
		Feature:      feature,
		Contrib:      m.Features.Contrib,
		BindgenMode:  m.Features.BindgenMode,
		ForceSysroot: m.Features.ForceDiscovery,
		DocsOnly:     m.Features.DocsOnly,
		VersionHint:  m.Overrides.VersionHint,
		IncludeDirs:  m.Overrides.IncludeDirs,
		LibDirs:      m.Overrides.LibDirs,
		LinkLibs:     m.Overrides.LinkLibs,
	}, nil
}
