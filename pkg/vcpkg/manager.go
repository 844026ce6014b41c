// pkg/vcpkg/manager.go
package vcpkg

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

// NewMechanism creates a vcpkg discovery mechanism
func NewMechanism(cfg *Config) *Mechanism {
	if cfg == nil {
		cfg = &Config{}
	}

	if len(cfg.Ports) == 0 {
		cfg.Ports = DefaultPorts
	}
	if cfg.Triplet == "" {
		if triplet, err := DefaultTriplet(runtime.GOARCH); err == nil {
			cfg.Triplet = triplet
		}
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[VCPKG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Mechanism{
		config: cfg,
		logger: logger,
	}
}

// Name returns the mechanism name
func (m *Mechanism) Name() string {
	return discovery.MechanismVcpkg
}

// Probe reads the vcpkg status database and builds a candidate for the
// first installed OpenCV port matching the triplet. A missing root or
// status file is an expected miss.
func (m *Mechanism) Probe(ctx context.Context) ([]*discovery.Candidate, error) {
	root := m.findRoot()
	if root == "" {
		m.logger.Printf("no vcpkg root found")
		return nil, nil
	}
	if m.config.Triplet == "" {
		m.logger.Printf("no triplet for this architecture")
		return nil, nil
	}

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(StatusRelPath)))
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Printf("no status database under %s", root)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	entries, err := ParseStatus(f)
	if err != nil {
		return nil, err
	}

	for _, port := range m.config.Ports {
		candidate := m.candidateFor(root, port, entries)
		if candidate != nil {
			return []*discovery.Candidate{candidate}, nil
		}
	}
	return nil, nil
}

// candidateFor assembles a candidate from the status entries of one port
func (m *Mechanism) candidateFor(root, port string, entries []*StatusEntry) *discovery.Candidate {
	var base *StatusEntry
	hasContrib := false

	for _, e := range entries {
		if e.Package != port || e.Architecture != m.config.Triplet || !e.Installed() {
			continue
		}
		if e.Feature == "" {
			base = e
		} else if e.Feature == ContribFeature {
			hasContrib = true
		}
	}
	if base == nil {
		return nil
	}

	m.logger.Printf("port %s %s installed for %s (contrib: %v)", port, base.Version, m.config.Triplet, hasContrib)

	tripletRoot := filepath.Join(root, InstalledDir, m.config.Triplet)
	includeDir := filepath.Join(tripletRoot, "include")
	libDir := filepath.Join(tripletRoot, "lib")

	return &discovery.Candidate{
		Version:      base.Version,
		IncludePaths: []string{includeDir},
		LibPaths:     []string{libDir},
		LinkLibs:     m.linkLibs(libDir, base.Version),
		HasContrib:   hasContrib || discovery.HasContribHeaders([]string{includeDir}),
		Source:       discovery.MechanismVcpkg,
	}
}

// linkLibs lists the opencv import libraries in the triplet lib dir,
// preferring the umbrella opencv_world library when present. Falls
// back to the conventional world name if the tree cannot be listed.
func (m *Mechanism) linkLibs(libDir, version string) []string {
	names, err := os.ReadDir(libDir)
	if err != nil {
		return []string{"opencv_world" + versionSuffix(version)}
	}

	var libs []string
	for _, entry := range names {
		name := entry.Name()
		if !strings.HasPrefix(name, "opencv_") || !strings.HasSuffix(name, ".lib") {
			continue
		}
		name = strings.TrimSuffix(name, ".lib")
		if strings.HasPrefix(name, "opencv_world") {
			return []string{name}
		}
		libs = append(libs, name)
	}
	if len(libs) == 0 {
		return []string{"opencv_world" + versionSuffix(version)}
	}
	return libs
}

// versionSuffix renders the MSVC library version suffix, e.g.
// "4.8.0" -> "480".
func versionSuffix(version string) string {
	return strings.ReplaceAll(version, ".", "")
}

// findRoot resolves the vcpkg root from the environment or the
// conventional checkout locations.
func (m *Mechanism) findRoot() string {
	if m.config.Root != "" {
		return m.config.Root
	}
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	for _, root := range DefaultRoots {
		if _, err := os.Stat(root); err == nil {
			return root
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		root := filepath.Join(home, "vcpkg")
		if _, err := os.Stat(root); err == nil {
			return root
		}
	}
	return ""
}
