// pkg/sysroot/manager.go
package sysroot

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// NewMechanism creates a sysroot discovery mechanism
func NewMechanism(cfg *Config) *Mechanism {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Family == "" {
		switch runtime.GOOS {
		case "darwin":
			cfg.Family = platform.FamilyMacOS
		case "windows":
			cfg.Family = platform.FamilyWindows
		default:
			cfg.Family = platform.FamilyLinux
		}
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[SYSROOT] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Mechanism{
		config:   cfg,
		prefixes: assemblePrefixes(cfg),
		logger:   logger,
	}
}

// assemblePrefixes builds the scan list: explicit prefixes first, then
// the CVPROBE_PREFIX override, then the conventional directories for
// the family. Order is the preference order.
func assemblePrefixes(cfg *Config) []string {
	var prefixes []string
	prefixes = append(prefixes, cfg.Prefixes...)
	if env := os.Getenv(EnvPrefix); env != "" {
		prefixes = append(prefixes, env)
	}
	switch cfg.Family {
	case platform.FamilyMacOS:
		prefixes = append(prefixes, macosPrefixes...)
	case platform.FamilyWindows:
		prefixes = append(prefixes, windowsPrefixes...)
	default:
		prefixes = append(prefixes, linuxPrefixes...)
	}

	// Drop duplicates, keeping first occurrence
	seen := make(map[string]bool, len(prefixes))
	out := prefixes[:0]
	for _, p := range prefixes {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Name returns the mechanism name
func (m *Mechanism) Name() string {
	return discovery.MechanismSysroot
}

// Supported reports whether sysroot scanning applies; it always does
func (m *Mechanism) Supported(plat *platform.Platform) bool {
	return true
}

// Probe scans every prefix for an OpenCV install. Prefixes are probed
// concurrently as a latency optimization; results merge back in prefix
// order so the preference order stays deterministic.
func (m *Mechanism) Probe(ctx context.Context) ([]*discovery.Candidate, error) {
	results := make([]*discovery.Candidate, len(m.prefixes))

	g, ctx := errgroup.WithContext(ctx)
	for i, prefix := range m.prefixes {
		i, prefix := i, prefix
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			candidate, err := m.scanPrefix(prefix)
			if err != nil {
				return err
			}
			results[i] = candidate
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []*discovery.Candidate
	for i, c := range results {
		if c == nil {
			continue
		}
		m.logger.Printf("prefix %s: OpenCV %s", m.prefixes[i], c.Version)
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// scanPrefix checks one install prefix. A prefix without the version
// header is an expected miss; a header that exists but cannot be
// parsed is a hard error.
func (m *Mechanism) scanPrefix(prefix string) (*discovery.Candidate, error) {
	var includeDir string
	var version string

	for _, sub := range includeSubdirs {
		dir := filepath.Join(prefix, filepath.FromSlash(sub))
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(VersionHeader)))
		if err != nil {
			continue
		}
		version, err = ParseVersionHeader(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		includeDir = dir
		break
	}
	if includeDir == "" {
		return nil, nil
	}

	libDirs := m.findLibDirs(prefix)
	linkLibs := collectLinkLibs(libDirs)
	if len(linkLibs) == 0 {
		// Headers without libraries: likely a -dev split install
		// missing its runtime half. Not usable as a candidate.
		m.logger.Printf("prefix %s: headers but no libraries", prefix)
		return nil, nil
	}

	return &discovery.Candidate{
		Version:      version,
		IncludePaths: []string{includeDir},
		LibPaths:     libDirs,
		LinkLibs:     linkLibs,
		HasContrib:   discovery.HasContribHeaders([]string{includeDir}),
		Source:       discovery.MechanismSysroot,
	}, nil
}

// findLibDirs lists the library directories under a prefix that hold
// opencv artifacts.
func (m *Mechanism) findLibDirs(prefix string) []string {
	candidates := []string{
		filepath.Join(prefix, "lib"),
		filepath.Join(prefix, "lib64"),
		filepath.Join(prefix, "lib", "x86_64-linux-gnu"),
		filepath.Join(prefix, "lib", "aarch64-linux-gnu"),
	}
	if m.config.Family == platform.FamilyWindows {
		// Official release layout: build/x64/vc<N>/lib
		matches, _ := filepath.Glob(filepath.Join(prefix, "x64", "*", "lib"))
		candidates = append(matches, candidates...)
	}

	var dirs []string
	for _, dir := range candidates {
		if hasOpenCVLibs(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// hasOpenCVLibs reports whether a directory contains any opencv
// library artifact.
func hasOpenCVLibs(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if linkName(e.Name()) != "" {
			return true
		}
	}
	return false
}

// collectLinkLibs derives link names from the artifacts in the lib
// dirs, preferring the umbrella opencv_world library when present.
func collectLinkLibs(libDirs []string) []string {
	seen := make(map[string]bool)
	var libs []string
	for _, dir := range libDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := linkName(e.Name())
			if name == "" || seen[name] {
				continue
			}
			if strings.HasPrefix(name, "opencv_world") {
				return []string{name}
			}
			seen[name] = true
			libs = append(libs, name)
		}
	}
	return libs
}

// linkName turns a library file name into a link name, or "" when the
// file is not an opencv library. Handles libopencv_core.so.4.2.0,
// libopencv_core.dylib, libopencv_core.a and opencv_world470.lib.
func linkName(file string) string {
	name := file
	name = strings.TrimPrefix(name, "lib")
	if !strings.HasPrefix(name, "opencv_") {
		return ""
	}
	switch {
	case strings.HasSuffix(name, ".lib"):
		return strings.TrimSuffix(name, ".lib")
	case strings.Contains(name, ".so"):
		return name[:strings.Index(name, ".so")]
	case strings.HasSuffix(name, ".dylib"):
		base := strings.TrimSuffix(name, ".dylib")
		// Versioned dylibs: opencv_core.4.2.0.dylib
		if i := strings.IndexByte(base, '.'); i >= 0 {
			base = base[:i]
		}
		return base
	case strings.HasSuffix(name, ".a"):
		return strings.TrimSuffix(name, ".a")
	}
	return ""
}
