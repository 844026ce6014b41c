// pkg/discovery/types.go
package discovery

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// Mechanism names, in probing priority order
const (
	MechanismPkgConfig = "pkg-config"
	MechanismVcpkg     = "vcpkg"
	MechanismSysroot   = "sysroot"
)

// ErrMalformedOutput indicates a probing mechanism returned output
// that could not be parsed. This is a hard error, distinct from a
// mechanism simply finding nothing.
var ErrMalformedOutput = errors.New("malformed discovery output")

// Candidate is a discovered, plausible OpenCV installation, not yet
// validated against the configured version feature.
type Candidate struct {
	Version      string   // e.g. "4.2.0"
	IncludePaths []string // header search directories, in order
	LibPaths     []string // library search directories, in order
	LinkLibs     []string // link names without lib prefix or extension
	HasContrib   bool     // contrib/extra module headers present
	Source       string   // mechanism that produced this candidate
}

// Mechanism is one way of locating an installed OpenCV. Mechanisms are
// tried in a fixed priority order; the first one that yields candidates
// wins. Returning no candidates is an expected, non-exceptional
// outcome; an error means the mechanism itself misbehaved.
type Mechanism interface {
	// Name returns the mechanism name
	Name() string

	// Supported reports whether this mechanism applies to the platform
	Supported(plat *platform.Platform) bool

	// Probe searches for OpenCV installations
	Probe(ctx context.Context) ([]*Candidate, error)
}

// Config configures discovery behavior shared by all mechanisms
type Config struct {
	// Timeout bounds each external tool invocation
	Timeout time.Duration

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger
}

// DefaultConfig returns a discovery configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// contribProbeHeaders are headers shipped only by contrib builds.
// Finding any of them under an include root marks the candidate as
// contrib-capable.
var contribProbeHeaders = []string{
	filepath.Join("opencv2", "xfeatures2d.hpp"),
	filepath.Join("opencv2", "aruco.hpp"),
	filepath.Join("opencv2", "bgsegm.hpp"),
}

// HasContribHeaders reports whether any include root carries a
// contrib-only header.
func HasContribHeaders(includeDirs []string) bool {
	for _, dir := range includeDirs {
		for _, hdr := range contribProbeHeaders {
			if _, err := os.Stat(filepath.Join(dir, hdr)); err == nil {
				return true
			}
		}
	}
	return false
}
