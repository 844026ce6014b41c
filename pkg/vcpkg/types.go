// pkg/vcpkg/types.go
package vcpkg

import (
	"log"
)

// Config configures the vcpkg mechanism
type Config struct {
	Root    string      // vcpkg root (default: $VCPKG_ROOT, then conventional paths)
	Triplet string      // target triplet (default: derived from architecture)
	Ports   []string    // port names to probe, in order
	Debug   bool        // enable debug logging
	Logger  *log.Logger // custom logger (optional)
}

// Mechanism locates OpenCV in a vcpkg installed tree. vcpkg is the
// package-manager convention of the MSVC toolchain.
type Mechanism struct {
	config *Config
	logger *log.Logger
}

// StatusEntry is one stanza of the vcpkg status database. Feature
// installs appear as their own stanzas with the Feature field set.
type StatusEntry struct {
	Package      string
	Feature      string
	Version      string
	Architecture string // vcpkg triplet, e.g. x64-windows
	Status       string
}

// Installed reports whether the stanza describes a completed install
func (e *StatusEntry) Installed() bool {
	return e.Status == installedMarker
}
