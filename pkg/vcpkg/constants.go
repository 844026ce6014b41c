// pkg/vcpkg/constants.go
package vcpkg

const (
	// EnvRoot is the environment variable naming the vcpkg root
	EnvRoot = "VCPKG_ROOT"

	// StatusRelPath is the installed-package database inside a root
	StatusRelPath = "installed/vcpkg/status"

	// InstalledDir is the per-triplet install tree inside a root
	InstalledDir = "installed"

	// installedMarker is the status value of a fully installed port
	installedMarker = "install ok installed"
)

// DefaultPorts are the vcpkg port names probed, in order
var DefaultPorts = []string{"opencv4", "opencv"}

// DefaultRoots are conventional vcpkg checkout locations scanned when
// VCPKG_ROOT is not set
var DefaultRoots = []string{
	`C:\vcpkg`,
	`C:\src\vcpkg`,
	`C:\dev\vcpkg`,
	`C:\tools\vcpkg`,
}

// ContribFeature is the vcpkg feature name carrying the contrib modules
const ContribFeature = "contrib"
