// pkg/vcpkg/platform.go
package vcpkg

import (
	"fmt"

	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// Supported reports whether vcpkg probing applies. vcpkg serves the
// MSVC toolchain; GNU environments on Windows go through pkg-config.
func (m *Mechanism) Supported(plat *platform.Platform) bool {
	if plat.Family != platform.FamilyWindows || plat.Compiler != platform.CompilerMSVC {
		return false
	}
	return m.findRoot() != ""
}

// DefaultTriplet derives the vcpkg triplet from the architecture
func DefaultTriplet(arch string) (string, error) {
	switch arch {
	case "amd64":
		return "x64-windows", nil
	case "arm64":
		return "arm64-windows", nil
	case "386":
		return "x86-windows", nil
	default:
		return "", fmt.Errorf("no vcpkg triplet for architecture %s", arch)
	}
}
