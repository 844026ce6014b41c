// pkg/pkgconfig/platform.go
package pkgconfig

import (
	"os/exec"

	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// Supported reports whether pkg-config probing applies. The MSVC
// toolchain has no pkg-config convention; vcpkg covers it instead.
func (m *Mechanism) Supported(plat *platform.Platform) bool {
	if plat.Compiler == platform.CompilerMSVC {
		return false
	}
	_, err := exec.LookPath(m.config.Binary)
	return err == nil
}
