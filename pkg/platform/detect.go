// pkg/platform/detect.go
package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrUnsupported indicates the host platform is not one of the
// recognized OS families
var ErrUnsupported = errors.New("unsupported platform")

// Family identifies the operating system family
type Family string

const (
	FamilyLinux   Family = "linux"
	FamilyMacOS   Family = "macos"
	FamilyWindows Family = "windows"
)

// Compiler identifies the toolchain environment
type Compiler string

const (
	CompilerMSVC  Compiler = "msvc"
	CompilerGNU   Compiler = "gnu"
	CompilerOther Compiler = "other"
)

// Platform represents the detected system platform
type Platform struct {
	Family   Family   // linux, macos, windows
	Compiler Compiler // msvc, gnu, other
	Arch     string   // amd64, arm64, 386, arm
}

// Detect detects the current platform and toolchain environment.
// It fails only on an unrecognized operating system; there is no
// sensible default to fall back to.
func Detect() (*Platform, error) {
	p := &Platform{
		Arch: runtime.GOARCH,
	}

	switch runtime.GOOS {
	case "linux":
		p.Family = FamilyLinux
	case "darwin":
		p.Family = FamilyMacOS
	case "windows":
		p.Family = FamilyWindows
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
	}

	p.Compiler = detectCompiler(p.Family)

	return p, nil
}

// detectCompiler determines the toolchain environment for a family.
// On Windows the MSVC toolchain is assumed unless an MSYS/MinGW
// environment is active or only a GNU compiler is on PATH.
func detectCompiler(family Family) Compiler {
	if family == FamilyWindows {
		if os.Getenv("MSYSTEM") != "" {
			return CompilerGNU
		}
		if commandExists("cl") {
			return CompilerMSVC
		}
		if commandExists("gcc") {
			return CompilerGNU
		}
		return CompilerMSVC
	}

	if commandExists("cc") || commandExists("gcc") || commandExists("clang") {
		return CompilerGNU
	}
	return CompilerOther
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (%s toolchain)", p.Family, p.Arch, p.Compiler)
}
