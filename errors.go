// errors.go
package cvprobe

import (
	"fmt"

	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/discovery"
	"github.com/vision-bindings/cvprobe/pkg/platform"
	"github.com/vision-bindings/cvprobe/pkg/resolve"
)

// Sentinel errors, re-exported from the packages that produce them so
// errors.Is works across the facade boundary.
var (
	// ErrUnsupportedPlatform indicates the host platform is not recognized
	ErrUnsupportedPlatform = platform.ErrUnsupported

	// ErrNoLibraryFound indicates no OpenCV installation was discovered
	ErrNoLibraryFound = resolve.ErrNoLibraryFound

	// ErrVersionMismatch indicates the discovered OpenCV does not match
	// the configured version feature
	ErrVersionMismatch = resolve.ErrVersionMismatch

	// ErrContribUnavailable indicates contrib modules were requested but
	// the discovered installation does not provide them
	ErrContribUnavailable = resolve.ErrContribUnavailable

	// ErrMalformedOutput indicates a discovery mechanism produced output
	// that could not be parsed
	ErrMalformedOutput = discovery.ErrMalformedOutput

	// ErrInvalidConfig indicates the build configuration is inconsistent
	ErrInvalidConfig = core.ErrInvalidConfig
)

// Error wraps an error with additional context
type Error struct {
	Op  string // Operation that failed
	Lib string // Library or mechanism name if applicable
	Err error  // Underlying error
}

func (e *Error) Error() string {
	if e.Lib != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Lib, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
