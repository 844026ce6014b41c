// pkg/pkgconfig/types.go
package pkgconfig

import (
	"log"
	"time"
)

// Config configures the pkg-config mechanism
type Config struct {
	Binary  string        // pkg-config executable (default: "pkg-config")
	Modules []string      // module names to probe, in order
	Timeout time.Duration // per-invocation timeout
	Debug   bool          // enable debug logging
	Logger  *log.Logger   // custom logger (optional)
}

// Mechanism locates OpenCV through pkg-config metadata. The returned
// flags are authoritative: pkg-config only reports installations whose
// .pc files were written by the library's own build.
type Mechanism struct {
	config *Config
	logger *log.Logger
}
