// pkg/sysroot/types.go
package sysroot

import (
	"log"

	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// Config configures the sysroot mechanism
type Config struct {
	// Prefixes are scanned ahead of the conventional directories
	Prefixes []string

	// Family selects the conventional directory list; detected at
	// construction when empty
	Family platform.Family

	Debug  bool        // enable debug logging
	Logger *log.Logger // custom logger (optional)
}

// Mechanism locates OpenCV by scanning conventional install prefixes
// for the version header and compiled libraries. It is the fallback of
// last resort and the only mechanism active under forced 3rd-party
// discovery.
type Mechanism struct {
	config   *Config
	prefixes []string
	logger   *log.Logger
}
