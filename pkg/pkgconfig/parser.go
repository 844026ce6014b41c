// pkg/pkgconfig/parser.go
package pkgconfig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

var versionRe = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// ParseVersion validates a --modversion line
func ParseVersion(output string) (string, error) {
	version := strings.TrimSpace(output)
	if !versionRe.MatchString(version) {
		return "", fmt.Errorf("%w: pkg-config version %q", discovery.ErrMalformedOutput, version)
	}
	return version, nil
}

// ParseIncludeFlags extracts -I directories from --cflags-only-I output
func ParseIncludeFlags(output string) []string {
	var dirs []string
	for _, tok := range strings.Fields(output) {
		if strings.HasPrefix(tok, "-I") && len(tok) > 2 {
			dirs = append(dirs, tok[2:])
		}
	}
	return dirs
}

// ParseLibFlags extracts -L directories and -l link names from --libs
// output. Bare paths (static archives spelled out in full) are kept as
// link names unchanged.
func ParseLibFlags(output string) (libDirs, linkLibs []string) {
	for _, tok := range strings.Fields(output) {
		switch {
		case strings.HasPrefix(tok, "-L") && len(tok) > 2:
			libDirs = append(libDirs, tok[2:])
		case strings.HasPrefix(tok, "-l") && len(tok) > 2:
			linkLibs = append(linkLibs, tok[2:])
		case !strings.HasPrefix(tok, "-"):
			linkLibs = append(linkLibs, tok)
		}
	}
	return libDirs, linkLibs
}
