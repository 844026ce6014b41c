// pkg/sysroot/parser.go
package sysroot

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

// Version macro spellings. OpenCV 3.x and 4.x use CV_VERSION_MAJOR;
// the 2.x-era headers used CV_MAJOR_VERSION. Both are tried since the
// header format is not stable across major versions.
var defineRe = regexp.MustCompile(`^#define\s+(CV_VERSION_MAJOR|CV_VERSION_MINOR|CV_VERSION_REVISION|CV_MAJOR_VERSION|CV_MINOR_VERSION|CV_SUBMINOR_VERSION)\s+(\d+)`)

// ParseVersionHeader extracts the library version from the contents of
// opencv2/core/version.hpp.
func ParseVersionHeader(r io.Reader) (string, error) {
	macros := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := defineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		macros[m[1]] = value
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: reading version header: %v", discovery.ErrMalformedOutput, err)
	}

	if major, ok := macros["CV_VERSION_MAJOR"]; ok {
		return fmt.Sprintf("%d.%d.%d", major, macros["CV_VERSION_MINOR"], macros["CV_VERSION_REVISION"]), nil
	}
	if major, ok := macros["CV_MAJOR_VERSION"]; ok {
		return fmt.Sprintf("%d.%d.%d", major, macros["CV_MINOR_VERSION"], macros["CV_SUBMINOR_VERSION"]), nil
	}

	return "", fmt.Errorf("%w: no version macros in header", discovery.ErrMalformedOutput)
}
