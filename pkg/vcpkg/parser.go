// pkg/vcpkg/parser.go
package vcpkg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

// ParseStatus parses the vcpkg status database, a dpkg-style control
// file of blank-line separated stanzas.
func ParseStatus(r io.Reader) ([]*StatusEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []*StatusEntry
	var current *StatusEntry

	for scanner.Scan() {
		line := scanner.Text()

		// Empty line indicates end of stanza
		if line == "" {
			if current != nil {
				entries = append(entries, current)
				current = nil
			}
			continue
		}

		// Continuation lines carry no fields we track
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		field := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if field == "Package" {
			if current != nil {
				entries = append(entries, current)
			}
			current = &StatusEntry{
				Package: value,
			}
			continue
		}

		if current == nil {
			continue
		}

		switch field {
		case "Feature":
			current.Feature = value
		case "Version":
			current.Version = stripPortVersion(value)
		case "Architecture":
			current.Architecture = value
		case "Status":
			current.Status = value
		}
	}

	if current != nil {
		entries = append(entries, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading vcpkg status: %v", discovery.ErrMalformedOutput, err)
	}

	return entries, nil
}

// stripPortVersion drops the "#N" port revision suffix from a vcpkg
// version string, e.g. "4.8.0#2" -> "4.8.0".
func stripPortVersion(version string) string {
	if i := strings.IndexByte(version, '#'); i >= 0 {
		return version[:i]
	}
	return version
}
