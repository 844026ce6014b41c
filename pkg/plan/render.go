// pkg/plan/render.go
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvEigenDir overrides the Eigen header root recorded in the bindgen
// side channel, for systems where the generic header discovery cannot
// find it on the default search path.
const EnvEigenDir = "CVPROBE_EIGEN_DIR"

// DefaultBindgenFile is where bindgen header search paths are recorded
const DefaultBindgenFile = "bindgen_include_paths.txt"

// CgoCPPFlags renders the preprocessor flag line for a cgo build
func (p *Plan) CgoCPPFlags() string {
	var parts []string
	for _, inc := range p.Includes {
		parts = append(parts, "-I"+inc)
	}

	keys := make([]string, 0, len(p.Defines))
	for k := range p.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("-D%s=%s", k, p.Defines[k]))
	}
	return strings.Join(parts, " ")
}

// CgoLDFlags renders the linker flag line for a cgo build
func (p *Plan) CgoLDFlags() string {
	var parts []string
	for _, dir := range p.LibDirs {
		parts = append(parts, "-L"+dir)
	}
	for _, lib := range p.Links {
		parts = append(parts, "-l"+lib)
	}
	return strings.Join(parts, " ")
}

// EnvExports renders shell export lines for the plan
func (p *Plan) EnvExports() []string {
	return []string{
		fmt.Sprintf("export CGO_CPPFLAGS=%q", p.CgoCPPFlags()),
		fmt.Sprintf("export CGO_LDFLAGS=%q", p.CgoLDFlags()),
	}
}

// BindgenPaths returns the header search paths for the interop code
// generator: the plan's include roots plus the Eigen override root
// when one is set. The environment variable wins over the configured
// eigenDir fallback.
func (p *Plan) BindgenPaths(eigenDir string) []string {
	paths := append([]string(nil), p.Includes...)
	eigen := os.Getenv(EnvEigenDir)
	if eigen == "" {
		eigen = eigenDir
	}
	if eigen != "" {
		paths = append(paths, filepath.Clean(eigen))
	}
	return paths
}

// WriteBindgenPaths records the header search paths into the side
// channel consumed by the binding generator, one path per line.
// Written atomically like the plan itself.
func (p *Plan) WriteBindgenPaths(path, eigenDir string) error {
	if path == "" {
		path = DefaultBindgenFile
	}
	data := strings.Join(p.BindgenPaths(eigenDir), "\n") + "\n"

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging bindgen paths: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing bindgen paths: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing bindgen paths: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publishing bindgen paths: %w", err)
	}
	return nil
}
