// pkg/pkgconfig/manager.go
package pkgconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

// NewMechanism creates a pkg-config discovery mechanism
func NewMechanism(cfg *Config) *Mechanism {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = DefaultModules
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeoutSeconds * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[PKG-CONFIG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Mechanism{
		config: cfg,
		logger: logger,
	}
}

// Name returns the mechanism name
func (m *Mechanism) Name() string {
	return discovery.MechanismPkgConfig
}

// Probe queries pkg-config for each known OpenCV module name and
// returns a candidate for the first one installed. A module that
// pkg-config does not know is an expected miss, not an error.
func (m *Mechanism) Probe(ctx context.Context) ([]*discovery.Candidate, error) {
	for _, module := range m.config.Modules {
		candidate, err := m.probeModule(ctx, module)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return []*discovery.Candidate{candidate}, nil
		}
	}
	return nil, nil
}

func (m *Mechanism) probeModule(ctx context.Context, module string) (*discovery.Candidate, error) {
	out, found, err := m.run(ctx, "--modversion", module)
	if err != nil {
		return nil, err
	}
	if !found {
		m.logger.Printf("module %s not registered", module)
		return nil, nil
	}

	version, err := ParseVersion(out)
	if err != nil {
		return nil, err
	}
	m.logger.Printf("module %s reports version %s", module, version)

	includes, err := m.queryIncludes(ctx, module)
	if err != nil {
		return nil, err
	}

	out, found, err = m.run(ctx, "--libs", module)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: module %s vanished between queries", discovery.ErrMalformedOutput, module)
	}
	libDirs, linkLibs := ParseLibFlags(out)
	if len(linkLibs) == 0 {
		return nil, fmt.Errorf("%w: module %s reports no link libraries", discovery.ErrMalformedOutput, module)
	}

	return &discovery.Candidate{
		Version:      version,
		IncludePaths: includes,
		LibPaths:     libDirs,
		LinkLibs:     linkLibs,
		HasContrib:   discovery.HasContribHeaders(includes),
		Source:       discovery.MechanismPkgConfig,
	}, nil
}

// queryIncludes prefers explicit -I flags; an empty answer means the
// headers live on the default search path, so fall back to the
// module's includedir variable.
func (m *Mechanism) queryIncludes(ctx context.Context, module string) ([]string, error) {
	out, found, err := m.run(ctx, "--cflags-only-I", module)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: module %s vanished between queries", discovery.ErrMalformedOutput, module)
	}
	if dirs := ParseIncludeFlags(out); len(dirs) > 0 {
		return dirs, nil
	}

	out, found, err = m.run(ctx, "--variable=includedir", module)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: module %s vanished between queries", discovery.ErrMalformedOutput, module)
	}
	if dir := strings.TrimSpace(out); dir != "" {
		return []string{dir}, nil
	}
	return nil, nil
}

// run invokes pkg-config. The found return is false when pkg-config
// exits non-zero, which it does for unknown modules.
func (m *Mechanism) run(ctx context.Context, args ...string) (output string, found bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.config.Binary, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("running %s: %w", m.config.Binary, err)
	}

	return string(out), true, nil
}
