// cvprobe.go
package cvprobe

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/vision-bindings/cvprobe/pkg/artifact"
	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/discovery"
	"github.com/vision-bindings/cvprobe/pkg/pkgconfig"
	"github.com/vision-bindings/cvprobe/pkg/plan"
	"github.com/vision-bindings/cvprobe/pkg/platform"
	"github.com/vision-bindings/cvprobe/pkg/resolve"
	"github.com/vision-bindings/cvprobe/pkg/sysroot"
	"github.com/vision-bindings/cvprobe/pkg/vcpkg"
)

// Re-export core types for convenience
type (
	Platform       = platform.Platform
	Candidate      = discovery.Candidate
	Options        = core.Options
	VersionFeature = core.VersionFeature
	Selection      = resolve.Selection
	Plan           = plan.Plan
	Config         = core.Config
)

// Re-export feature constants
const (
	FeatureOpenCV32 = core.FeatureOpenCV32
	FeatureOpenCV34 = core.FeatureOpenCV34
	FeatureOpenCV4  = core.FeatureOpenCV4
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// DefaultOptions returns options with the default feature selected
func DefaultOptions() *Options {
	return core.DefaultOptions()
}

// Pipeline is the native library resolution pipeline:
// prober -> locator -> resolver -> emitter, strictly sequential, each
// stage failing fast when its preconditions are unmet.
type Pipeline struct {
	opts    *core.Options
	config  *core.Config
	plat    *platform.Platform
	locator *discovery.Locator
	logger  *log.Logger
}

// NewPipeline probes the platform and assembles the mechanism chain.
// Fails only on an unrecognized platform.
func NewPipeline(opts *Options, config *Config) (*Pipeline, error) {
	if opts == nil {
		opts = core.DefaultOptions()
	}
	if config == nil {
		config = core.DefaultConfig()
	}

	logger := log.New(io.Discard, "", 0)
	if config.Debug {
		logger = log.New(os.Stderr, "[cvprobe] ", log.LstdFlags)
	}

	plat, err := platform.Detect()
	if err != nil {
		return nil, &Error{Op: "detecting platform", Err: err}
	}
	logger.Printf("platform: %s", plat)

	prefixes := ScanPrefixes(config, logger)

	dcfg := discovery.DefaultConfig()
	dcfg.Debug = config.Debug
	dcfg.Logger = logger

	locator := discovery.NewLocator(dcfg, opts.ForceSysroot,
		pkgconfig.NewMechanism(&pkgconfig.Config{
			Timeout: dcfg.Timeout,
			Debug:   config.Debug,
			Logger:  logger,
		}),
		vcpkg.NewMechanism(&vcpkg.Config{
			Debug:  config.Debug,
			Logger: logger,
		}),
		sysroot.NewMechanism(&sysroot.Config{
			Prefixes: prefixes,
			Family:   plat.Family,
			Debug:    config.Debug,
			Logger:   logger,
		}),
	)

	return &Pipeline{
		opts:    opts,
		config:  config,
		plat:    plat,
		locator: locator,
		logger:  logger,
	}, nil
}

// ScanPrefixes returns the install prefixes fed to the filesystem
// scan: unpacked prebuilt artifacts first, then the configured extra
// prefixes. Every consumer of the sysroot mechanism goes through this
// so diagnostics see the same prefixes resolution does.
func ScanPrefixes(config *Config, logger *log.Logger) []string {
	cache := artifact.New(&artifact.Config{
		CachePath: config.CachePath,
		Debug:     config.Debug,
		Logger:    logger,
	})
	return append(cache.Prefixes(), config.ExtraPrefixes...)
}

// Platform returns the detected platform descriptor
func (p *Pipeline) Platform() *Platform {
	return p.plat
}

// Locate runs the discovery chain without resolving. An empty result
// is not an error here; Run decides whether that is fatal.
func (p *Pipeline) Locate(ctx context.Context) ([]*Candidate, error) {
	candidates, err := p.locator.Locate(ctx, p.plat)
	if err != nil {
		return nil, &Error{Op: "locating OpenCV", Err: err}
	}
	return candidates, nil
}

// Run executes the full pipeline and returns the emitted plan. The
// plan is fully constructed or not at all; callers persist it with
// plan.Write, which is atomic.
func (p *Pipeline) Run(ctx context.Context) (*Plan, error) {
	if p.opts.DocsOnly {
		p.logger.Printf("docs-only: emitting stub plan")
		return plan.Stub(p.opts), nil
	}

	candidates, err := p.Locate(ctx)
	if err != nil {
		return nil, err
	}

	sel, err := resolve.Resolve(candidates, p.opts)
	if err != nil {
		return nil, &Error{Op: "resolving OpenCV", Err: err}
	}
	p.logger.Printf("selected OpenCV %s from %s (contrib: %v)",
		sel.Candidate.Version, sel.Candidate.Source, sel.ContribEnabled)

	built, err := plan.Emit(sel)
	if err != nil {
		return nil, &Error{Op: "emitting plan", Err: err}
	}
	return built, nil
}

// Mechanisms returns the active mechanism names in probing order
func (p *Pipeline) Mechanisms() []string {
	return p.locator.Mechanisms()
}
