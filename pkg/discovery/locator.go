// pkg/discovery/locator.go
package discovery

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vision-bindings/cvprobe/pkg/platform"
)

// Locator tries an ordered sequence of mechanisms until one yields
// candidates. The order is fixed at construction and encodes the
// preference pkg-config > vcpkg > sysroot: tool-reported flags are
// compiler-verified and beat a manual filesystem guess.
type Locator struct {
	mechanisms   []Mechanism
	forceSysroot bool
	logger       *log.Logger
}

// NewLocator creates a locator over the given mechanisms, tried in
// argument order. With forceSysroot set, every mechanism except the
// filesystem scan is skipped regardless of platform.
func NewLocator(cfg *Config, forceSysroot bool, mechanisms ...Mechanism) *Locator {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[DISCOVERY] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Locator{
		mechanisms:   mechanisms,
		forceSysroot: forceSysroot,
		logger:       logger,
	}
}

// Locate runs the mechanism chain. It returns the candidates of the
// first mechanism that finds any, or an empty slice if none do; the
// caller decides whether an empty result is fatal. A mechanism error
// aborts the chain: crashing or emitting unparseable output is a hard
// failure, not a reason to fall through.
func (l *Locator) Locate(ctx context.Context, plat *platform.Platform) ([]*Candidate, error) {
	for _, mech := range l.mechanisms {
		if l.forceSysroot && mech.Name() != MechanismSysroot {
			l.logger.Printf("skipping %s: 3rd-party discovery forced", mech.Name())
			continue
		}
		if !mech.Supported(plat) {
			l.logger.Printf("skipping %s: not supported on %s", mech.Name(), plat)
			continue
		}

		l.logger.Printf("probing via %s", mech.Name())
		candidates, err := mech.Probe(ctx)
		if err != nil {
			return nil, fmt.Errorf("probing via %s: %w", mech.Name(), err)
		}
		if len(candidates) > 0 {
			l.logger.Printf("%s found %d candidate(s), first: %s", mech.Name(), len(candidates), candidates[0].Version)
			return candidates, nil
		}
		l.logger.Printf("%s found nothing", mech.Name())
	}

	return nil, nil
}

// Mechanisms returns the mechanism names in probing order, with forced
// skips applied. Used by diagnostics.
func (l *Locator) Mechanisms() []string {
	names := make([]string, 0, len(l.mechanisms))
	for _, mech := range l.mechanisms {
		if l.forceSysroot && mech.Name() != MechanismSysroot {
			continue
		}
		names = append(names, mech.Name())
	}
	return names
}
