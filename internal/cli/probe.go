// internal/cli/probe.go
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vision-bindings/cvprobe"
	"github.com/vision-bindings/cvprobe/pkg/discovery"
	"github.com/vision-bindings/cvprobe/pkg/pkgconfig"
	"github.com/vision-bindings/cvprobe/pkg/platform"
	"github.com/vision-bindings/cvprobe/pkg/sysroot"
	"github.com/vision-bindings/cvprobe/pkg/vcpkg"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the platform and what each mechanism finds",
	Long: `Run every discovery mechanism and print its candidates.

Unlike resolve, probe does not short-circuit and an empty result is
not an error. Useful for diagnosing why resolution picked (or missed)
an installation.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}
	fmt.Printf("Platform: %s\n\n", plat)

	var logger *log.Logger
	if config.Debug {
		logger = log.New(os.Stderr, "[cvprobe] ", log.LstdFlags)
	}

	mechanisms := []discovery.Mechanism{
		pkgconfig.NewMechanism(&pkgconfig.Config{Debug: config.Debug, Logger: logger}),
		vcpkg.NewMechanism(&vcpkg.Config{Debug: config.Debug, Logger: logger}),
		sysroot.NewMechanism(&sysroot.Config{
			Prefixes: cvprobe.ScanPrefixes(config, logger),
			Family:   plat.Family,
			Debug:    config.Debug,
			Logger:   logger,
		}),
	}

	for _, mech := range mechanisms {
		fmt.Printf("%s:\n", mech.Name())
		if !mech.Supported(plat) {
			fmt.Printf("  not applicable on this platform\n")
			continue
		}
		candidates, err := mech.Probe(ctx)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		if len(candidates) == 0 {
			fmt.Printf("  nothing found\n")
			continue
		}
		for _, c := range candidates {
			fmt.Printf("  OpenCV %s (contrib: %v)\n", c.Version, c.HasContrib)
			fmt.Printf("    includes: %s\n", strings.Join(c.IncludePaths, ", "))
			fmt.Printf("    libs:     %s\n", strings.Join(c.LibPaths, ", "))
		}
	}

	return nil
}
