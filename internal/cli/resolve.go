// internal/cli/resolve.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vision-bindings/cvprobe"
	"github.com/vision-bindings/cvprobe/pkg/core"
	"github.com/vision-bindings/cvprobe/pkg/manifest"
	"github.com/vision-bindings/cvprobe/pkg/plan"
)

var (
	resolveOpenCV32    bool
	resolveOpenCV34    bool
	resolveOpenCV4     bool
	resolveContrib     bool
	resolveBindgen     bool
	resolveForce       bool
	resolveDocsOnly    bool
	resolveVersionHint string
	resolvePlanPath    string
	resolveBindgenOut  string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve OpenCV and emit the build plan",
	Long: `Run the full discovery pipeline and write the build plan.

Feature flags mirror the project manifest; flags given here override
the manifest. The three version flags are mutually exclusive.

Examples:
  cvprobe resolve
  cvprobe resolve --opencv-34 --contrib
  cvprobe resolve --force-3rd-party-libs-discovery --plan build/plan.yaml`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveOpenCV32, "opencv-32", false, "expect OpenCV 3.2.x")
	resolveCmd.Flags().BoolVar(&resolveOpenCV34, "opencv-34", false, "expect OpenCV 3.4.x")
	resolveCmd.Flags().BoolVar(&resolveOpenCV4, "opencv-4", false, "expect OpenCV 4.x (default)")
	resolveCmd.Flags().BoolVar(&resolveContrib, "contrib", false, "require contrib modules")
	resolveCmd.Flags().BoolVar(&resolveBindgen, "buildtime-bindgen", false, "record header paths for binding regeneration")
	resolveCmd.Flags().BoolVar(&resolveForce, "force-3rd-party-libs-discovery", false, "skip pkg-config/vcpkg, scan the filesystem directly")
	resolveCmd.Flags().BoolVar(&resolveDocsOnly, "docs-only", false, "emit a stub plan for documentation generation")
	resolveCmd.Flags().StringVar(&resolveVersionHint, "version-hint", "", "prefer a specific library version")
	resolveCmd.Flags().StringVar(&resolvePlanPath, "plan", "", "build plan output path")
	resolveCmd.Flags().StringVar(&resolveBindgenOut, "bindgen-out", "", "bindgen side-channel output path")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	pipeline, err := cvprobe.NewPipeline(opts, config)
	if err != nil {
		return err
	}

	built, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	planPath := resolvePlanPath
	if planPath == "" {
		planPath = config.PlanPath
	}
	if err := plan.Write(built, planPath); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}

	if opts.BindgenMode && !opts.DocsOnly {
		if err := built.WriteBindgenPaths(resolveBindgenOut, config.EigenDir); err != nil {
			return fmt.Errorf("writing bindgen paths: %w", err)
		}
	}

	fmt.Printf("Feature:  %s\n", built.Feature)
	if built.Stub {
		fmt.Printf("Plan:     %s (docs-only stub)\n", planPath)
		return nil
	}
	fmt.Printf("Version:  %s (via %s)\n", built.Version, built.Source)
	fmt.Printf("Contrib:  %v\n", built.Contrib)
	fmt.Printf("Includes: %s\n", strings.Join(built.Includes, ", "))
	fmt.Printf("Links:    %s\n", strings.Join(built.Links, ", "))
	fmt.Printf("Plan:     %s\n", planPath)

	return nil
}

// buildOptions merges the project manifest with command-line overrides
func buildOptions() (*core.Options, error) {
	m, err := manifest.Load(manifestFile)
	if err != nil {
		return nil, err
	}
	opts, err := m.Options()
	if err != nil {
		return nil, err
	}

	if resolveOpenCV32 || resolveOpenCV34 || resolveOpenCV4 {
		feature, err := core.FeatureFromFlags(resolveOpenCV32, resolveOpenCV34, resolveOpenCV4)
		if err != nil {
			return nil, err
		}
		opts.Feature = feature
	}
	if resolveContrib {
		opts.Contrib = true
	}
	if resolveBindgen {
		opts.BindgenMode = true
	}
	if resolveForce {
		opts.ForceSysroot = true
	}
	if resolveDocsOnly {
		opts.DocsOnly = true
	}
	if resolveVersionHint != "" {
		opts.VersionHint = resolveVersionHint
	}

	return opts, nil
}
