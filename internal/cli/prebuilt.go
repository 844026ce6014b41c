// internal/cli/prebuilt.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vision-bindings/cvprobe/pkg/artifact"
)

var prebuiltSHA256 string

var prebuiltCmd = &cobra.Command{
	Use:   "prebuilt [archive]",
	Short: "Unpack a prebuilt OpenCV artifact into the cache",
	Long: `Unpack a prebuilt OpenCV tree (.tar.xz or .nar.xz) into the
artifact cache. Unpacked prefixes are scanned by the filesystem
discovery ahead of the conventional install directories.

Examples:
  cvprobe prebuilt opencv-4.8.0-linux.tar.xz
  cvprobe prebuilt opencv-4.8.0.nar.xz --sha256 9f2c...`,
	Args: cobra.ExactArgs(1),
	RunE: runPrebuilt,
}

func init() {
	prebuiltCmd.Flags().StringVar(&prebuiltSHA256, "sha256", "", "expected archive hash, verified before unpacking")
}

func runPrebuilt(cmd *cobra.Command, args []string) error {
	cache := artifact.New(&artifact.Config{
		CachePath: config.CachePath,
		Debug:     config.Debug,
	})

	prefix, err := cache.Unpack(args[0], prebuiltSHA256)
	if err != nil {
		return fmt.Errorf("unpacking artifact: %w", err)
	}

	fmt.Printf("Unpacked to %s\n", prefix)
	return nil
}
