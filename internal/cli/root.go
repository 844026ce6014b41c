// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vision-bindings/cvprobe/pkg/core"
)

var (
	cfgFile      string
	manifestFile string
	debug        bool
	config       *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cvprobe",
	Short: "OpenCV build configuration resolver",
	Long: `cvprobe - OpenCV build configuration resolver

Locates an installed OpenCV through pkg-config, vcpkg or a filesystem
scan, validates it against the configured version feature, and emits
the build plan consumed by the native binding compilation step.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cvprobe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&manifestFile, "manifest", "", "project manifest (default is ./cvprobe.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(prebuiltCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	if debug {
		config.Debug = true
	}
}
