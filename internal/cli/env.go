// internal/cli/env.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vision-bindings/cvprobe/pkg/plan"
)

var envPlanPath string

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell exports for an emitted build plan",
	Long: `Print the CGO_CPPFLAGS/CGO_LDFLAGS exports of a build plan,
suitable for eval in a build script:

  eval "$(cvprobe env)"`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVar(&envPlanPath, "plan", "", "build plan to read (default from config)")
}

func runEnv(cmd *cobra.Command, args []string) error {
	path := envPlanPath
	if path == "" {
		path = config.PlanPath
	}

	p, err := plan.Load(path)
	if err != nil {
		return err
	}

	for _, line := range p.EnvExports() {
		fmt.Println(line)
	}
	return nil
}
