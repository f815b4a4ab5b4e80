package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// NewRunCmd создаёт команду однократного запуска pipeline.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	var specPath string
	var revision string
	var workers int
	var workDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline once and wait for the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()
			logger := telemetry.SetupLogger()
			ctx := cmd.Context()

			spec, err := loadSpec(specPath, revision)
			if err != nil {
				return err
			}

			d, err := setupDeps(ctx, logger, workers, workDir)
			if err != nil {
				return err
			}
			defer d.Close()

			run, err := d.orch.Execute(ctx, spec)
			if err != nil {
				return err
			}

			out.PrintRun(run)

			switch run.Status {
			case domain.RunStatusSucceeded:
				return nil
			case domain.RunStatusCancelled:
				return fmt.Errorf("run cancelled")
			default:
				return fmt.Errorf("run failed: %s", run.Error)
			}
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "Pipeline spec file (built-in pipeline if not set)")
	cmd.Flags().StringVar(&revision, "revision", "", "Revision to build")
	cmd.Flags().IntVar(&workers, "workers", 2, "Number of linux worker nodes")
	cmd.Flags().StringVar(&workDir, "workdir", "", "Base directory for per-node workspaces")

	return cmd
}
