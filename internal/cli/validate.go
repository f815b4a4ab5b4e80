package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/engine"
)

// NewValidateCmd создаёт команду проверки pipeline spec.
func NewValidateCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a pipeline spec file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			spec, err := engine.LoadFile(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Pipeline %q is valid: %d track(s)", spec.Name, len(spec.Tracks)))
			return nil
		},
	}
}
