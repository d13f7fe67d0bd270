package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmibrah2/OpenQL/internal/platform"
)

// NewValidateCommand creates the validate command: schema-check a platform
// description file and build it, without producing output beyond the verdict.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <platform-file>",
		Short: "Validate a platform description file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := platform.NewFromDescription(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if opts.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", p.RunID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d types, %d objects, %d instructions, %d functions)\n",
				args[0], len(p.DataTypes()), p.NumObjects(), len(p.InstructionTypes()), len(p.Functions()))
			return nil
		},
	}
}
