package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmibrah2/OpenQL/internal/describe"
	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// NewDescribeCommand creates the describe command: print one line per
// registry entry of the platform a description file builds.
func NewDescribeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <platform-file>",
		Short: "Describe the registry a platform description builds",
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
			writePlatform(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func writePlatform(w io.Writer, p *platform.Platform) {
	fmt.Fprintln(w, "types:")
	for _, typ := range p.DataTypes() {
		fmt.Fprintf(w, "  %s\n", describe.Node(p, typ))
	}
	fmt.Fprintln(w, "objects:")
	for id := 0; id < p.NumObjects(); id++ {
		fmt.Fprintf(w, "  %s\n", describe.Node(p, ir.ObjectID(id)))
	}
	fmt.Fprintln(w, "instructions:")
	for _, ityp := range p.InstructionTypes() {
		writeInstructionTree(w, p, ityp, "  ")
	}
	fmt.Fprintln(w, "functions:")
	for _, ftyp := range p.Functions() {
		fmt.Fprintf(w, "  %s\n", describe.Node(p, ftyp))
	}
}

func writeInstructionTree(w io.Writer, p *platform.Platform, ityp *ir.InstructionType, indent string) {
	fmt.Fprintf(w, "%s%s\n", indent, describe.Node(p, ityp))
	for _, spec := range ityp.Specializations {
		writeInstructionTree(w, p, spec, indent+"  ")
	}
}
