package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bcbp_trmnl/internal/bcbp"
)

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the boarding pass fields in encoding order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ITEM\tWIDTH\tNAME")
			for _, f := range bcbp.Fields() {
				width := fmt.Sprint(f.Width())
				if f.IsVariable() {
					width = "var"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", f.ItemNumber(), width, f.Name())
			}
			return tw.Flush()
		},
	}
}
