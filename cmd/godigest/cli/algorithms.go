package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAlgorithmsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered algorithms by descending priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, logger, err := a.digester()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer d.Close()

			best := d.Registry().Best().Identifier
			cfg := d.Config()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRIORITY\tDEFAULT ROUNDS\tROUND RANGE\tBEST")
			for _, desc := range d.Registry().Descriptors() {
				marker := ""
				if desc.Identifier == best {
					marker = "*"
				}
				fmt.Fprintf(w, "$%s$\t%d\t%d\t%d-%d\t%s\n",
					desc.Identifier, desc.Priority, desc.DefaultRounds,
					cfg.Rounds.Min, cfg.Rounds.Max, marker)
			}
			return w.Flush()
		},
	}
}
