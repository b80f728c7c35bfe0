package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	goDigest "github.com/MrEthical07/goDigest"
)

func newReportCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the effective hashing configuration and lint findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, logger, err := a.digester()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer d.Close()

			r := d.SecurityReport()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "best algorithm\t$%s$\n", r.BestAlgorithm)
			fmt.Fprintf(w, "algorithms\t%s\n", strings.Join(r.Algorithms, ","))
			fmt.Fprintf(w, "fast digests\t%s\n", strings.Join(r.FastDigestAlgorithms, ","))
			fmt.Fprintf(w, "rounds\t%d-%d\n", r.RoundsMin, r.RoundsMax)
			fmt.Fprintf(w, "salt length\t%d (min %d)\n", r.SaltLength, r.SaltMinLength)
			fmt.Fprintf(w, "upgrade\t%t\n", r.UpgradeEnabled)
			fmt.Fprintf(w, "persist on authenticate\t%t\n", r.PersistOnAuthenticate)
			fmt.Fprintf(w, "rehash weaker parameters\t%t\n", r.RehashWeakerParameters)
			for _, lw := range r.Lint {
				fmt.Fprintf(w, "lint %s\t%s: %s\n", lw.Severity, lw.Code, lw.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if strict {
				return r.Lint.AsError(goDigest.LintWarn)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any WARN or HIGH finding is reported")

	return cmd
}
