package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrMismatch is returned by verify when the password does not match, so the
// process exits non-zero.
var ErrMismatch = errors.New("password does not match")

func newVerifyCommand(a *app) *cobra.Command {
	var stdin bool

	cmd := &cobra.Command{
		Use:   "verify <hash> [password]",
		Short: "Check a password against an encoded hash",
		Long: `Verify prints "match" or exits non-zero with "password does not match".

When the hash was produced by an algorithm other than the best one, a second
line "upgraded: <hash>" carries the replacement hash to store.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := readPassword(cmd, args, 1, stdin)
			if err != nil {
				return err
			}

			d, logger, err := a.digester()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer d.Close()

			res := d.MatchesPassword(plain, args[0])
			if !res.Matches {
				return ErrMismatch
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, "match"); err != nil {
				return err
			}
			if res.Upgraded() {
				_, err = fmt.Fprintln(out, "upgraded:", res.UpgradedHash)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the password from the first line of stdin")

	return cmd
}
