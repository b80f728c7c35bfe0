package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errNoPassword = errors.New("no password given: pass it as an argument or use --stdin")

func newHashCommand(a *app) *cobra.Command {
	var (
		algorithm string
		salt      string
		rounds    int
		stdin     bool
	)

	cmd := &cobra.Command{
		Use:   "hash [password]",
		Short: "Hash a password with the best algorithm or a chosen one",
		Long: `Hash prints the encoded hash of a password.

Without --algorithm, --salt or --rounds the best registered algorithm is used
with a random salt and round count, exactly as an application would.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := readPassword(cmd, args, 0, stdin)
			if err != nil {
				return err
			}

			d, logger, err := a.digester()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer d.Close()

			var encoded string
			if algorithm == "" && salt == "" && rounds == 0 {
				encoded, err = d.HashPassword(plain)
			} else {
				desc := d.Registry().Best()
				if algorithm != "" {
					var ok bool
					if desc, ok = d.Registry().Resolve(algorithm); !ok {
						return fmt.Errorf("unknown algorithm %q", algorithm)
					}
				}
				encoded, err = desc.Engine.Hash(plain, salt, rounds)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return err
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Algorithm identifier, e.g. 5 or 6 (default: best)")
	cmd.Flags().StringVar(&salt, "salt", "", "Use this salt instead of a random one")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Round count; 0 selects the algorithm default")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the password from the first line of stdin")

	return cmd
}

// readPassword returns args[idx], or the first line of stdin when fromStdin
// is set.
func readPassword(cmd *cobra.Command, args []string, idx int, fromStdin bool) ([]byte, error) {
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
	if len(args) <= idx {
		return nil, errNoPassword
	}
	return []byte(args[idx]), nil
}
