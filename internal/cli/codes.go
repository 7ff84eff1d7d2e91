package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppopth/bch-codec/code/bch"
	"github.com/ppopth/bch-codec/field"
	"github.com/ppopth/bch-codec/internal/config"
	"github.com/ppopth/bch-codec/pb"
)

func newValidCodesCmd(opts *options) *cobra.Command {
	var tMin int
	cmd := &cobra.Command{
		Use:   "valid-codes [n]",
		Short: "List the narrow-sense BCH codes of length n",
		Long: `List every narrow-sense primitive BCH code of length n that corrects at
least --t-min errors. Without an argument the configured n is used.

Example:
  bchctl valid-codes 63 --t-min 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := opts.cfg.Code.N
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("%w: n must be an integer, not %q", field.ErrInvalidType, args[0])
				}
				n = v
			}
			codes, err := bch.ValidCodes(n, tMin)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range codes {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&tMin, "t-min", 1, "smallest error-correcting capability to list")
	return cmd
}

func newGeneratorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generator",
		Short: "Show the generator polynomial of the configured code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.code()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			g := c.GeneratorPoly()
			roots := make([]string, 0, c.Roots().Size())
			for _, r := range c.Roots().Values() {
				roots = append(roots, strconv.FormatUint(uint64(r), 10))
			}
			fmt.Fprintln(out, c)
			fmt.Fprintf(out, "field: %s, defining polynomial %s\n", c.Field(), c.Field().DefiningPoly())
			fmt.Fprintf(out, "g(x) = %s\n", g)
			fmt.Fprintf(out, "g = %#x\n", g.Int())
			fmt.Fprintf(out, "roots: %s\n", strings.Join(roots, " "))
			return nil
		},
	}
}

func newMatrixCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix {generator|parity-check}",
		Short: "Print the generator or parity-check matrix",
		Long: `Print the k×n generator matrix over GF(2), one row per line, or the
2t×n parity-check matrix over GF(2^m) with entries in their integer form.

Example:
  bchctl matrix generator --n 15 --k 7
  bchctl matrix parity-check --n 15 --k 7`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"generator", "parity-check"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.code()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch args[0] {
			case "generator":
				G := c.GeneratorMatrix()
				if opts.cfg.Output.Format == config.FormatFrame {
					frame, err := pb.NewFrame(pb.Frame_CODEWORD, c.N(), c.K(), G, nil)
					if err != nil {
						return err
					}
					return writeFrame(out, frame)
				}
				return writeTextRows(out, G)
			case "parity-check":
				if opts.cfg.Output.Format == config.FormatFrame {
					return fmt.Errorf("%w: the parity-check matrix is not binary and has no frame form", field.ErrInvalidValue)
				}
				return writeElementRows(out, c.ParityCheckMatrix())
			default:
				return fmt.Errorf("%w: unknown matrix %q", field.ErrInvalidValue, args[0])
			}
		},
	}
}
