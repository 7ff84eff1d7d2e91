package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ppopth/bch-codec/field"
	"github.com/ppopth/bch-codec/internal/config"
)

func newFieldCmd(opts *options) *cobra.Command {
	var (
		poly      string
		primitive uint64
	)
	cmd := &cobra.Command{
		Use:   "field <order>",
		Short: "Describe the finite field of the given order",
		Long: `Describe GF(q) for a prime power q. --poly gives the defining polynomial
as an integer whose base-p digits are its coefficients.

Example:
  bchctl field 256 --poly 0x11b --primitive 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("%w: order must be an integer, not %q", field.ErrInvalidType, args[0])
			}
			strategy, err := config.ParseStrategy(opts.cfg.Field.Strategy)
			if err != nil {
				return err
			}
			fc := &field.Config{PrimitiveElement: field.Element(primitive), Strategy: strategy}
			if poly != "" {
				p, err := parsePoly(order, poly)
				if err != nil {
					return err
				}
				fc.DefiningPoly = &p
			}
			f, err := field.New(order, fc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, f)
			fmt.Fprintf(out, "characteristic: %d\n", f.Characteristic())
			fmt.Fprintf(out, "degree: %d\n", f.Degree())
			fmt.Fprintf(out, "order: %d\n", f.Order())
			fmt.Fprintf(out, "defining polynomial: %s\n", f.DefiningPoly())
			fmt.Fprintf(out, "primitive element: %d\n", f.PrimitiveElement())
			fmt.Fprintf(out, "strategy: %s\n", f.Strategy())
			return nil
		},
	}
	cmd.Flags().StringVar(&poly, "poly", "", "defining polynomial as an integer, e.g. 0x11d")
	cmd.Flags().Uint64Var(&primitive, "primitive", 0, "primitive element (default: the smallest)")
	return cmd
}

// parsePoly reads a polynomial over the prime subfield of GF(order).
func parsePoly(order uint64, s string) (field.Poly, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return field.Poly{}, fmt.Errorf("%w: polynomial %q is not an integer", field.ErrInvalidType, s)
	}
	primes, _, err := field.PrimeFactors(order)
	if err != nil {
		return field.Poly{}, err
	}
	if len(primes) != 1 {
		return field.Poly{}, fmt.Errorf("%w: %d is not a prime power", field.ErrInvalidValue, order)
	}
	base, err := field.New(primes[0], nil)
	if err != nil {
		return field.Poly{}, err
	}
	return field.PolyFromInt(base, v), nil
}
