package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppopth/bch-codec/field"
	"github.com/ppopth/bch-codec/internal/config"
	"github.com/ppopth/bch-codec/pb"
)

func newEncodeCmd(opts *options) *cobra.Command {
	var (
		input  string
		parity bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode message rows read from stdin",
		Long: `Read rows of k message bits from stdin and write the codewords, or only
their parity bits with --parity.

Example:
  printf '1011001\n0000001\n' | bchctl encode --n 15 --k 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.code()
			if err != nil {
				return err
			}
			messages, err := readRows(cmd.InOrStdin(), input, c.K(), pb.Frame_MESSAGE)
			if err != nil {
				return err
			}
			log.Debugf("encoding %d rows with %s", messages.Rows(), c)

			kind := pb.Frame_CODEWORD
			encode := c.Encode
			if parity {
				kind = pb.Frame_PARITY
				encode = c.EncodeParity
			}
			out, err := encode(messages)
			if err != nil {
				return err
			}
			if opts.cfg.Output.Format == config.FormatFrame {
				frame, err := pb.NewFrame(kind, c.N(), c.K(), out, nil)
				if err != nil {
					return err
				}
				return writeFrame(cmd.OutOrStdout(), frame)
			}
			return writeTextRows(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&input, "input", config.FormatText, "input format: text, frame")
	cmd.Flags().BoolVar(&parity, "parity", false, "write only the parity bits of systematic codewords")
	return cmd
}

func newDecodeCmd(opts *options) *cobra.Command {
	var (
		input  string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode codeword rows read from stdin",
		Long: `Read rows of n received bits from stdin and write the decoded messages.
Text output follows each message with the number of corrected bits, or -1
when the row could not be corrected.

Example:
  bchctl decode --n 15 --k 7 < received.txt
  bchctl decode --input frame -o frame < received.pb > messages.pb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.code()
			if err != nil {
				return err
			}
			received, err := readRows(cmd.InOrStdin(), input, c.N(), pb.Frame_CODEWORD)
			if err != nil {
				return err
			}
			res, err := c.DecodeResult(received)
			if err != nil {
				return err
			}
			if rows := res.Uncorrectable(); len(rows) > 0 {
				log.Warnf("%d of %d rows were uncorrectable", len(rows), received.Rows())
			}

			out := cmd.OutOrStdout()
			if opts.cfg.Output.Format == config.FormatFrame {
				frame, err := pb.NewFrame(pb.Frame_MESSAGE, c.N(), c.K(), res.Message, res.Errors)
				if err != nil {
					return err
				}
				err = writeFrame(out, frame)
				if err != nil {
					return err
				}
			} else if err := writeDecoded(out, res.Message, res.Errors); err != nil {
				return err
			}

			if strict {
				return res.Err()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", config.FormatText, "input format: text, frame")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any row is uncorrectable")
	return cmd
}

// checkKind rejects frames whose kind does not match what a command reads.
func checkKind(frame *pb.Frame, want pb.Frame_Kind) error {
	if frame.Kind != nil && frame.GetKind() != want {
		return fmt.Errorf("%w: expected a %s frame, got %s", field.ErrInvalidValue, want, frame.GetKind())
	}
	return nil
}
