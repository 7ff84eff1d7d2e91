// Package cli implements the bchctl command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/ppopth/bch-codec/code/bch"
	"github.com/ppopth/bch-codec/internal/config"
)

var log = logging.Logger("cli")

// options holds the global flags and the configuration resolved from them
// before a subcommand runs.
type options struct {
	configPath    string
	logLevel      string
	workers       int
	output        string
	n, k, c       int
	nonSystematic bool

	cfg *config.Config
}

// NewRootCommand builds the bchctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "bchctl",
		Short: "Binary BCH code toolkit",
		Long: `bchctl constructs primitive binary BCH codes and uses them to encode and
decode batches of bit rows.

Rows are read as text, one row of 0 and 1 characters per line, or as a
protobuf frame. The code is selected with --n and --k or with the code
section of the configuration file.

Example:
  bchctl valid-codes 31
  bchctl generator --n 15 --k 7
  echo 1011001 | bchctl encode --n 15 --k 7
  bchctl decode --n 15 --k 7 < codewords.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML configuration file (default: $"+config.EnvConfig+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVar(&opts.workers, "workers", 0, "goroutines for batched encoding and decoding (default: GOMAXPROCS)")
	pf.StringVarP(&opts.output, "output", "o", "", "output format: text, frame")
	pf.IntVar(&opts.n, "n", 0, "code length, of the form 2^m - 1")
	pf.IntVar(&opts.k, "k", 0, "message length")
	pf.IntVar(&opts.c, "c", 0, "first consecutive root exponent, 1 for narrow-sense codes")
	pf.BoolVar(&opts.nonSystematic, "non-systematic", false, "encode c(x) = m(x) g(x) instead of the systematic form")

	root.AddCommand(
		newValidCodesCmd(opts),
		newGeneratorCmd(opts),
		newMatrixCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newFieldCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, bch.ErrUncorrectable):
		return 2
	default:
		return 1
	}
}

// init resolves the configuration: file, then environment, then flags.
func (o *options) init(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg := config.Defaults()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	config.ApplyEnvironment(cfg)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("output") {
		cfg.Output.Format = o.output
	}
	if flags.Changed("n") {
		cfg.Code.N = o.n
	}
	if flags.Changed("k") {
		cfg.Code.K = o.k
	}
	if flags.Changed("c") {
		cfg.Code.C = o.c
	}
	if flags.Changed("non-systematic") {
		cfg.Code.Systematic = !o.nonSystematic
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.ApplyLogging(cfg); err != nil {
		return err
	}
	o.cfg = cfg
	log.Debugf("configuration loaded from %q: %+v", path, *cfg)
	return nil
}

// code constructs the configured BCH code.
func (o *options) code() (*bch.Code, error) {
	bc, err := o.cfg.BCHConfig()
	if err != nil {
		return nil, err
	}
	return bch.New(o.cfg.Code.N, o.cfg.Code.K, bc)
}
