package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppopth/bch-codec/internal/config"
)

// defaultConfigFile is where config init writes without an argument.
const defaultConfigFile = "bchctl.yaml"

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Write and inspect bchctl configuration files.`,
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the resolved configuration to a file",
		Long: `Write the configuration in effect, defaults overridden by the environment
and any flags, to a YAML file (default: ` + defaultConfigFile + `).

An existing file is not overwritten unless --force is specified.

Example:
  bchctl config init
  bchctl config init --n 31 --k 16 codes/bch31.yaml
  bchctl config init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: configuration already exists at %s, use --force to overwrite", os.ErrExist, path)
			}
			if err := config.Save(opts.cfg, path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			log.Infof("configuration written to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
