package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCmd prints the effective configuration after all layers are applied
func newConfigCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			if cfg.Notify.RedisPassword != "" {
				cfg.Notify.RedisPassword = "***"
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
