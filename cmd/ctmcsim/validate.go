// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and the generator matrix",
	Long: `Loads the configuration, applies environment overrides and builds Q,
reporting the first problem found. With --print the effective configuration
is written as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		q, err := cfg.Generator()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if show, _ := cmd.Flags().GetBool("print"); show {
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			if _, err = out.Write(data); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "configuration is valid: %d states\n", q.Rows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("print", false, "Print the effective configuration")
}
