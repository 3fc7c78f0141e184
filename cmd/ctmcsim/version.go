// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ctmcsim"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ctmcsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ctmcsim version %s\n", ctmcsim.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
