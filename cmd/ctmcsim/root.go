// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctmcsim",
	Short: "ctmcsim estimates CTMC statistics by simulation",
	Long: `ctmcsim simulates a finite continuous-time Markov chain and estimates its
invariant distribution, direct and moving hitting times and mean jump counts
from the sample path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels replicas that have not started measuring.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML run configuration (defaults are used when empty)")
	rootCmd.PersistentFlags().StringSlice("env", nil, "dotenv files with CTMCSIM_* overrides (default .env if present)")
}
