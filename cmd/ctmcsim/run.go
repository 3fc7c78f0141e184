// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ctmcsim/config"
	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/internal/logging"
	"github.com/katalvlaran/ctmcsim/internal/report"
	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/metrics"
	"github.com/katalvlaran/ctmcsim/simulate"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the chain and print the estimates",
	Long: `Builds Q from the configuration, performs the burn-in, measures one window
(or merges several independent replicas) and prints the invariant
distribution, the direct and moving hitting times and the jump counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != formatText && format != formatYAML {
			return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatYAML)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("metrics-file") {
			cfg.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log := logging.New(level)

		r, meta, err := simulateConfig(cmd, cfg, log)
		if err != nil {
			return err
		}

		return writeReport(cmd.OutOrStdout(), format, r, meta)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("format", "f", formatText, "Output format: text or yaml")
	runCmd.Flags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	runCmd.Flags().Int64("seed", config.DefaultSeed, "Random seed (overrides the configuration)")

	// A bare `ctmcsim` runs the default configuration.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}

// simulateConfig runs one driver, or Replicate plus Merge when more than one
// replica is requested. Metrics are written even when the run fails.
func simulateConfig(cmd *cobra.Command, cfg config.Config, log *slog.Logger) (*estimator.Report, report.Meta, error) {
	q, err := cfg.Generator()
	if err != nil {
		return nil, report.Meta{}, err
	}

	runID := uuid.New().String()
	opts := []simulate.Option{simulate.WithLogger(log), simulate.WithRunID(runID)}
	var rec *metrics.Recorder
	if cfg.MetricsFile != "" {
		rec = metrics.NewRecorder()
		opts = append(opts, simulate.WithMetrics(rec))
		defer func() {
			if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
				log.Error("writing metrics failed", "path", cfg.MetricsFile, "error", werr)
			}
		}()
	}
	chainOpts := []ctmc.Option{
		ctmc.WithInitialState(cfg.InitialState),
		ctmc.WithPathLog(cfg.PathLog),
	}
	meta := report.Meta{RunID: runID, Labels: cfg.Labels, Replicas: cfg.Replicas}

	if cfg.Replicas == 1 {
		r, warnings, err := single(q, cfg, append(chainOpts, ctmc.WithSeed(cfg.Seed)), opts)
		meta.Warnings = warnings
		return r, meta, err
	}

	plan := cfg.Plan()
	plan.ChainOptions = chainOpts
	reports, err := simulate.Replicate(cmd.Context(), q, plan, opts...)
	if err != nil {
		return nil, meta, err
	}
	if cfg.BurnIn < simulate.MinBurnIn {
		meta.Warnings = append(meta.Warnings,
			fmt.Errorf("burn_in=%d < %d: %w", cfg.BurnIn, simulate.MinBurnIn, simulate.ErrLowBurnIn))
	}
	r, err := estimator.Merge(reports...)
	if err != nil {
		return nil, meta, err
	}
	if _, meta.StdErr, err = estimator.InvariantSpread(reports...); err != nil {
		return nil, meta, err
	}
	log.Info("replicas merged", "replicas", len(reports), "jumps", r.Jumps, "elapsed", r.Elapsed)

	return r, meta, nil
}

// single drives one chain. With path logging on, the report is re-derived
// from the path, skipping cfg.AnalyzeBurnIn measured jumps.
func single(q matrix.Matrix, cfg config.Config, chainOpts []ctmc.Option, opts []simulate.Option) (*estimator.Report, []error, error) {
	d, err := simulate.New(q, chainOpts, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err = d.BurnIn(cfg.BurnIn); err != nil {
		return nil, d.Warnings(), err
	}

	var r *estimator.Report
	if cfg.Jumps > 0 {
		r, err = d.RunJumps(cfg.Jumps)
	} else {
		r, err = d.Run(cfg.Duration)
	}
	if err != nil {
		return nil, d.Warnings(), err
	}
	if cfg.PathLog && cfg.AnalyzeBurnIn > 0 {
		if r, err = d.Analyze(cfg.AnalyzeBurnIn); err != nil {
			return nil, d.Warnings(), err
		}
	}

	return r, d.Warnings(), nil
}

func writeReport(w io.Writer, format string, r *estimator.Report, meta report.Meta) error {
	if format == formatYAML {
		data, err := report.MarshalYAML(r, meta)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return report.NewWriter(w).Render(r, meta)
}
