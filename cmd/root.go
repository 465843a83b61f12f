package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
)

var (
	// Shared flags
	configPath    string // YAML run configuration
	logLevel      string // Log verbosity level
	traceLevel    string // Decision trace level (none, decisions)
	otelTracePath string // File receiving OpenTelemetry spans ("-" = stdout)
	showMetrics   bool   // Print run metrics after the job states

	// run flags
	tablePath string // Job table for a single run
	strategy  string // Allocation strategy for a single run

	// compare flags
	strategies []string // Strategies to compare
	parallel   bool     // Run the strategies of one table concurrently
	outputURL  string   // Optional JSON export destination (any afs URL)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Discrete-time job scheduling simulator for memory allocation strategies",
}

// runCmd simulates one job table under one strategy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one job table under one allocation strategy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		bundle := loadBundle(configPath)
		opts := optionsFromFlags(cmd, bundle)
		if tablePath == "" {
			logrus.Fatalf("Job table not provided (--table). Exiting simulation.")
		}
		opts.Strategies = runStrategies(cmd.Flags().Changed("strategy"), strategy, bundle.Strategies)
		for _, name := range opts.Strategies {
			if !sim.IsValidStrategy(name) {
				logrus.Fatalf("Unknown allocation strategy %q; valid strategies: %v", name, sim.StrategyNames)
			}
		}
		opts.Tables = []sim.TableConfig{{Name: "Table-1", Path: tablePath}}

		shutdown := startTelemetry(otelTracePath)
		defer shutdown()

		if err := simulate(cmd.Context(), afs.New(), cmd.OutOrStdout(), opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run configuration (memory, strategies, tables)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace-level", "", "Decision trace level (none, decisions)")
	rootCmd.PersistentFlags().StringVar(&otelTracePath, "otel-trace", "", "Write OpenTelemetry spans to this file (\"-\" for stdout)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print run metrics after the job states")

	runCmd.Flags().StringVar(&tablePath, "table", "", "Job table file or afs URL")
	runCmd.Flags().StringVar(&strategy, "strategy", "naive", "Allocation strategy (naive, best-fit, first-fit, worst-fit)")

	compareCmd.Flags().StringSliceVar(&strategies, "strategies", nil, "Comma-separated strategies to compare (default: all)")
	compareCmd.Flags().BoolVar(&parallel, "parallel", false, "Run the strategies of one table concurrently")
	compareCmd.Flags().StringVar(&outputURL, "output", "", "Export all results as JSON to this file or afs URL")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
