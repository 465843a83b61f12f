package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/compare"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/report"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/telemetry"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/workload"
)

// defaultTablePaths mirrors the classic driver: two tables in the working directory.
var defaultTablePaths = []string{"input1.txt", "input2.txt"}

// compareCmd runs every selected strategy over every table
var compareCmd = &cobra.Command{
	Use:   "compare [table...]",
	Short: "Compare allocation strategies over one or more job tables",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		bundle := loadBundle(configPath)
		opts := optionsFromFlags(cmd, bundle)
		if cmd.Flags().Changed("strategies") {
			opts.Strategies = strategies
		}
		for _, name := range opts.Strategies {
			if !sim.IsValidStrategy(name) {
				logrus.Fatalf("Unknown allocation strategy %q; valid strategies: %v", name, sim.StrategyNames)
			}
		}
		opts.Tables = selectTables(args, bundle)
		opts.Parallel = parallel
		opts.OutputURL = outputURL

		shutdown := startTelemetry(otelTracePath)
		defer shutdown()

		if err := simulate(cmd.Context(), afs.New(), cmd.OutOrStdout(), opts); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

// options is the resolved configuration of one CLI invocation.
type options struct {
	Memory      sim.MemoryConfig
	Strategies  []string
	Tables      []sim.TableConfig
	TraceLevel  trace.TraceLevel
	Parallel    bool
	OutputURL   string
	ShowMetrics bool
}

// setupLogging applies the --log level.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// loadBundle reads and validates the YAML run configuration. An empty path yields an empty bundle.
func loadBundle(path string) *sim.Bundle {
	if path == "" {
		return &sim.Bundle{}
	}
	bundle, err := sim.LoadBundle(path)
	if err != nil {
		logrus.Fatalf("Failed to load run config: %v", err)
	}
	if err := bundle.Validate(); err != nil {
		logrus.Fatalf("Invalid run config %s: %v", path, err)
	}
	return bundle
}

// optionsFromFlags merges the bundle with the shared flags. Flags win when set.
func optionsFromFlags(cmd *cobra.Command, bundle *sim.Bundle) options {
	opts := options{
		Memory:      bundle.MemoryConfig(),
		Strategies:  bundle.Strategies,
		TraceLevel:  trace.TraceLevel(bundle.TraceLevel),
		ShowMetrics: showMetrics,
	}
	if cmd.Flags().Changed("trace-level") {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}
		opts.TraceLevel = trace.TraceLevel(traceLevel)
	}
	return opts
}

// runStrategies resolves the strategies of `memsim run`. An explicit --strategy wins,
// then the config's strategies, then the flag default.
func runStrategies(flagSet bool, flagValue string, fromConfig []string) []string {
	if !flagSet && len(fromConfig) > 0 {
		return fromConfig
	}
	return []string{flagValue}
}

// selectTables picks table sources: positional args, then the bundle, then the classic defaults.
func selectTables(args []string, bundle *sim.Bundle) []sim.TableConfig {
	paths := args
	if len(paths) == 0 && len(bundle.Tables) > 0 {
		return bundle.Tables
	}
	if len(paths) == 0 {
		paths = defaultTablePaths
	}
	tables := make([]sim.TableConfig, len(paths))
	for i, p := range paths {
		tables[i] = sim.TableConfig{Name: fmt.Sprintf("Table-%d", i+1), Path: p}
	}
	return tables
}

// resolveURL turns a plain local path into an absolute one; URLs with a scheme pass through.
func resolveURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// loadScenarios reads every table once.
func loadScenarios(ctx context.Context, fs afs.Service, tables []sim.TableConfig) ([]compare.Scenario, error) {
	scenarios := make([]compare.Scenario, 0, len(tables))
	for i, t := range tables {
		table, err := workload.LoadJobTable(ctx, fs, resolveURL(t.Path))
		if err != nil {
			return nil, err
		}
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Table-%d", i+1)
		}
		scenarios = append(scenarios, compare.Scenario{Name: name, Jobs: table.Jobs()})
	}
	return scenarios, nil
}

// simulate loads the tables, runs the comparison and writes the report to w.
func simulate(ctx context.Context, fs afs.Service, w io.Writer, opts options) error {
	scenarios, err := loadScenarios(ctx, fs, opts.Tables)
	if err != nil {
		return err
	}

	runner := compare.NewRunner(opts.Memory, opts.Strategies)
	runner.TraceLevel = opts.TraceLevel
	runner.Parallel = opts.Parallel
	logrus.Infof("Starting comparison: %d tables, strategies=%v, memory limit=%d, page size=%d",
		len(scenarios), opts.Strategies, opts.Memory.MemoryLimit, opts.Memory.PageSize)

	runs, err := runner.Compare(ctx, scenarios)
	if err != nil {
		return err
	}

	sink := &report.TextSink{W: w, Metrics: opts.ShowMetrics, Memory: opts.Memory}
	if err := report.EmitAll(sink, runs); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	for _, run := range runs {
		if run.Trace != nil {
			summary := trace.Summarize(run.Trace)
			logrus.Infof("%s decisions=%d admitted=%d rejected=%d cross-promotions=%d first-clock=%d",
				report.Header(run), summary.TotalDecisions, summary.AdmittedCount,
				summary.RejectedCount, summary.CrossPromotions, summary.FirstClock)
		}
	}

	if opts.OutputURL != "" {
		if err := report.SaveJSON(ctx, fs, resolveURL(opts.OutputURL), opts.Memory, runs); err != nil {
			return err
		}
		logrus.Infof("Results written to %s", opts.OutputURL)
	}
	return nil
}

// startTelemetry installs a span exporter when path is set and returns its shutdown hook.
func startTelemetry(path string) func() {
	if path == "" {
		return func() {}
	}
	if path == "-" {
		path = ""
	}
	provider, err := telemetry.NewFileProvider("memsim", "0.1.0", path)
	if err != nil {
		logrus.Fatalf("Failed to start span export: %v", err)
	}
	provider.Install()
	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logrus.Errorf("Failed to flush spans: %v", err)
		}
	}
}
