package compare

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/internal/testutil"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/workload"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func goldenScenario(t *testing.T, golden, name string) Scenario {
	t.Helper()
	tc := testutil.FindGolden(t, golden)
	table, err := workload.ParseJobTable(strings.NewReader(tc.TableText()))
	require.NoError(t, err)
	return Scenario{Name: name, Jobs: table.Records}
}

func TestRunner_Compare_OrderedByScenarioThenStrategy(t *testing.T) {
	// GIVEN two tables and the default strategy list
	scenarios := []Scenario{
		goldenScenario(t, "input1_naive", "Table-1"),
		goldenScenario(t, "input2_naive", "Table-2"),
	}
	runner := NewRunner(sim.DefaultMemoryConfig(), nil)

	// WHEN compared
	runs, err := runner.Compare(context.Background(), scenarios)

	// THEN every (table, strategy) pair is reported once in a stable order
	require.NoError(t, err)
	require.Len(t, runs, 2*len(sim.StrategyNames))
	for i, run := range runs {
		assert.Equal(t, scenarios[i/len(sim.StrategyNames)].Name, run.Table)
		assert.Equal(t, sim.StrategyNames[i%len(sim.StrategyNames)], run.Strategy)
		assert.NotEmpty(t, run.RunID)
	}
}

func TestRunner_Compare_MatchesGoldenPerStrategy(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		// GIVEN the example table 2 compared across all strategies
		sc := goldenScenario(t, "input2_naive", "Table-2")
		runner := NewRunner(sim.DefaultMemoryConfig(), sim.StrategyNames)
		runner.Parallel = parallel

		runs, err := runner.Compare(context.Background(), []Scenario{sc})
		require.NoError(t, err)

		// THEN each run matches the result of running that strategy alone on a fresh table
		for _, run := range runs {
			golden := testutil.FindGolden(t, "input2_"+strings.ReplaceAll(run.Strategy, "-", "_"))
			ids := make([]int, len(run.Jobs))
			states := make([]string, len(run.Jobs))
			for i, j := range run.Jobs {
				ids[i], states[i] = j.ID, string(j.State)
			}
			testutil.AssertStates(t, golden.Name, golden.Expected.States, ids, states)
			assert.Equal(t, golden.Expected.FinalMemoryUsed, run.Metrics.FinalMemoryUsed, golden.Name)
		}
	}
}

func TestRunner_Compare_DoesNotMutateScenario(t *testing.T) {
	sc := goldenScenario(t, "slot_selection_best_fit", "Table-1")
	before := sim.CloneJobs(sc.Jobs)

	_, err := NewRunner(sim.DefaultMemoryConfig(), nil).Compare(context.Background(), []Scenario{sc})
	require.NoError(t, err)

	assert.Equal(t, before, sc.Jobs)
}

func TestRunner_Compare_UnknownStrategy(t *testing.T) {
	_, err := NewRunner(sim.DefaultMemoryConfig(), []string{"next-fit"}).Compare(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next-fit")
}

func TestRunner_Compare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(sim.DefaultMemoryConfig(), nil).Compare(ctx, []Scenario{goldenScenario(t, "naive_idle_skip", "t")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_TraceLevel(t *testing.T) {
	sc := goldenScenario(t, "naive_idle_skip", "t")
	runner := NewRunner(sim.DefaultMemoryConfig(), nil)

	assert.Nil(t, runner.Run(context.Background(), sc, "naive").Trace)

	runner.TraceLevel = trace.TraceLevelDecisions
	traced := runner.Run(context.Background(), sc, "naive")
	require.NotNil(t, traced.Trace)
	assert.Len(t, traced.Trace.Admissions, 3)
}

func TestRunner_Spans(t *testing.T) {
	// GIVEN a runner exporting spans to memory
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	runner := NewRunner(sim.DefaultMemoryConfig(), []string{"best-fit", "worst-fit"})
	runner.Tracer = tp.Tracer("test")

	// WHEN one table is compared
	_, err := runner.Compare(context.Background(), []Scenario{goldenScenario(t, "slot_selection_naive", "Table-1")})
	require.NoError(t, err)

	// THEN one span per run plus the comparison span were exported
	spans := exporter.GetSpans()
	names := make(map[string]int)
	for _, s := range spans {
		names[s.Name]++
	}
	assert.Equal(t, 2, names["memsim.run"])
	assert.Equal(t, 1, names["memsim.compare"])
}
