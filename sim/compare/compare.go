// Package compare runs several allocation strategies over the same job tables.
//
// Every (table, strategy) run gets its own deep copy of the jobs and its own memory
// counter, so strategies never observe one another's state changes. This holds for
// sequential and parallel runs alike.
package compare

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/internal/idgen"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/telemetry"
	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
)

// Scenario is a named job table. Jobs are never mutated by the Runner.
type Scenario struct {
	Name string
	Jobs []*sim.Job
}

// Runner executes every configured strategy over every scenario.
type Runner struct {
	Config     sim.MemoryConfig
	Strategies []string // empty means sim.StrategyNames
	TraceLevel trace.TraceLevel
	Parallel   bool             // run the strategies of one scenario concurrently
	Tracer     oteltrace.Tracer // nil uses the global provider
}

// NewRunner creates a Runner for the given memory configuration and strategies.
func NewRunner(cfg sim.MemoryConfig, strategies []string) *Runner {
	return &Runner{Config: cfg, Strategies: strategies}
}

func (r *Runner) strategies() []string {
	if len(r.Strategies) == 0 {
		return sim.StrategyNames
	}
	return r.Strategies
}

func (r *Runner) tracer() oteltrace.Tracer {
	if r.Tracer == nil {
		return telemetry.DefaultTracer()
	}
	return r.Tracer
}

// Compare runs all strategies over all scenarios. Results are ordered by scenario,
// then by strategy, regardless of Parallel.
func (r *Runner) Compare(ctx context.Context, scenarios []Scenario) ([]*sim.RunResult, error) {
	strategies := r.strategies()
	for _, name := range strategies {
		if !sim.IsValidStrategy(name) {
			return nil, fmt.Errorf("unknown allocation strategy %q", name)
		}
	}

	ctx, span := r.tracer().Start(ctx, "memsim.compare",
		oteltrace.WithAttributes(attribute.Int("memsim.scenarios", len(scenarios))))
	results := make([]*sim.RunResult, 0, len(scenarios)*len(strategies))
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			telemetry.EndSpan(span, err)
			return nil, err
		}
		runs := make([]*sim.RunResult, len(strategies))
		if r.Parallel {
			var wg sync.WaitGroup
			for i, name := range strategies {
				wg.Add(1)
				go func(i int, name string) {
					defer wg.Done()
					runs[i] = r.Run(ctx, sc, name)
				}(i, name)
			}
			wg.Wait()
		} else {
			for i, name := range strategies {
				runs[i] = r.Run(ctx, sc, name)
			}
		}
		results = append(results, runs...)
	}
	telemetry.EndSpan(span, nil)
	return results, nil
}

// Run simulates one strategy over a private copy of the scenario's jobs.
// strategy must be a valid name (see sim.IsValidStrategy).
func (r *Runner) Run(ctx context.Context, sc Scenario, strategy string) *sim.RunResult {
	_, span := r.tracer().Start(ctx, "memsim.run",
		oteltrace.WithAttributes(
			attribute.String("memsim.table", sc.Name),
			attribute.String("memsim.strategy", strategy),
		))

	s := sim.NewSimulator(sim.CloneJobs(sc.Jobs), sim.NewAllocationStrategy(strategy), r.Config,
		trace.TraceConfig{Level: r.TraceLevel})
	s.Run()

	result := s.RunResult(sc.Name, strategy)
	result.RunID = idgen.New()
	logrus.Infof("Run %s: table=%s strategy=%s admissions=%d rejections=%d memory=%d/%d",
		result.RunID, sc.Name, strategy, result.Metrics.Admissions, result.Metrics.Rejections,
		result.Metrics.FinalMemoryUsed, r.Config.MemoryLimit)

	span.SetAttributes(
		attribute.String("memsim.run_id", result.RunID),
		attribute.Int("memsim.admissions", result.Metrics.Admissions),
		attribute.Int("memsim.rejections", result.Metrics.Rejections),
		attribute.Int("memsim.cross_promotions", result.Metrics.CrossPromotions),
		attribute.Int64("memsim.final_memory_used", result.Metrics.FinalMemoryUsed),
		attribute.Int64("memsim.final_clock", result.Metrics.FinalClock),
	)
	telemetry.EndSpan(span, nil)
	return result
}
