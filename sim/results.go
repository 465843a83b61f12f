package sim

import "github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"

// JobResult is the final (id, state) pair reported for one job.
type JobResult struct {
	ID    int      `json:"id"`
	State JobState `json:"state"`
}

// RunResult holds the outcome of one (table, strategy) run.
type RunResult struct {
	RunID    string                 `json:"run_id"`
	Table    string                 `json:"table"`
	Strategy string                 `json:"strategy"`
	Jobs     []JobResult            `json:"jobs"`
	Metrics  *Metrics               `json:"metrics"`
	Trace    *trace.SimulationTrace `json:"-"`
}

// RunResult packages the simulator's final state for reporting.
func (sim *Simulator) RunResult(table, strategy string) *RunResult {
	return &RunResult{
		Table:    table,
		Strategy: strategy,
		Jobs:     sim.Results(),
		Metrics:  sim.Metrics,
		Trace:    sim.Trace,
	}
}
