package sim

import (
	"strconv"
	"strings"
	"testing"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
)

var tracingOn = trace.TraceConfig{Level: trace.TraceLevelDecisions}

// jobsFromLines builds a job table from "<id> <start> <size> <interval> <state>" lines.
// Unlike the workload loader it fails the test on malformed input.
func jobsFromLines(t *testing.T, lines ...string) []*Job {
	t.Helper()
	jobs := make([]*Job, 0, len(lines))
	for _, line := range lines {
		parts := strings.Fields(line)
		if len(parts) != 5 {
			t.Fatalf("bad test line %q", line)
		}
		nums := make([]int64, 4)
		for i := 0; i < 4; i++ {
			n, err := strconv.ParseInt(parts[i], 10, 64)
			if err != nil {
				t.Fatalf("bad test line %q: %v", line, err)
			}
			nums[i] = n
		}
		jobs = append(jobs, NewJob(int(nums[0]), nums[1], nums[2], nums[3], JobState(parts[4])))
	}
	return jobs
}

// memState builds a MemoryState with the default limit.
func memState(jobs []*Job, used int64) *MemoryState {
	return &MemoryState{Jobs: jobs, MemoryUsed: used, Config: DefaultMemoryConfig()}
}

// runStrategy runs a full simulation with decision tracing on.
func runStrategy(jobs []*Job, name string, cfg MemoryConfig) *Simulator {
	s := NewSimulator(jobs, NewAllocationStrategy(name), cfg, tracingOn)
	s.Run()
	return s
}
