// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
)

// Simulator is the core object that holds the simulated clock, memory accounting and the job loop.
type Simulator struct {
	// Clock is the current simulated second; it is carried from one job to the next.
	Clock int64
	// MemoryUsed only grows in the default model; see MemoryConfig.ReleaseOnExpiry.
	MemoryUsed int64
	Config     MemoryConfig
	// Jobs in table order. The simulator and the active strategy mutate State in place,
	// so callers comparing strategies must hand each simulator its own copy (CloneJobs).
	Jobs     []*Job
	Strategy AllocationStrategy
	// Trace is nil unless decision tracing was requested.
	Trace   *trace.SimulationTrace
	Metrics *Metrics
}

// NewSimulator creates a Simulator over jobs. The jobs slice is used as-is.
func NewSimulator(jobs []*Job, strategy AllocationStrategy, cfg MemoryConfig, traceCfg trace.TraceConfig) *Simulator {
	s := &Simulator{
		Clock:      0,
		MemoryUsed: 0,
		Config:     cfg,
		Jobs:       jobs,
		Strategy:   strategy,
		Metrics:    NewMetrics(),
	}
	if traceCfg.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceCfg)
	}
	return s
}

// Run evaluates every job once, in table order.
func (sim *Simulator) Run() {
	for _, job := range sim.Jobs {
		sim.processJob(job)
	}
	sim.Metrics.FinalClock = sim.Clock
	sim.Metrics.FinalMemoryUsed = sim.MemoryUsed
	logrus.Infof("[tick %07d] Simulation ended, memory used %d/%d", sim.Clock, sim.MemoryUsed, sim.Config.MemoryLimit)
}

// processJob walks the job's execution window one tick at a time, asking the strategy for
// admission on every tick. The first rejection puts the job to sleep and ends its window.
func (sim *Simulator) processJob(job *Job) {
	if job.StartTime > sim.Clock {
		logrus.Debugf("[tick %07d] Idle until job %d starts at %d", sim.Clock, job.ID, job.StartTime)
		sim.Clock = job.StartTime
	}

	var charged int64
	for sim.Clock < job.EndTime() {
		state := &MemoryState{Jobs: sim.Jobs, MemoryUsed: sim.MemoryUsed, Config: sim.Config}
		admitted, slot := sim.Strategy.Admit(job, state)
		sim.recordDecision(job, admitted, slot)

		if !admitted {
			job.State = StateSleep
			sim.Metrics.Rejections++
			logrus.Debugf("[tick %07d] Job %d rejected (size=%d, used=%d)", sim.Clock, job.ID, job.Size, sim.MemoryUsed)
			return
		}

		sim.MemoryUsed += job.Size
		charged += job.Size
		job.State = StateRunning
		sim.Metrics.recordAdmission(job, slot, sim.MemoryUsed)
		logrus.Debugf("[tick %07d] Job %d admitted (size=%d, used=%d)", sim.Clock, job.ID, job.Size, sim.MemoryUsed)

		sim.Clock++
	}

	if sim.Config.ReleaseOnExpiry && charged > 0 {
		sim.MemoryUsed -= charged
		sim.Metrics.ReleasedBytes += charged
		job.State = StateDone
		logrus.Debugf("[tick %07d] Job %d done, released %d bytes", sim.Clock, job.ID, charged)
	}
}

func (sim *Simulator) recordDecision(job *Job, admitted bool, slot *Job) {
	if sim.Trace == nil {
		return
	}
	record := trace.AdmissionRecord{
		JobID:      job.ID,
		Clock:      sim.Clock,
		Admitted:   admitted,
		MemoryUsed: sim.MemoryUsed,
	}
	if slot != nil {
		record.SlotID = slot.ID
		record.HasSlot = true
	} else if admitted {
		record.SlotID = job.ID
	}
	sim.Trace.RecordAdmission(record)
}

// Results returns the (id, state) pairs of all jobs in table order.
func (sim *Simulator) Results() []JobResult {
	results := make([]JobResult, len(sim.Jobs))
	for i, job := range sim.Jobs {
		results[i] = JobResult{ID: job.ID, State: job.State}
	}
	return results
}

// RunningFootprint is the summed size of all jobs currently marked Running.
func (sim *Simulator) RunningFootprint() int64 {
	var total int64
	for _, job := range sim.Jobs {
		if job.State == StateRunning {
			total += job.Size
		}
	}
	return total
}
