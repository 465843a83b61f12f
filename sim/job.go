// Defines the Job struct that models one entry of a job table.
// Tracks start time, memory footprint, execution interval and current state.

package sim

import (
	"fmt"
)

// JobState represents the lifecycle state of a job.
type JobState string

const (
	StateSleep   JobState = "Sleep"
	StateRunning JobState = "Running"

	// Extension states. Loaders may supply Waiting as an initial state; Done is
	// only assigned when MemoryConfig.ReleaseOnExpiry is enabled.
	StateWaiting JobState = "Waiting"
	StateDone    JobState = "Done"
)

// Job models a single row of the job table.
// StartTime, Size and ExecutionInterval never change after creation;
// State is owned by the Simulator (and the active strategy) during a run.
type Job struct {
	ID                int      // Unique identifier; slice order is table order
	StartTime         int64    // Earliest simulated second the job may be considered
	Size              int64    // Memory footprint in bytes
	ExecutionInterval int64    // Consecutive seconds the job holds memory once admitted
	State             JobState // Sleep, Running (Waiting, Done for the extension)
}

// NewJob creates a Job with the given fields.
func NewJob(id int, startTime, size, executionInterval int64, state JobState) *Job {
	return &Job{
		ID:                id,
		StartTime:         startTime,
		Size:              size,
		ExecutionInterval: executionInterval,
		State:             state,
	}
}

// EndTime is the first second after the job's execution window.
func (j *Job) EndTime() int64 {
	return j.StartTime + j.ExecutionInterval
}

// Clone returns an independent copy of the job.
func (j *Job) Clone() *Job {
	c := *j
	return &c
}

// This method returns a human-readable string representation of a Job.
func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %d, State: %s, Size: %d, StartTime: %d, Interval: %d)", j.ID, j.State, j.Size, j.StartTime, j.ExecutionInterval)
}

// CloneJobs deep-copies a job table so that a run cannot observe another run's mutations.
func CloneJobs(jobs []*Job) []*Job {
	out := make([]*Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}
