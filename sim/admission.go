package sim

import "fmt"

// AllocationStrategy decides whether the job under evaluation can be admitted this tick.
// Called once per simulated second by the Simulator. On admitted=true the Simulator charges
// job.Size to MemoryUsed and marks job Running.
//
// Fit strategies answer by looking for a sleeping slot among all jobs; the chosen slot is
// marked Running by the strategy itself and returned so it can be traced. The slot is not
// necessarily the evaluated job.
type AllocationStrategy interface {
	Admit(job *Job, state *MemoryState) (admitted bool, slot *Job)
}

// Naive admits iff the job fits in the remaining memory. Other jobs are not consulted.
// Compared against Free() so huge sizes cannot wrap MemoryUsed+Size.
type Naive struct{}

func (n *Naive) Admit(job *Job, state *MemoryState) (bool, *Job) {
	return job.Size <= state.Free(), nil
}

// eligibleSlot reports whether j can be promoted while evaluating job.
// The candidate must have arrived no later than job, still be sleeping, be at least as
// large as job and fit in the free memory.
func eligibleSlot(j, job *Job, state *MemoryState) bool {
	return j.StartTime <= job.StartTime &&
		j.State == StateSleep &&
		j.Size >= job.Size &&
		j.Size <= state.Free()
}

// selectSlot scans the table in order and keeps the eligible job preferred by better.
// better must be strict so ties resolve to the first one encountered.
func selectSlot(job *Job, state *MemoryState, better func(candidate, current *Job) bool) *Job {
	var slot *Job
	for _, j := range state.Jobs {
		if !eligibleSlot(j, job, state) {
			continue
		}
		if slot == nil || better(j, slot) {
			slot = j
		}
	}
	return slot
}

// promote marks the slot Running and turns the selection into an admission verdict.
func promote(slot *Job) (bool, *Job) {
	if slot == nil {
		return false, nil
	}
	slot.State = StateRunning
	return true, slot
}

// BestFit promotes the smallest eligible slot.
type BestFit struct{}

func (b *BestFit) Admit(job *Job, state *MemoryState) (bool, *Job) {
	return promote(selectSlot(job, state, func(candidate, current *Job) bool {
		return candidate.Size < current.Size
	}))
}

// FirstFit promotes the first eligible slot in table order.
type FirstFit struct{}

func (f *FirstFit) Admit(job *Job, state *MemoryState) (bool, *Job) {
	for _, j := range state.Jobs {
		if eligibleSlot(j, job, state) {
			return promote(j)
		}
	}
	return false, nil
}

// WorstFit promotes the largest eligible slot.
type WorstFit struct{}

func (w *WorstFit) Admit(job *Job, state *MemoryState) (bool, *Job) {
	return promote(selectSlot(job, state, func(candidate, current *Job) bool {
		return candidate.Size > current.Size
	}))
}

// NewAllocationStrategy creates an allocation strategy by name.
// Valid names are defined in ValidStrategies (bundle.go).
// An empty string defaults to Naive (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewAllocationStrategy(name string) AllocationStrategy {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown allocation strategy %q", name))
	}
	switch name {
	case "", "naive":
		return &Naive{}
	case "best-fit":
		return &BestFit{}
	case "first-fit":
		return &FirstFit{}
	case "worst-fit":
		return &WorstFit{}
	default:
		panic(fmt.Sprintf("unhandled allocation strategy %q", name))
	}
}

// StrategyDisplayName returns the heading used in reports, e.g. "Best-Fit".
func StrategyDisplayName(name string) string {
	switch name {
	case "", "naive":
		return "Naive"
	case "best-fit":
		return "Best-Fit"
	case "first-fit":
		return "First-Fit"
	case "worst-fit":
		return "Worst-Fit"
	default:
		return name
	}
}
