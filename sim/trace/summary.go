package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	AdmittedCount   int
	RejectedCount   int
	CrossPromotions int         // admissions that promoted a job other than the evaluated one
	PeakMemoryUsed  int64       // highest pre-decision memory observed
	DecisionsPerJob map[int]int // job ID → strategy calls made while evaluating it
	FirstClock      int64       // clock of the first decision (0 if none)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DecisionsPerJob: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for i, a := range st.Admissions {
		if i == 0 {
			summary.FirstClock = a.Clock
		}
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
		}
		if a.CrossPromotion() {
			summary.CrossPromotions++
		}
		if a.MemoryUsed > summary.PeakMemoryUsed {
			summary.PeakMemoryUsed = a.MemoryUsed
		}
		summary.DecisionsPerJob[a.JobID]++
	}
	return summary
}
