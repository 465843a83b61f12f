package trace

// TraceLevel selects what a run records.
type TraceLevel string

const (
	TraceLevelNone      TraceLevel = "none"      // record nothing
	TraceLevelDecisions TraceLevel = "decisions" // one record per strategy call
)

// IsValidTraceLevel accepts "none", "decisions" and the empty string (same as none).
func IsValidTraceLevel(level string) bool {
	switch TraceLevel(level) {
	case "", TraceLevelNone, TraceLevelDecisions:
		return true
	}
	return false
}

type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether the simulator should allocate a SimulationTrace at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace is the decision log of one run, in call order.
type SimulationTrace struct {
	Config     TraceConfig
	Admissions []AdmissionRecord
}

func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{Config: config}
}

// RecordAdmission appends one strategy verdict.
func (st *SimulationTrace) RecordAdmission(record AdmissionRecord) {
	st.Admissions = append(st.Admissions, record)
}
