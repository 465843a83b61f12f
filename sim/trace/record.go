// Package trace provides per-tick admission decision recording for strategy analysis.
// It does not import sim/ and only stores plain data.
package trace

// AdmissionRecord captures a single strategy call made by the simulation loop.
type AdmissionRecord struct {
	JobID      int   // job under evaluation
	Clock      int64 // simulated second of the call
	Admitted   bool
	SlotID     int   // job promoted by a fit strategy; equals JobID for Naive admissions
	HasSlot    bool  // false for Naive and for rejections
	MemoryUsed int64 // memory in use before the verdict was applied
}

// CrossPromotion reports whether the strategy promoted a job other than the evaluated one.
func (r AdmissionRecord) CrossPromotion() bool {
	return r.Admitted && r.HasSlot && r.SlotID != r.JobID
}
