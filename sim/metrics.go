// Tracks run-wide statistics such as admissions, rejections and memory high-water mark.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about a run for final reporting.
type Metrics struct {
	Admissions      int   `json:"admissions"`       // strategy calls that returned true
	Rejections      int   `json:"rejections"`       // strategy calls that returned false
	CrossPromotions int   `json:"cross_promotions"` // admissions whose slot was another job
	PeakMemoryUsed  int64 `json:"peak_memory_used"`
	FinalClock      int64 `json:"final_clock"`
	FinalMemoryUsed int64 `json:"final_memory_used"`
	ReleasedBytes   int64 `json:"released_bytes"` // only non-zero with ReleaseOnExpiry
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordAdmission(job, slot *Job, memoryUsed int64) {
	m.Admissions++
	if slot != nil && slot != job {
		m.CrossPromotions++
	}
	if memoryUsed > m.PeakMemoryUsed {
		m.PeakMemoryUsed = memoryUsed
	}
}

// Print writes the aggregated metrics in a human-readable block.
func (m *Metrics) Print(w io.Writer, cfg MemoryConfig) {
	_, _ = fmt.Fprintln(w, "=== Simulation Metrics ===")
	_, _ = fmt.Fprintf(w, "Admissions           : %d\n", m.Admissions)
	_, _ = fmt.Fprintf(w, "Rejections           : %d\n", m.Rejections)
	_, _ = fmt.Fprintf(w, "Cross Promotions     : %d\n", m.CrossPromotions)
	_, _ = fmt.Fprintf(w, "Peak Memory Used     : %d/%d bytes\n", m.PeakMemoryUsed, cfg.MemoryLimit)
	_, _ = fmt.Fprintf(w, "Final Memory Used    : %d bytes\n", m.FinalMemoryUsed)
	_, _ = fmt.Fprintf(w, "Final Clock          : %d s\n", m.FinalClock)
	if cfg.ReleaseOnExpiry {
		_, _ = fmt.Fprintf(w, "Released             : %d bytes\n", m.ReleasedBytes)
	}
}
