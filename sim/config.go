package sim

const (
	DefaultMemoryLimit int64 = 20 * 1024 // total memory in bytes (20 KiB)
	DefaultPageSize    int64 = 1024      // page size in bytes, carried but not used by admission
)

// MemoryConfig groups the memory parameters of a run.
type MemoryConfig struct {
	MemoryLimit     int64 `json:"memory_limit"`      // total memory budget in bytes (must be > 0)
	PageSize        int64 `json:"page_size"`         // page size in bytes (must be > 0, unused by strategies)
	ReleaseOnExpiry bool  `json:"release_on_expiry"` // free a job's charged memory and mark it Done once its window elapses
}

// DefaultMemoryConfig returns the fixed 20 KiB / 1 KiB configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		MemoryLimit: DefaultMemoryLimit,
		PageSize:    DefaultPageSize,
	}
}

// MemoryState is the read view handed to an AllocationStrategy on every tick.
// Jobs is the run's full table; strategies may set State on the slot they select.
type MemoryState struct {
	Jobs       []*Job
	MemoryUsed int64
	Config     MemoryConfig
}

// Free returns the bytes still available under the limit.
func (s *MemoryState) Free() int64 {
	return s.Config.MemoryLimit - s.MemoryUsed
}
