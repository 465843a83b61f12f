// Package sim provides the core discrete-time simulation engine for memsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - job.go: Job entity and its state values (Sleep, Running, plus Waiting/Done)
//   - admission.go: AllocationStrategy and the Naive, Best-Fit, First-Fit, Worst-Fit policies
//   - simulator.go: the per-tick admission loop, clock and memory accounting
//
// # Architecture
//
// The sim package defines the core types; collaborators live in sub-packages:
//   - sim/workload/: job table loading (whitespace-delimited records)
//   - sim/trace/: per-tick admission decision records
//   - sim/compare/: comparative runs of several strategies over independent copies
//   - sim/report/: result sinks (text, JSON export)
//   - sim/telemetry/: OpenTelemetry span export for comparative runs
//
// # Key Interfaces
//
//   - AllocationStrategy: decide whether the job under evaluation can be admitted this tick
//
// Memory is never released in the default model. MemoryConfig.ReleaseOnExpiry
// opts into the Done state, which frees the memory a job was charged once its
// execution interval has fully elapsed.
package sim
