package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaive_JobFits_Admitted(t *testing.T) {
	jobs := jobsFromLines(t, "1 0 5120 3 Sleep")
	admitted, slot := (&Naive{}).Admit(jobs[0], memState(jobs, 0))
	assert.True(t, admitted)
	assert.Nil(t, slot, "naive never selects a slot")
}

func TestNaive_ExactlyFillsLimit_Admitted(t *testing.T) {
	jobs := jobsFromLines(t, "1 0 5120 1 Sleep")
	admitted, _ := (&Naive{}).Admit(jobs[0], memState(jobs, DefaultMemoryLimit-5120))
	assert.True(t, admitted, "used + size == limit must fit")
}

func TestNaive_JobDoesNotFit_Rejected(t *testing.T) {
	// GIVEN 5120 bytes in use and a 20480-byte job
	jobs := jobsFromLines(t, "1 0 5120 3 Running", "2 0 20480 1 Sleep")

	// WHEN naive evaluates job 2
	admitted, _ := (&Naive{}).Admit(jobs[1], memState(jobs, 5120))

	// THEN it is rejected and no state changes
	assert.False(t, admitted)
	assert.Equal(t, StateSleep, jobs[1].State)
}

func TestNaive_SizeNearMaxInt64_Rejected(t *testing.T) {
	// GIVEN one byte in use and a job whose size would wrap used+size
	jobs := []*Job{NewJob(1, 0, math.MaxInt64, 1, StateSleep)}

	// WHEN naive evaluates it
	admitted, _ := (&Naive{}).Admit(jobs[0], memState(jobs, 1))

	// THEN it does not fit
	assert.False(t, admitted)
}

func TestBestFit_PromotesSmallestEligibleSlot_NotEvaluatedJob(t *testing.T) {
	// GIVEN sleeping jobs of 1024 and 2048 bytes and a 512-byte job under evaluation
	jobs := jobsFromLines(t, "1 0 1024 1 Sleep", "2 0 2048 1 Sleep", "3 0 512 1 Waiting")

	// WHEN best-fit evaluates the 512-byte job with nothing in use
	admitted, slot := (&BestFit{}).Admit(jobs[2], memState(jobs, 0))

	// THEN the 1024-byte job is promoted, not the evaluated one
	require.True(t, admitted)
	require.NotNil(t, slot)
	assert.Equal(t, 1, slot.ID)
	assert.Equal(t, StateRunning, jobs[0].State)
	assert.Equal(t, StateSleep, jobs[1].State)
	assert.Equal(t, StateWaiting, jobs[2].State, "strategy must not touch the evaluated job")
}

func TestFitStrategies_SelectDifferentSlots(t *testing.T) {
	table := []string{"1 0 512 1 Waiting", "2 0 2048 1 Sleep", "3 0 1024 1 Sleep", "4 0 4096 1 Sleep"}
	tests := []struct {
		name     string
		strategy AllocationStrategy
		wantSlot int
	}{
		{"best-fit picks smallest", &BestFit{}, 3},
		{"first-fit picks earliest", &FirstFit{}, 2},
		{"worst-fit picks largest", &WorstFit{}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := jobsFromLines(t, table...)
			admitted, slot := tt.strategy.Admit(jobs[0], memState(jobs, 0))
			require.True(t, admitted)
			require.NotNil(t, slot)
			assert.Equal(t, tt.wantSlot, slot.ID)
			assert.Equal(t, StateRunning, slot.State)
		})
	}
}

func TestFitStrategies_TiesResolveToFirstEncountered(t *testing.T) {
	table := []string{"1 0 512 1 Waiting", "2 0 2048 1 Sleep", "3 0 2048 1 Sleep"}
	for _, s := range []AllocationStrategy{&BestFit{}, &FirstFit{}, &WorstFit{}} {
		jobs := jobsFromLines(t, table...)
		_, slot := s.Admit(jobs[0], memState(jobs, 0))
		require.NotNil(t, slot, "%T", s)
		assert.Equal(t, 2, slot.ID, "%T", s)
		assert.Equal(t, StateSleep, jobs[2].State, "%T must promote exactly one slot", s)
	}
}

func TestFitFilter_ExcludesIneligibleCandidates(t *testing.T) {
	// Evaluated job: start 5, size 2048, used 16384 → 4096 free.
	tests := []struct {
		name      string
		candidate string
	}{
		{"arrives later", "2 6 2048 1 Sleep"},
		{"not sleeping", "2 0 2048 1 Running"},
		{"waiting is not sleeping", "2 0 2048 1 Waiting"},
		{"smaller than evaluated job", "2 0 1024 1 Sleep"},
		{"larger than free memory", "2 0 8192 1 Sleep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []AllocationStrategy{&BestFit{}, &FirstFit{}, &WorstFit{}} {
				jobs := jobsFromLines(t, "1 5 2048 1 Running", tt.candidate)
				before := jobs[1].State
				admitted, slot := s.Admit(jobs[0], memState(jobs, 16384))
				assert.False(t, admitted, "%T", s)
				assert.Nil(t, slot, "%T", s)
				assert.Equal(t, before, jobs[1].State, "%T must not touch an ineligible job", s)
			}
		})
	}
}

func TestFitFilter_BoundaryCandidateIsEligible(t *testing.T) {
	// GIVEN a candidate exactly as large as both the evaluated job and the free memory,
	// arriving at the same second
	jobs := jobsFromLines(t, "1 5 4096 1 Running", "2 5 4096 1 Sleep")

	for _, s := range []AllocationStrategy{&BestFit{}, &FirstFit{}, &WorstFit{}} {
		jobs[1].State = StateSleep
		admitted, slot := s.Admit(jobs[0], memState(jobs, DefaultMemoryLimit-4096))
		require.True(t, admitted, "%T", s)
		assert.Equal(t, 2, slot.ID, "%T", s)
	}
}

func TestFitStrategies_PageSizeIgnored(t *testing.T) {
	// GIVEN two configurations differing only in page size
	for _, pageSize := range []int64{1, 1024, 1 << 20} {
		jobs := jobsFromLines(t, "1 0 3000 1 Sleep", "2 0 5000 1 Sleep")
		state := &MemoryState{Jobs: jobs, Config: MemoryConfig{MemoryLimit: DefaultMemoryLimit, PageSize: pageSize}}
		_, slot := (&BestFit{}).Admit(jobs[0], state)
		require.NotNil(t, slot)
		assert.Equal(t, 1, slot.ID, "page size %d", pageSize)
	}
}

func TestNewAllocationStrategy_ValidNames(t *testing.T) {
	tests := []struct {
		name string
		want AllocationStrategy
	}{
		{"", &Naive{}},
		{"naive", &Naive{}},
		{"best-fit", &BestFit{}},
		{"first-fit", &FirstFit{}},
		{"worst-fit", &WorstFit{}},
	}
	for _, tt := range tests {
		assert.IsType(t, tt.want, NewAllocationStrategy(tt.name), "name %q", tt.name)
	}
}

func TestNewAllocationStrategy_UnknownName_Panics(t *testing.T) {
	assert.Panics(t, func() { NewAllocationStrategy("next-fit") })
}

func TestStrategyDisplayName(t *testing.T) {
	assert.Equal(t, "Naive", StrategyDisplayName("naive"))
	assert.Equal(t, "Naive", StrategyDisplayName(""))
	assert.Equal(t, "Best-Fit", StrategyDisplayName("best-fit"))
	assert.Equal(t, "First-Fit", StrategyDisplayName("first-fit"))
	assert.Equal(t, "Worst-Fit", StrategyDisplayName("worst-fit"))
}
