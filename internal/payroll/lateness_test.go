package payroll

import (
	"testing"
	"time"

	"go-madrasa/internal/rates"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() rates.Snapshot {
	return rates.Snapshot{
		LatenessBase:     map[string]float64{},
		AbsenceBase:      map[string]float64{},
		MonthlyRate:      map[string]float64{},
		ExcusedThreshold: 3,
		Tiers: []rates.Tier{
			{Tier: 1, StartMinute: 4, EndMinute: 10, Percent: 10},
			{Tier: 2, StartMinute: 11, EndMinute: 20, Percent: 25},
			{Tier: 3, StartMinute: 21, EndMinute: 30, Percent: 50},
		},
	}
}

func TestComputeLateness(t *testing.T) {
	snap := testSnapshot()
	scheduled := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		actual        time.Time
		wantMinutes   int
		wantDeduction float64
		wantTier      string
	}{
		{
			name:          "on time",
			actual:        scheduled,
			wantMinutes:   0,
			wantDeduction: 0,
			wantTier:      TierExcused,
		},
		{
			name:          "early start clamps to zero",
			actual:        scheduled.Add(-5 * time.Minute),
			wantMinutes:   0,
			wantDeduction: 0,
			wantTier:      TierExcused,
		},
		{
			name:          "within excused threshold",
			actual:        scheduled.Add(3 * time.Minute),
			wantMinutes:   3,
			wantDeduction: 0,
			wantTier:      TierExcused,
		},
		{
			name:          "first tier",
			actual:        scheduled.Add(7 * time.Minute),
			wantMinutes:   7,
			wantDeduction: 3, // 30 * 10%
			wantTier:      "Tier 1",
		},
		{
			name:          "second tier boundary",
			actual:        scheduled.Add(11 * time.Minute),
			wantMinutes:   11,
			wantDeduction: 7.5, // 30 * 25%
			wantTier:      "Tier 2",
		},
		{
			name:          "third tier",
			actual:        scheduled.Add(25 * time.Minute),
			wantMinutes:   25,
			wantDeduction: 15, // 30 * 50%
			wantTier:      "Tier 3",
		},
		{
			name:          "beyond max tier takes full base",
			actual:        scheduled.Add(45 * time.Minute),
			wantMinutes:   45,
			wantDeduction: 30,
			wantTier:      TierBeyondMax,
		},
		{
			name:          "sub-minute delay rounds",
			actual:        scheduled.Add(3*time.Minute + 40*time.Second),
			wantMinutes:   4,
			wantDeduction: 3,
			wantTier:      "Tier 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, deduction, tier := ComputeLateness(scheduled, tt.actual, rates.DefaultLatenessBase, snap)
			assert.Equal(t, tt.wantMinutes, minutes)
			assert.InDelta(t, tt.wantDeduction, deduction, 1e-9)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestComputeLateness_DeductionMonotonic(t *testing.T) {
	snap := testSnapshot()
	scheduled := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	prev := -1.0
	for m := 0; m <= 60; m++ {
		_, deduction, _ := ComputeLateness(scheduled, scheduled.Add(time.Duration(m)*time.Minute), rates.DefaultLatenessBase, snap)
		assert.GreaterOrEqual(t, deduction, prev, "deduction decreased at minute %d", m)
		prev = deduction
	}
}

func TestComputeLateness_GapBetweenTiersIsNotExcused(t *testing.T) {
	snap := testSnapshot()
	snap.Tiers = []rates.Tier{
		{Tier: 1, StartMinute: 4, EndMinute: 10, Percent: 10},
		{Tier: 2, StartMinute: 21, EndMinute: 30, Percent: 50},
	}
	scheduled := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	minutes, deduction, tier := ComputeLateness(scheduled, scheduled.Add(15*time.Minute), rates.DefaultLatenessBase, snap)

	assert.Equal(t, 15, minutes)
	assert.Zero(t, deduction)
	assert.Equal(t, TierUnmatched, tier)
	assert.NotEqual(t, TierExcused, tier)
}

func TestResolveEventDates(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("earliest same-day event wins", func(t *testing.T) {
		events := []time.Time{
			time.Date(2025, 3, 10, 23, 40, 0, 0, time.UTC),
			time.Date(2025, 3, 10, 23, 35, 0, 0, time.UTC),
		}
		resolved := resolveEventDates(events, "23:30", from, from)
		assert.Equal(t, events[1], resolved["2025-03-10"])
	})

	t.Run("midnight spillover resolves to the scheduled date only", func(t *testing.T) {
		events := []time.Time{
			time.Date(2025, 3, 11, 0, 15, 0, 0, time.UTC),
		}
		resolved := resolveEventDates(events, "23:30", from, to)

		assert.Equal(t, events[0], resolved["2025-03-10"])
		_, nextDay := resolved["2025-03-11"]
		assert.False(t, nextDay, "one event must not satisfy two dates")
	})

	t.Run("spillover claim leaves the next same-day event for its own date", func(t *testing.T) {
		events := []time.Time{
			time.Date(2025, 3, 11, 0, 15, 0, 0, time.UTC),
			time.Date(2025, 3, 11, 23, 45, 0, 0, time.UTC),
		}
		resolved := resolveEventDates(events, "23:30", from, to)

		assert.Equal(t, events[0], resolved["2025-03-10"])
		assert.Equal(t, events[1], resolved["2025-03-11"])
	})

	t.Run("nothing in window means no resolution", func(t *testing.T) {
		events := []time.Time{
			time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC),
		}
		resolved := resolveEventDates(events, "23:30", from, from)
		assert.Empty(t, resolved)
	})
}
