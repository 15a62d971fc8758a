package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekInput() EngineInput {
	snap := testSnapshot()
	snap.MonthlyRate["1 Hour"] = 300

	return EngineInput{
		TeacherID: "teacher-1",
		From:      absFrom, // Mon 2025-03-03
		To:        absTo,   // Sun 2025-03-09
		Students:  []StudentSchedule{mwfStudent()},
		Windows:   map[string][]AssignmentWindow{},
		Events:    map[string][]time.Time{},
		Excused:   map[string]bool{},
		Rates:     snap,
	}
}

func TestCalculateSalary_WeekWithLatenessAndAbsence(t *testing.T) {
	in := weekInput()
	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 3, 14, 5, 0, 0, time.UTC), // 5 min late, Tier 1
		time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC), // on time
		// Friday 3/7 missed
	}

	res := CalculateSalary(in)

	// 3 expected MWF days in range, so dailyRate = 300/3 = 100.
	assert.InDelta(t, 200, res.BaseSalary, 1e-9)
	assert.InDelta(t, 3, res.LatenessDeduction, 1e-9) // 30 * 10%
	assert.InDelta(t, 25, res.AbsenceDeduction, 1e-9)
	assert.InDelta(t, 172, res.TotalSalary, 1e-9)
	assert.False(t, res.HasTeacherChanges)

	require.Len(t, res.Lateness, 1)
	assert.Equal(t, "Tier 1", res.Lateness[0].Tier)
	require.Len(t, res.Absences, 1)
	assert.Equal(t, "2025-03-07", res.Absences[0].Date)

	require.Len(t, res.Students, 1)
	assert.Equal(t, 2, res.Students[0].WorkedDays)
	assert.Equal(t, 2, res.Summary.TeachingDays)
}

func TestCalculateSalary_NeverNegative(t *testing.T) {
	in := weekInput()
	// No events at all: three absences and no earnings.

	res := CalculateSalary(in)

	assert.Zero(t, res.BaseSalary)
	assert.InDelta(t, 75, res.AbsenceDeduction, 1e-9)
	assert.Zero(t, res.TotalSalary)
	assert.Zero(t, res.Summary.NetSalary)
}

func TestCalculateSalary_BonusesAdded(t *testing.T) {
	in := weekInput()
	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC),
	}
	in.Bonuses = 50

	res := CalculateSalary(in)

	assert.InDelta(t, 300, res.BaseSalary, 1e-9)
	assert.InDelta(t, 350, res.TotalSalary, 1e-9)
}

func TestCalculateSalary_ReassignmentWindowPaysPartialRange(t *testing.T) {
	in := weekInput()
	cutoff := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	in.Windows["st-1"] = []AssignmentWindow{
		{StudentID: "st-1", StartAt: absFrom, EndAt: &cutoff},
	}
	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC), // after handoff
	}

	res := CalculateSalary(in)

	assert.True(t, res.HasTeacherChanges)
	require.Len(t, res.Students, 1)
	assert.Equal(t, 1, res.Students[0].WorkedDays)
	assert.InDelta(t, 100, res.BaseSalary, 1e-9)
}

func TestCalculateSalary_DailyRateCappedAt22Days(t *testing.T) {
	in := weekInput()
	in.From = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	in.To = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	st := mwfStudent()
	st.DayPackage = "All days"
	in.Students = []StudentSchedule{st}

	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
	}
	// 26 non-Sunday days in March 2025, so the divisor caps at 22.
	res := CalculateSalary(in)

	require.Len(t, res.Students, 1)
	assert.InDelta(t, 300.0/22.0, res.Students[0].DailyRate, 1e-9)
}

func TestCalculateSalary_Idempotent(t *testing.T) {
	in := weekInput()
	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 3, 14, 12, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 13, 58, 0, 0, time.UTC),
	}

	first := CalculateSalary(in)
	second := CalculateSalary(in)

	assert.Equal(t, first, second)
}

func TestCalculateSalary_MidnightSpilloverCountsOnce(t *testing.T) {
	in := weekInput()
	in.From = absFrom                // Mon 2025-03-03
	in.To = absFrom.AddDate(0, 0, 1) // Tue 2025-03-04

	st := mwfStudent()
	st.DayPackage = "All days"
	st.TimeSlot = "23:30"
	in.Students = []StudentSchedule{st}

	// Monday's late-night class delivers the link after midnight; Tuesday's
	// class never happens.
	in.Events["st-1"] = []time.Time{
		time.Date(2025, 3, 4, 0, 10, 0, 0, time.UTC),
	}

	res := CalculateSalary(in)

	require.Len(t, res.Students, 1)
	assert.Equal(t, 1, res.Students[0].WorkedDays)
	assert.Equal(t, 1, res.Summary.TeachingDays)

	// Monday is a worked, late day; never also an absence.
	require.Len(t, res.Lateness, 1)
	assert.Equal(t, "2025-03-03", res.Lateness[0].Date)
	assert.Equal(t, 40, res.Lateness[0].Minutes)
	assert.Equal(t, TierBeyondMax, res.Lateness[0].Tier)

	// Tuesday is the missed class.
	require.Len(t, res.Absences, 1)
	assert.Equal(t, "2025-03-04", res.Absences[0].Date)
}

func TestCalculateSalary_NoStudentsZeroResult(t *testing.T) {
	in := weekInput()
	in.Students = nil

	res := CalculateSalary(in)

	assert.Zero(t, res.TotalSalary)
	assert.Empty(t, res.Students)
	assert.Empty(t, res.Absences)
}
