package payroll

import (
	"testing"
	"time"

	"go-madrasa/internal/rates"
	"go-madrasa/internal/student"

	"github.com/stretchr/testify/assert"
)

// 2025-03-03 is a Monday.
var (
	absFrom = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	absTo   = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
)

func mwfStudent() StudentSchedule {
	return StudentSchedule{
		ID:         "st-1",
		FullName:   "Ali",
		Package:    "1 Hour",
		DayPackage: student.DayPackage("MWF"),
		TimeSlot:   "14:00",
	}
}

func TestComputeAbsences_AllExpectedDaysMissed(t *testing.T) {
	records := ComputeAbsences(mwfStudent(), absFrom, absTo, nil, nil, testSnapshot())

	assert.Len(t, records, 3)
	dates := []string{records[0].Date, records[1].Date, records[2].Date}
	assert.Equal(t, []string{"2025-03-03", "2025-03-05", "2025-03-07"}, dates)
	for _, rec := range records {
		assert.Equal(t, rates.DefaultAbsenceBase, rec.Deduction)
		assert.Equal(t, "No zoom link", rec.Reason)
	}
}

func TestComputeAbsences_EvidenceSuppressesAbsence(t *testing.T) {
	evidence := map[string]time.Time{
		"2025-03-05": time.Date(2025, 3, 5, 14, 20, 0, 0, time.UTC),
	}

	records := ComputeAbsences(mwfStudent(), absFrom, absTo, evidence, nil, testSnapshot())

	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEqual(t, "2025-03-05", rec.Date)
	}
}

func TestComputeAbsences_ExcusedDateSkipped(t *testing.T) {
	excused := map[string]bool{"2025-03-03": true}

	records := ComputeAbsences(mwfStudent(), absFrom, absTo, nil, excused, testSnapshot())

	assert.Len(t, records, 2)
	assert.Equal(t, "2025-03-05", records[0].Date)
}

func TestComputeAbsences_SundayExcludedByDefault(t *testing.T) {
	st := mwfStudent()
	st.DayPackage = student.DayPackage("All days")

	records := ComputeAbsences(st, absFrom, absTo, nil, nil, testSnapshot())

	// Mon..Sat, Sunday the 9th excluded.
	assert.Len(t, records, 6)
	for _, rec := range records {
		assert.NotEqual(t, "2025-03-09", rec.Date)
	}
}

func TestComputeAbsences_SundayIncludedWhenEnabled(t *testing.T) {
	st := mwfStudent()
	st.DayPackage = student.DayPackage("All days")
	snap := testSnapshot()
	snap.IncludeSundays = true

	records := ComputeAbsences(st, absFrom, absTo, nil, nil, snap)

	assert.Len(t, records, 7)
}

func TestComputeAbsences_ConfiguredBaseOverridesDefault(t *testing.T) {
	snap := testSnapshot()
	snap.AbsenceBase["1 Hour"] = 40

	records := ComputeAbsences(mwfStudent(), absFrom, absTo, nil, nil, snap)

	assert.NotEmpty(t, records)
	assert.Equal(t, 40.0, records[0].Deduction)
}
