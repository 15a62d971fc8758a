package student_test

import (
	"testing"
	"time"

	"go-madrasa/internal/student"

	"github.com/stretchr/testify/assert"
)

func TestDayPackage_ExpectedOn(t *testing.T) {
	cases := []struct {
		name           string
		pkg            student.DayPackage
		day            time.Weekday
		includeSundays bool
		expected       bool
	}{
		{"MWF on Monday", student.DayPackageMWF, time.Monday, false, true},
		{"MWF on Wednesday", student.DayPackageMWF, time.Wednesday, false, true},
		{"MWF on Friday", student.DayPackageMWF, time.Friday, false, true},
		{"MWF on Tuesday", student.DayPackageMWF, time.Tuesday, false, false},
		{"TTS on Tuesday", student.DayPackageTTS, time.Tuesday, false, true},
		{"TTS on Saturday", student.DayPackageTTS, time.Saturday, false, true},
		{"TTS on Monday", student.DayPackageTTS, time.Monday, false, false},
		{"All days on Monday", student.DayPackageAll, time.Monday, false, true},
		{"All days on Sunday excluded", student.DayPackageAll, time.Sunday, false, false},
		{"All days on Sunday included", student.DayPackageAll, time.Sunday, true, true},
		{"empty daypackage is always expected", student.DayPackage(""), time.Thursday, false, true},
		{"empty daypackage still skips Sunday", student.DayPackage(""), time.Sunday, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.pkg.ExpectedOn(tc.day, tc.includeSundays))
		})
	}
}

func TestDayPackage_ExpectedDaysIn(t *testing.T) {
	// 2025-06-02 is a Monday; a full Mon..Sun week follows.
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	assert.Equal(t, 3, student.DayPackageMWF.ExpectedDaysIn(from, to, false))
	assert.Equal(t, 3, student.DayPackageTTS.ExpectedDaysIn(from, to, false))
	assert.Equal(t, 6, student.DayPackageAll.ExpectedDaysIn(from, to, false))
	assert.Equal(t, 7, student.DayPackageAll.ExpectedDaysIn(from, to, true))
}

func TestNormalizeTimeSlot(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15:30", "15:30"},
		{"3:30 PM", "15:30"},
		{"3:30PM", "15:30"},
		{"09:05", "09:05"},
		{"9:05 am", "09:05"},
		{"11 PM", "23:00"},
		{"garbage", "00:00"},
		{"", "00:00"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, student.NormalizeTimeSlot(tc.in), "input %q", tc.in)
	}
}

func TestSlotOn(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := student.SlotOn(date, "3:30 PM")
	assert.Equal(t, time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC), at)
}
