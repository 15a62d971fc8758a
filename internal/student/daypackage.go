package student

import (
	"strings"
	"time"
)

// DayPackage is the mnemonic for which weekdays a student's class occurs on.
type DayPackage string

const (
	DayPackageMWF DayPackage = "MWF"      // Monday, Wednesday, Friday
	DayPackageTTS DayPackage = "TTS"      // Tuesday, Thursday, Saturday
	DayPackageAll DayPackage = "All days" // every day
)

// ExpectedOn reports whether a class is expected on the given weekday.
// Sundays are excluded globally unless the school enables them. An empty or
// unknown daypackage is treated as "expected every day", the permissive
// default the upstream data model relies on.
func (d DayPackage) ExpectedOn(day time.Weekday, includeSundays bool) bool {
	if day == time.Sunday && !includeSundays {
		return false
	}

	switch {
	case strings.EqualFold(string(d), string(DayPackageMWF)):
		return day == time.Monday || day == time.Wednesday || day == time.Friday
	case strings.EqualFold(string(d), string(DayPackageTTS)):
		return day == time.Tuesday || day == time.Thursday || day == time.Saturday
	default:
		return true
	}
}

// ExpectedDaysIn counts expected class days in [from, to] inclusive.
func (d DayPackage) ExpectedDaysIn(from, to time.Time, includeSundays bool) int {
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if d.ExpectedOn(day.Weekday(), includeSundays) {
			count++
		}
	}
	return count
}
