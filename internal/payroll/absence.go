package payroll

import (
	"time"

	"go-madrasa/internal/rates"
	"go-madrasa/internal/student"
)

const absenceReason = "No zoom link"

// AbsenceRecord is one expected class day with no delivery evidence.
type AbsenceRecord struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Date        string  `json:"date"`
	Deduction   float64 `json:"deduction"`
	Reason      string  `json:"reason"`
}

// StudentSchedule is the per-student slice of evidence the calculators need.
type StudentSchedule struct {
	ID         string
	FullName   string
	Package    string
	DayPackage student.DayPackage
	TimeSlot   string
}

// ComputeAbsences walks every date in [from, to] where the student's
// daypackage expects a class and no delivery evidence, approved permission,
// or waiver covers it. The evidence map keys are the scheduled dates events
// were resolved to (see resolveEventDates), not raw event timestamps, so a
// link sent after midnight covers the late-night class date it belongs to
// and nothing else. A date present in the map is scored by the lateness
// calculator instead; the two never overlap for one (student, date).
func ComputeAbsences(
	st StudentSchedule,
	from, to time.Time,
	evidence map[string]time.Time,
	excused map[string]bool,
	snap rates.Snapshot,
) []AbsenceRecord {
	base := snap.AbsenceBaseFor(st.Package)

	var records []AbsenceRecord
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !st.DayPackage.ExpectedOn(day.Weekday(), snap.IncludeSundays) {
			continue
		}

		key := day.Format("2006-01-02")
		if _, covered := evidence[key]; covered || excused[key] {
			continue
		}

		records = append(records, AbsenceRecord{
			StudentID:   st.ID,
			StudentName: st.FullName,
			Date:        key,
			Deduction:   base,
			Reason:      absenceReason,
		})
	}

	return records
}
