package payroll

import (
	"math"
	"sort"
	"time"

	"go-madrasa/internal/rates"
	"go-madrasa/internal/student"
)

// standardMonthDays caps the daily-rate divisor so a full calendar month is
// always treated as 22 working days.
const standardMonthDays = 22

// AssignmentWindow is one interval during which the teacher owned a student.
type AssignmentWindow struct {
	StudentID string
	StartAt   time.Time
	EndAt     *time.Time
}

// EngineInput is everything a salary run reads, fetched up front so the
// computation itself stays pure and repeatable.
type EngineInput struct {
	TeacherID string
	From      time.Time
	To        time.Time

	Students []StudentSchedule
	Windows  map[string][]AssignmentWindow
	Events   map[string][]time.Time
	Excused  map[string]bool
	Bonuses  float64
	Rates    rates.Snapshot
}

type PeriodSlice struct {
	StartAt    string  `json:"start_at"`
	EndAt      string  `json:"end_at"`
	WorkedDays int     `json:"worked_days"`
	Earned     float64 `json:"earned"`
}

type StudentBreakdown struct {
	StudentID   string        `json:"student_id"`
	StudentName string        `json:"student_name"`
	Package     string        `json:"package"`
	DailyRate   float64       `json:"daily_rate"`
	WorkedDays  int           `json:"worked_days"`
	Earned      float64       `json:"earned"`
	Periods     []PeriodSlice `json:"periods,omitempty"`
}

type DailyEarning struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type SummaryStats struct {
	WorkingDays         int     `json:"working_days"`
	TeachingDays        int     `json:"teaching_days"`
	AverageDailyEarning float64 `json:"average_daily_earning"`
	TotalDeductions     float64 `json:"total_deductions"`
	NetSalary           float64 `json:"net_salary"`
}

type SalaryResult struct {
	TeacherID string `json:"teacher_id"`
	From      string `json:"from"`
	To        string `json:"to"`

	BaseSalary        float64 `json:"base_salary"`
	LatenessDeduction float64 `json:"lateness_deduction"`
	AbsenceDeduction  float64 `json:"absence_deduction"`
	Bonuses           float64 `json:"bonuses"`
	TotalSalary       float64 `json:"total_salary"`
	HasTeacherChanges bool    `json:"has_teacher_changes"`

	Students []StudentBreakdown `json:"students,omitempty"`
	Lateness []LatenessRecord   `json:"lateness,omitempty"`
	Absences []AbsenceRecord    `json:"absences,omitempty"`
	Daily    []DailyEarning     `json:"daily,omitempty"`
	Summary  SummaryStats       `json:"summary"`
}

// CalculateSalary aggregates one teacher's pay for a date range. Each
// assignment window contributes its own worked-days slice, so a mid-period
// reassignment pays both teachers for their own portion only.
func CalculateSalary(in EngineInput) SalaryResult {
	res := SalaryResult{
		TeacherID: in.TeacherID,
		From:      in.From.Format("2006-01-02"),
		To:        in.To.Format("2006-01-02"),
		Bonuses:   in.Bonuses,
	}

	dailyTotals := map[string]float64{}
	teachingDates := map[string]bool{}

	for _, st := range in.Students {
		// Each event belongs to exactly one scheduled date; lateness scoring,
		// worked-day counting and absence detection all read this mapping.
		resolved := resolveEventDates(in.Events[st.ID], st.TimeSlot, in.From, in.To)
		expectedDays := st.DayPackage.ExpectedDaysIn(in.From, in.To, in.Rates.IncludeSundays)
		dailyRate := dailyRateFor(in.Rates.MonthlyRateFor(st.Package), expectedDays)

		windows := clampWindows(in.Windows[st.ID], in.From, in.To)
		if len(windows) == 0 {
			windows = []AssignmentWindow{{StudentID: st.ID, StartAt: in.From, EndAt: &in.To}}
		} else if len(windows) > 1 || windows[0].StartAt.After(in.From) || windows[0].EndAt.Before(in.To) {
			res.HasTeacherChanges = true
		}

		breakdown := StudentBreakdown{
			StudentID:   st.ID,
			StudentName: st.FullName,
			Package:     st.Package,
			DailyRate:   dailyRate,
		}

		latenessBase := in.Rates.LatenessBaseFor(st.Package)

		for _, w := range windows {
			slice := PeriodSlice{
				StartAt: w.StartAt.Format("2006-01-02"),
				EndAt:   w.EndAt.Format("2006-01-02"),
			}

			for day := w.StartAt; !day.After(*w.EndAt); day = day.AddDate(0, 0, 1) {
				key := day.Format("2006-01-02")
				actual, ok := resolved[key]
				if !ok {
					continue
				}

				slice.WorkedDays++
				dailyTotals[key] += dailyRate
				teachingDates[key] = true

				if !st.DayPackage.ExpectedOn(day.Weekday(), in.Rates.IncludeSundays) {
					continue
				}

				scheduled := student.SlotOn(day, st.TimeSlot)
				minutes, deduction, tier := ComputeLateness(scheduled, actual, latenessBase, in.Rates)
				if deduction > 0 {
					res.LatenessDeduction += deduction
					res.Lateness = append(res.Lateness, LatenessRecord{
						StudentID:   st.ID,
						StudentName: st.FullName,
						Date:        key,
						Minutes:     minutes,
						Tier:        tier,
						Deduction:   deduction,
					})
				}
			}

			slice.Earned = dailyRate * float64(slice.WorkedDays)
			breakdown.WorkedDays += slice.WorkedDays
			breakdown.Earned += slice.Earned
			breakdown.Periods = append(breakdown.Periods, slice)

			absences := ComputeAbsences(st, w.StartAt, *w.EndAt, resolved, in.Excused, in.Rates)
			for _, a := range absences {
				res.AbsenceDeduction += a.Deduction
			}
			res.Absences = append(res.Absences, absences...)
		}

		res.BaseSalary += breakdown.Earned
		res.Students = append(res.Students, breakdown)
	}

	res.TotalSalary = math.Max(0, res.BaseSalary-res.LatenessDeduction-res.AbsenceDeduction+res.Bonuses)

	for key, amount := range dailyTotals {
		res.Daily = append(res.Daily, DailyEarning{Date: key, Amount: amount})
	}
	sort.Slice(res.Daily, func(i, j int) bool { return res.Daily[i].Date < res.Daily[j].Date })

	res.Summary = SummaryStats{
		WorkingDays:     student.DayPackage("").ExpectedDaysIn(in.From, in.To, in.Rates.IncludeSundays),
		TeachingDays:    len(teachingDates),
		TotalDeductions: res.LatenessDeduction + res.AbsenceDeduction,
		NetSalary:       res.TotalSalary,
	}
	if res.Summary.TeachingDays > 0 {
		res.Summary.AverageDailyEarning = res.TotalSalary / float64(res.Summary.TeachingDays)
	}

	return res
}

// dailyRateFor divides the monthly rate by the smaller of 22 and the actual
// expected day count, so a short range does not deflate the rate.
func dailyRateFor(monthly float64, expectedDays int) float64 {
	divisor := standardMonthDays
	if expectedDays > 0 && expectedDays < divisor {
		divisor = expectedDays
	}
	if monthly == 0 {
		return 0
	}
	return monthly / float64(divisor)
}

// clampWindows intersects assignment windows with the requested range and
// drops the ones that fall entirely outside it. Open windows close at the
// range end.
func clampWindows(windows []AssignmentWindow, from, to time.Time) []AssignmentWindow {
	var out []AssignmentWindow
	for _, w := range windows {
		start := w.StartAt
		if start.Before(from) {
			start = from
		}

		end := to
		if w.EndAt != nil && w.EndAt.Before(to) {
			end = *w.EndAt
		}

		if start.After(end) {
			continue
		}

		closed := end
		out = append(out, AssignmentWindow{StudentID: w.StudentID, StartAt: start, EndAt: &closed})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}
