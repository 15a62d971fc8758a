package payroll

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go-madrasa/internal/rates"
	"go-madrasa/internal/student"
)

const (
	TierExcused    = "Excused"
	TierBeyondMax  = "> Max Tier"
	TierUnmatched  = "No Tier"
	lateWindowSpan = 12 * time.Hour
)

// LatenessRecord is one scored late start.
type LatenessRecord struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Date        string  `json:"date"`
	Minutes     int     `json:"minutes"`
	Tier        string  `json:"tier"`
	Deduction   float64 `json:"deduction"`
}

// ComputeLateness scores a single class start against its scheduled time.
// The delta is rounded to whole minutes and clamped at zero so an early
// start never produces a negative delay.
func ComputeLateness(scheduled, actual time.Time, base float64, snap rates.Snapshot) (minutes int, deduction float64, tier string) {
	delta := actual.Sub(scheduled).Minutes()
	minutes = int(math.Max(0, math.Round(delta)))

	if minutes <= snap.ExcusedThreshold {
		return minutes, 0, TierExcused
	}

	maxEnd := 0
	for i, t := range snap.Tiers {
		if t.EndMinute > maxEnd {
			maxEnd = t.EndMinute
		}
		if t.StartMinute <= minutes && minutes <= t.EndMinute {
			return minutes, base * (t.Percent / 100), fmt.Sprintf("Tier %d", i+1)
		}
	}

	if minutes > maxEnd {
		return minutes, base, TierBeyondMax
	}

	// Gap between configured tiers. First-match semantics leave it unscored,
	// but the label must not read as excused.
	return minutes, 0, TierUnmatched
}

// resolveEventDates assigns each delivery event to at most one scheduled
// date. Days are walked in order; a day claims the earliest unclaimed event
// on its own calendar date, falling back to the 12-hour window after the
// scheduled slot for classes that begin shortly before midnight and deliver
// the link after it. Claimed events are consumed so one event never
// satisfies two dates: the lateness and absence calculators both read this
// map, which is what keeps them mutually exclusive per (student, date).
func resolveEventDates(events []time.Time, slot string, from, to time.Time) map[string]time.Time {
	if len(events) == 0 {
		return nil
	}

	sorted := append([]time.Time(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	claimed := make([]bool, len(sorted))

	sameDate := func(a, b time.Time) bool {
		y1, m1, d1 := a.Date()
		y2, m2, d2 := b.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}

	resolved := map[string]time.Time{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		idx := -1
		for i, ev := range sorted {
			if claimed[i] || !sameDate(ev, day) {
				continue
			}
			idx = i
			break
		}

		if idx < 0 {
			scheduled := student.SlotOn(day, slot)
			windowEnd := scheduled.Add(lateWindowSpan)
			for i, ev := range sorted {
				if claimed[i] || ev.Before(scheduled) || ev.After(windowEnd) {
					continue
				}
				idx = i
				break
			}
		}

		if idx >= 0 {
			claimed[idx] = true
			resolved[day.Format("2006-01-02")] = sorted[idx]
		}
	}
	return resolved
}
