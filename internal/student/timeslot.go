package student

import (
	"strings"
	"time"
)

// Time slots arrive from the scheduling UI in mixed 12h/24h shapes.
var slotLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// NormalizeTimeSlot converts any accepted slot shape into 24h "15:04".
// Unparseable input degrades to "00:00" rather than failing the calculation.
func NormalizeTimeSlot(slot string) string {
	s := strings.TrimSpace(slot)
	if s == "" {
		return "00:00"
	}

	upper := strings.ToUpper(s)
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return t.Format("15:04")
		}
	}

	return "00:00"
}

// SlotOn anchors a normalized time slot onto a calendar date.
func SlotOn(date time.Time, slot string) time.Time {
	normalized := NormalizeTimeSlot(slot)
	t, err := time.Parse("15:04", normalized)
	if err != nil {
		t = time.Time{}
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location(),
	)
}
