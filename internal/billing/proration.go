package billing

import (
	"math"
	"time"
)

// daysPerMonth standardizes proration on 30-day months. The calendar end
// date on the subscription row can disagree with this; the invoice keeps
// both so the difference stays visible.
const daysPerMonth = 30

type ProrationInput struct {
	CurrentPrice    float64
	CurrentDuration int // months
	NewPrice        float64
	NewDuration     int // months
	OriginalStart   time.Time
	UpgradeDate     time.Time
}

type ProrationResult struct {
	TotalDays        int     `json:"total_days"`
	DaysUsed         int     `json:"days_used"`
	DaysRemaining    int     `json:"days_remaining"`
	CurrentDailyRate float64 `json:"current_daily_rate"`
	NewDailyRate     float64 `json:"new_daily_rate"`
	CreditAmount     float64 `json:"credit_amount"`
	NetAmount        float64 `json:"net_amount"`
}

// CalculateProration prices a mid-cycle plan change. A negative NetAmount is
// a customer credit on downgrade, not an error.
func CalculateProration(in ProrationInput) ProrationResult {
	totalDays := in.CurrentDuration * daysPerMonth

	daysUsed := int(math.Floor(in.UpgradeDate.Sub(in.OriginalStart).Hours() / 24))
	if daysUsed < 0 {
		daysUsed = 0
	}

	daysRemaining := totalDays - daysUsed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	currentDailyRate := 0.0
	if totalDays > 0 {
		currentDailyRate = in.CurrentPrice / float64(totalDays)
	}

	newDailyRate := 0.0
	if in.NewDuration > 0 {
		newDailyRate = (in.NewPrice / float64(in.NewDuration)) / daysPerMonth
	}

	credit := round2(currentDailyRate * float64(daysRemaining))
	net := round2(in.NewPrice - credit)

	return ProrationResult{
		TotalDays:        totalDays,
		DaysUsed:         daysUsed,
		DaysRemaining:    daysRemaining,
		CurrentDailyRate: round2(currentDailyRate),
		NewDailyRate:     round2(newDailyRate),
		CreditAmount:     credit,
		NetAmount:        net,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
