package rates

// Base amounts applied when a package has no configured deduction row.
const (
	DefaultLatenessBase = 30.0
	DefaultAbsenceBase  = 25.0
)

// Tier is the read-model form of a lateness tier.
type Tier struct {
	Tier        int     `json:"tier"`
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
	Percent     float64 `json:"percent"`
}

// Snapshot is a read-only view of one school's rate configuration, taken
// once per calculation so a payroll run never sees a half-updated config.
type Snapshot struct {
	LatenessBase     map[string]float64
	AbsenceBase      map[string]float64
	MonthlyRate      map[string]float64
	Tiers            []Tier // ordered by (tier, start_minute) asc
	ExcusedThreshold int
	IncludeSundays   bool
}

func (s Snapshot) LatenessBaseFor(pkg string) float64 {
	if v, ok := s.LatenessBase[pkg]; ok {
		return v
	}
	return DefaultLatenessBase
}

func (s Snapshot) AbsenceBaseFor(pkg string) float64 {
	if v, ok := s.AbsenceBase[pkg]; ok {
		return v
	}
	return DefaultAbsenceBase
}

// MonthlyRateFor returns the per-student monthly salary for a package.
// Unknown packages earn nothing rather than a guessed amount.
func (s Snapshot) MonthlyRateFor(pkg string) float64 {
	return s.MonthlyRate[pkg]
}
