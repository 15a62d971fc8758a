package rates

type UpsertPackageDeductionRequest struct {
	Package      string  `json:"package" binding:"required"`
	LatenessBase float64 `json:"lateness_base" binding:"required,gte=0"`
	AbsenceBase  float64 `json:"absence_base" binding:"required,gte=0"`
}

type UpsertPackageSalaryRequest struct {
	Package     string  `json:"package" binding:"required"`
	MonthlyRate float64 `json:"monthly_rate" binding:"required,gte=0"`
}

type TierInput struct {
	Tier        int     `json:"tier" binding:"required,gte=1"`
	StartMinute int     `json:"start_minute" binding:"gte=0"`
	EndMinute   int     `json:"end_minute" binding:"required,gte=0"`
	Percent     float64 `json:"percent" binding:"required,gte=0,lte=100"`
}

type ReplaceTiersRequest struct {
	ExcusedThreshold int         `json:"excused_threshold" binding:"gte=0"`
	IncludeSundays   bool        `json:"include_sundays"`
	Tiers            []TierInput `json:"tiers" binding:"required,min=1,dive"`
}

type PackageDeductionResponse struct {
	ID           string  `json:"id"`
	Package      string  `json:"package"`
	LatenessBase float64 `json:"lateness_base"`
	AbsenceBase  float64 `json:"absence_base"`
}

type PackageSalaryResponse struct {
	ID          string  `json:"id"`
	Package     string  `json:"package"`
	MonthlyRate float64 `json:"monthly_rate"`
}

type LatenessConfigResponse struct {
	ExcusedThreshold int    `json:"excused_threshold"`
	IncludeSundays   bool   `json:"include_sundays"`
	Tiers            []Tier `json:"tiers"`
}
