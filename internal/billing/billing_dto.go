package billing

import "time"

type CreateSubscriptionRequest struct {
	StudentID      string  `json:"student_id" binding:"required,uuid"`
	Package        string  `json:"package" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gte=1,lte=24"`
	StartDate      string  `json:"start_date" binding:"required,datetime=2006-01-02"`
}

type ProrationPreviewRequest struct {
	StudentID      string  `json:"student_id" binding:"required,uuid"`
	NewPrice       float64 `json:"new_price" binding:"required,gt=0"`
	NewDuration    int     `json:"new_duration" binding:"required,gte=1,lte=24"`
	UpgradeDate    string  `json:"upgrade_date" binding:"omitempty,datetime=2006-01-02"`
	NewPackageName string  `json:"new_package"`
}

type UpgradeSubscriptionRequest struct {
	StudentID   string  `json:"student_id" binding:"required,uuid"`
	NewPackage  string  `json:"new_package" binding:"required"`
	NewPrice    float64 `json:"new_price" binding:"required,gt=0"`
	NewDuration int     `json:"new_duration" binding:"required,gte=1,lte=24"`
	UpgradeDate string  `json:"upgrade_date" binding:"omitempty,datetime=2006-01-02"`
}

type SubscriptionResponse struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student_id"`
	Package        string    `json:"package"`
	Price          float64   `json:"price"`
	DurationMonths int       `json:"duration_months"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"calendar_end_date"`
	Status         string    `json:"status"`
}

type UpgradeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Invoice      InvoiceResponse      `json:"invoice"`
	Proration    ProrationResult      `json:"proration"`
}

type InvoiceResponse struct {
	ID            string  `json:"id"`
	OldPackage    string  `json:"old_package"`
	NewPackage    string  `json:"new_package"`
	CreditAmount  float64 `json:"credit_amount"`
	NetAmount     float64 `json:"net_amount"`
	DaysUsed      int     `json:"days_used"`
	DaysRemaining int     `json:"days_remaining"`
}
