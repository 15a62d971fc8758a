package payroll

import "time"

type SalaryQueryRequest struct {
	TeacherID string `form:"teacher_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Details   bool   `form:"details"`
}

type UpsertPaymentRequest struct {
	TeacherID         string  `json:"teacher_id" binding:"required,uuid"`
	Period            string  `json:"period" binding:"required,len=7"`
	Status            string  `json:"status" binding:"required,oneof=Paid Unpaid"`
	TotalSalary       float64 `json:"total_salary" binding:"gte=0"`
	LatenessDeduction float64 `json:"lateness_deduction" binding:"gte=0"`
	AbsenceDeduction  float64 `json:"absence_deduction" binding:"gte=0"`
	Bonuses           float64 `json:"bonuses"`

	// ProcessPayment triggers the synchronous gateway call after the upsert.
	ProcessPayment bool `json:"process_payment"`
}

type PaymentResponse struct {
	ID                string     `json:"id"`
	TeacherID         string     `json:"teacher_id"`
	Period            string     `json:"period"`
	Status            string     `json:"status"`
	TotalSalary       float64    `json:"total_salary"`
	LatenessDeduction float64    `json:"lateness_deduction"`
	AbsenceDeduction  float64    `json:"absence_deduction"`
	Bonuses           float64    `json:"bonuses"`
	PaymentProcessed  bool       `json:"payment_processed"`
	GatewayTxnID      string     `json:"gateway_txn_id,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
}

type CreateBonusRequest struct {
	TeacherID string  `json:"teacher_id" binding:"required,uuid"`
	Period    string  `json:"period" binding:"required,len=7"`
	Amount    float64 `json:"amount" binding:"required"`
	Reason    string  `json:"reason"`
}

type BonusResponse struct {
	ID        string  `json:"id"`
	TeacherID string  `json:"teacher_id"`
	Period    string  `json:"period"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}
