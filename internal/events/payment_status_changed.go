package events

import "time"

const TopicPaymentStatus = "payroll.payment.status.v1"

// PaymentStatusChanged is published through the outbox whenever a salary
// payment row changes status.
type PaymentStatusChanged struct {
	SchoolID         string    `json:"school_id"`
	TeacherID        string    `json:"teacher_id"`
	Period           string    `json:"period"`
	Status           string    `json:"status"`
	TotalSalary      float64   `json:"total_salary"`
	PaymentProcessed bool      `json:"payment_processed"`
	GatewayTxnID     string    `json:"gateway_txn_id,omitempty"`
	ChangedBy        string    `json:"changed_by"`
	ChangedAt        time.Time `json:"changed_at"`
}
