package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

// SalaryPayment is the bookkeeping row for one teacher and one period.
// Re-submitting the same period updates this row in place.
type SalaryPayment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:idx_payment_period,unique"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index:idx_payment_period,unique"`
	Period    string    `gorm:"column:period;type:varchar(7);not null;index:idx_payment_period,unique"`

	Status            string  `gorm:"column:status;type:varchar(10);not null;default:Unpaid"`
	TotalSalary       float64 `gorm:"column:total_salary;type:numeric(12,2);not null"`
	LatenessDeduction float64 `gorm:"column:lateness_deduction;type:numeric(12,2);not null;default:0"`
	AbsenceDeduction  float64 `gorm:"column:absence_deduction;type:numeric(12,2);not null;default:0"`
	Bonuses           float64 `gorm:"column:bonuses;type:numeric(12,2);not null;default:0"`

	// PaymentProcessed records whether the gateway call succeeded; the status
	// row commits either way.
	PaymentProcessed bool       `gorm:"column:payment_processed;not null;default:false"`
	GatewayTxnID     string     `gorm:"column:gateway_txn_id;type:varchar(120)"`
	PaidAt           *time.Time `gorm:"column:paid_at;type:timestamptz"`
	AdminID          uuid.UUID  `gorm:"column:admin_id;type:uuid;not null"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (SalaryPayment) TableName() string {
	return "salary_payments"
}

// Bonus is a manual admin adjustment added on top of the computed salary.
type Bonus struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:idx_bonus_period"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index:idx_bonus_period"`
	Period    string    `gorm:"column:period;type:varchar(7);not null;index:idx_bonus_period"`
	Amount    float64   `gorm:"column:amount;type:numeric(12,2);not null"`
	Reason    string    `gorm:"column:reason;type:text"`
	AdminID   uuid.UUID `gorm:"column:admin_id;type:uuid;not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Bonus) TableName() string {
	return "bonuses"
}

// PaymentAudit records every status change attempt, success or failure.
type PaymentAudit struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index"`
	Period    string    `gorm:"column:period;type:varchar(7);not null"`
	Status    string    `gorm:"column:status;type:varchar(10);not null"`
	AdminID   uuid.UUID `gorm:"column:admin_id;type:uuid;not null"`

	GatewayTxnID string `gorm:"column:gateway_txn_id;type:varchar(120)"`
	Outcome      string `gorm:"column:outcome;type:varchar(20);not null"`
	Detail       string `gorm:"column:detail;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PaymentAudit) TableName() string {
	return "payment_audits"
}
