package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionReplaced = "REPLACED"
	SubscriptionExpired  = "EXPIRED"
)

// Subscription is one student's paid plan. EndAt is calendar-accurate while
// proration math uses 30-day months, so the two can drift by a few days.
type Subscription struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;not null;index"`

	Package        string    `gorm:"column:package;type:varchar(60);not null"`
	Price          float64   `gorm:"column:price;type:numeric(10,2);not null"`
	DurationMonths int       `gorm:"column:duration_months;not null"`
	StartAt        time.Time `gorm:"column:start_at;type:date;not null"`
	EndAt          time.Time `gorm:"column:end_at;type:date;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// UpgradeInvoice records the priced outcome of a plan change. NetAmount
// below zero is a credit owed to the customer.
type UpgradeInvoice struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID       uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	StudentID      uuid.UUID `gorm:"column:student_id;type:uuid;not null;index"`
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;not null"`

	OldPackage    string  `gorm:"column:old_package;type:varchar(60);not null"`
	NewPackage    string  `gorm:"column:new_package;type:varchar(60);not null"`
	OldPrice      float64 `gorm:"column:old_price;type:numeric(10,2);not null"`
	NewPrice      float64 `gorm:"column:new_price;type:numeric(10,2);not null"`
	DaysUsed      int     `gorm:"column:days_used;not null"`
	DaysRemaining int     `gorm:"column:days_remaining;not null"`
	CreditAmount  float64 `gorm:"column:credit_amount;type:numeric(10,2);not null"`
	NetAmount     float64 `gorm:"column:net_amount;type:numeric(10,2);not null"`

	AdminID   uuid.UUID `gorm:"column:admin_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UpgradeInvoice) TableName() string {
	return "upgrade_invoices"
}
