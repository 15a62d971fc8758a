package permission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// PermissionRequest is a teacher-submitted excuse for a specific date.
// Approved requests suppress absence deductions for that date.
type PermissionRequest struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index:idx_teacher_date"`
	Date      time.Time `gorm:"column:date;type:date;not null;index:idx_teacher_date"`
	Reason    string    `gorm:"column:reason;type:text"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:PENDING"`

	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PermissionRequest) TableName() string {
	return "permission_requests"
}

// DeductionWaiver is an admin-granted exemption for a teacher+date, applied
// without a request from the teacher.
type DeductionWaiver struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index:idx_waiver_teacher_date,unique"`
	Date      time.Time `gorm:"column:date;type:date;not null;index:idx_waiver_teacher_date,unique"`
	AdminID   uuid.UUID `gorm:"column:admin_id;type:uuid;not null"`
	Reason    string    `gorm:"column:reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (DeductionWaiver) TableName() string {
	return "deduction_waivers"
}
