package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryEvent is one "zoom link sent" record. It is the ground truth for
// "a class happened and when it started"; payroll reads these as evidence.
type DeliveryEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;not null;index:idx_student_sent"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index"`
	SentAt    time.Time `gorm:"column:sent_at;type:timestamptz;not null;index:idx_student_sent"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (DeliveryEvent) TableName() string {
	return "delivery_events"
}

// StudentRef avoids importing the student package for joins.
type StudentRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (StudentRef) TableName() string {
	return "students"
}
