package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Student struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	FullName string    `gorm:"column:full_name;type:varchar(120);not null"`

	// Package is the named service tier ("3 days", "Europe", ...); rates are
	// looked up by this name at calculation time.
	Package    string    `gorm:"column:package;type:varchar(60);not null"`
	DayPackage string    `gorm:"column:day_package;type:varchar(20)"`
	TimeSlot   string    `gorm:"column:time_slot;type:varchar(20);not null"`
	TeacherID  uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Student) TableName() string {
	return "students"
}

// TeacherAssignment is one window during which a teacher was responsible for
// a student. Reassignment closes the open window and opens a new one; the
// salary aggregator pays each window separately.
type TeacherAssignment struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	StudentID uuid.UUID  `gorm:"column:student_id;type:uuid;not null;index"`
	TeacherID uuid.UUID  `gorm:"column:teacher_id;type:uuid;not null;index"`
	StartAt   time.Time  `gorm:"column:start_at;type:timestamptz;not null"`
	EndAt     *time.Time `gorm:"column:end_at;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (TeacherAssignment) TableName() string {
	return "teacher_assignments"
}
