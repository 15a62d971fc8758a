package rates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackageDeduction holds the per-package base amounts a deduction is scaled
// from. One active row per package name per school.
type PackageDeduction struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:idx_deduction_pkg,unique"`
	Package      string    `gorm:"column:package;type:varchar(60);not null;index:idx_deduction_pkg,unique"`
	LatenessBase float64   `gorm:"column:lateness_base;type:numeric(10,2);not null"`
	AbsenceBase  float64   `gorm:"column:absence_base;type:numeric(10,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PackageDeduction) TableName() string {
	return "package_deductions"
}

// PackageSalary maps a package name to the monthly rate paid per student.
type PackageSalary struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID    uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:idx_salary_pkg,unique"`
	Package     string    `gorm:"column:package;type:varchar(60);not null;index:idx_salary_pkg,unique"`
	MonthlyRate float64   `gorm:"column:monthly_rate;type:numeric(10,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PackageSalary) TableName() string {
	return "package_salaries"
}

// LatenessTier is one minute-range bucket of the lateness schedule. Tiers
// are evaluated ordered by (tier, start_minute) ascending; first match wins.
type LatenessTier struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID    uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	Tier        int       `gorm:"column:tier;not null"`
	StartMinute int       `gorm:"column:start_minute;not null"`
	EndMinute   int       `gorm:"column:end_minute;not null"`
	Percent     float64   `gorm:"column:percent;type:numeric(5,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (LatenessTier) TableName() string {
	return "lateness_tiers"
}

// LatenessSettings is the single per-school row of global knobs.
type LatenessSettings struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID         uuid.UUID `gorm:"column:school_id;type:uuid;not null;uniqueIndex"`
	ExcusedThreshold int       `gorm:"column:excused_threshold;not null;default:3"`
	IncludeSundays   bool      `gorm:"column:include_sundays;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (LatenessSettings) TableName() string {
	return "lateness_settings"
}
