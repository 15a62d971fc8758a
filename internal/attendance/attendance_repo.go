package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, event *DeliveryEvent) error
	FindByTeacherAndRange(ctx context.Context, schoolID, teacherID string, from, to time.Time) ([]DeliveryEvent, error)
	FindBySchoolAndRange(ctx context.Context, schoolID string, from, to time.Time) ([]DeliveryEvent, error)
	StudentBelongsToSchool(ctx context.Context, schoolID, studentID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, event *DeliveryEvent) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO delivery_events (id, school_id, student_id, teacher_id, sent_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, NOW())`,
			event.ID, event.SchoolID, event.StudentID, event.TeacherID, event.SentAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByTeacherAndRange(ctx context.Context, schoolID, teacherID string, from, to time.Time) ([]DeliveryEvent, error) {
	var events []DeliveryEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ?", teacherID).
		Where("sent_at >= ? AND sent_at < ?", from, to).
		Order("sent_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) FindBySchoolAndRange(ctx context.Context, schoolID string, from, to time.Time) ([]DeliveryEvent, error) {
	var events []DeliveryEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("sent_at >= ? AND sent_at < ?", from, to).
		Order("sent_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) StudentBelongsToSchool(ctx context.Context, schoolID, studentID string) (bool, error) {
	if r.tx != nil {
		var count int64
		err := r.tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM students WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
			studentID, schoolID,
		).Scan(&count)
		return count > 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).
		Table("students").
		Where("id = ?", studentID).
		Scopes(tenant.Scope(schoolID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
