package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Student) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, schoolID, id string) error

	CreateAssignment(ctx context.Context, a *TeacherAssignment) error
	CloseOpenAssignment(ctx context.Context, schoolID, studentID string, endAt time.Time) error
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

func (r *repository) Create(ctx context.Context, s *Student) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO students (id, school_id, full_name, package, day_package, time_slot, teacher_id, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
			s.ID, s.SchoolID, s.FullName, s.Package, s.DayPackage, s.TimeSlot, s.TeacherID, s.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Student, error) {
	if r.tx != nil {
		var s Student
		err := r.tx.QueryRowContext(ctx,
			`SELECT id, school_id, full_name, package, day_package, time_slot, teacher_id, status
			 FROM students
			 WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL
			 FOR UPDATE`,
			id, schoolID,
		).Scan(&s.ID, &s.SchoolID, &s.FullName, &s.Package, &s.DayPackage, &s.TimeSlot, &s.TeacherID, &s.Status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, err
		}
		return &s, nil
	}
	var s Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Student) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE students
			 SET full_name = $1, package = $2, day_package = $3, time_slot = $4, teacher_id = $5, status = $6, updated_at = NOW()
			 WHERE id = $7`,
			s.FullName, s.Package, s.DayPackage, s.TimeSlot, s.TeacherID, s.Status, s.ID,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE students SET deleted_at = NOW() WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
			id, schoolID,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Student{}, "id = ?", id).Error
}

func (r *repository) CreateAssignment(ctx context.Context, a *TeacherAssignment) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO teacher_assignments (id, school_id, student_id, teacher_id, start_at, end_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			a.ID, a.SchoolID, a.StudentID, a.TeacherID, a.StartAt, a.EndAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) CloseOpenAssignment(ctx context.Context, schoolID, studentID string, endAt time.Time) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE teacher_assignments SET end_at = $1 WHERE school_id = $2 AND student_id = $3 AND end_at IS NULL`,
			endAt, schoolID, studentID,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&TeacherAssignment{}).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ? AND end_at IS NULL", studentID).
		Update("end_at", endAt).Error
}
