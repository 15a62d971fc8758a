package permission

import (
	"context"
	"database/sql"
	"errors"

	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=permission_repo.go -destination=mock/permission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRequest(ctx context.Context, req *PermissionRequest) error
	FindRequestByID(ctx context.Context, schoolID, id string) (*PermissionRequest, error)
	FindRequestsBySchool(ctx context.Context, schoolID string) ([]PermissionRequest, error)
	FindRequestsByTeacher(ctx context.Context, schoolID, teacherID string) ([]PermissionRequest, error)
	UpdateRequest(ctx context.Context, req *PermissionRequest) error

	CreateWaiver(ctx context.Context, w *DeductionWaiver) error
	FindWaiversBySchool(ctx context.Context, schoolID string) ([]DeductionWaiver, error)
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

func (r *repository) CreateRequest(ctx context.Context, req *PermissionRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO permission_requests (id, school_id, teacher_id, date, reason, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
			req.ID, req.SchoolID, req.TeacherID, req.Date, req.Reason, req.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, schoolID, id string) (*PermissionRequest, error) {
	if r.tx != nil {
		var req PermissionRequest
		err := r.tx.QueryRowContext(ctx,
			`SELECT id, school_id, teacher_id, date, reason, status, reviewed_by, reviewed_at
			 FROM permission_requests
			 WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL
			 FOR UPDATE`,
			id, schoolID,
		).Scan(&req.ID, &req.SchoolID, &req.TeacherID, &req.Date, &req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, err
		}
		return &req, nil
	}
	var req PermissionRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindRequestsBySchool(ctx context.Context, schoolID string) ([]PermissionRequest, error) {
	var reqs []PermissionRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindRequestsByTeacher(ctx context.Context, schoolID, teacherID string) ([]PermissionRequest, error) {
	var reqs []PermissionRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ?", teacherID).
		Order("date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *PermissionRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE permission_requests
			 SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = NOW()
			 WHERE id = $4`,
			req.Status, req.ReviewedBy, req.ReviewedAt, req.ID,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) CreateWaiver(ctx context.Context, w *DeductionWaiver) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO deduction_waivers (id, school_id, teacher_id, date, admin_id, reason, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			w.ID, w.SchoolID, w.TeacherID, w.Date, w.AdminID, w.Reason,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindWaiversBySchool(ctx context.Context, schoolID string) ([]DeductionWaiver, error) {
	var waivers []DeductionWaiver
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("date DESC").
		Find(&waivers).Error
	return waivers, err
}
