package permission

import (
	"context"
	"database/sql"
	"errors"
	"time"

	permissionerrors "go-madrasa/internal/permission/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=permission_service.go -destination=mock/permission_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, schoolID, teacherID string, req SubmitRequestRequest) (PermissionRequestResponse, error)
	Review(ctx context.Context, schoolID, reviewerID, id string, req ReviewRequestRequest) (PermissionRequestResponse, error)
	GetAll(ctx context.Context, schoolID, actorID string, canReadAll bool) ([]PermissionRequestResponse, error)
	CreateWaiver(ctx context.Context, schoolID, adminID string, req CreateWaiverRequest) (WaiverResponse, error)
	GetWaivers(ctx context.Context, schoolID string) ([]WaiverResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Submit(ctx context.Context, schoolID, teacherID string, req SubmitRequestRequest) (PermissionRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PermissionRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return PermissionRequestResponse{}, permissionerrors.ErrInvalidDateFormat
	}

	row := &PermissionRequest{
		ID:        uuid.New(),
		SchoolID:  uuid.MustParse(schoolID),
		TeacherID: uuid.MustParse(teacherID),
		Date:      date,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := qtx.CreateRequest(ctx, row); err != nil {
		return PermissionRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PermissionRequestResponse{}, err
	}

	return mapRequestToResponse(*row), nil
}

func (s *service) Review(ctx context.Context, schoolID, reviewerID, id string, req ReviewRequestRequest) (PermissionRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PermissionRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindRequestByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermissionRequestResponse{}, permissionerrors.ErrRequestNotFound
		}
		return PermissionRequestResponse{}, err
	}

	if row.Status != StatusPending {
		return PermissionRequestResponse{}, permissionerrors.ErrAlreadyReviewed
	}

	reviewer := uuid.MustParse(reviewerID)
	now := time.Now().UTC()
	row.Status = req.Status
	row.ReviewedBy = &reviewer
	row.ReviewedAt = &now

	if err := qtx.UpdateRequest(ctx, row); err != nil {
		return PermissionRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PermissionRequestResponse{}, err
	}

	return mapRequestToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, schoolID, actorID string, canReadAll bool) ([]PermissionRequestResponse, error) {
	var (
		rows []PermissionRequest
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindRequestsBySchool(ctx, schoolID)
	} else {
		rows, err = s.repo.FindRequestsByTeacher(ctx, schoolID, actorID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]PermissionRequestResponse, len(rows))
	for i, row := range rows {
		res[i] = mapRequestToResponse(row)
	}
	return res, nil
}

func (s *service) CreateWaiver(ctx context.Context, schoolID, adminID string, req CreateWaiverRequest) (WaiverResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WaiverResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return WaiverResponse{}, permissionerrors.ErrInvalidDateFormat
	}

	row := &DeductionWaiver{
		ID:        uuid.New(),
		SchoolID:  uuid.MustParse(schoolID),
		TeacherID: uuid.MustParse(req.TeacherID),
		Date:      date,
		AdminID:   uuid.MustParse(adminID),
		Reason:    req.Reason,
	}

	if err := qtx.CreateWaiver(ctx, row); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return WaiverResponse{}, permissionerrors.ErrDuplicateWaiver
		}
		return WaiverResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WaiverResponse{}, err
	}

	return mapWaiverToResponse(*row), nil
}

func (s *service) GetWaivers(ctx context.Context, schoolID string) ([]WaiverResponse, error) {
	rows, err := s.repo.FindWaiversBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	res := make([]WaiverResponse, len(rows))
	for i, row := range rows {
		res[i] = mapWaiverToResponse(row)
	}
	return res, nil
}

func mapRequestToResponse(r PermissionRequest) PermissionRequestResponse {
	resp := PermissionRequestResponse{
		ID:        r.ID.String(),
		SchoolID:  r.SchoolID.String(),
		TeacherID: r.TeacherID.String(),
		Date:      r.Date.Format("2006-01-02"),
		Reason:    r.Reason,
		Status:    r.Status,
	}
	if r.ReviewedBy != nil {
		v := r.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapWaiverToResponse(w DeductionWaiver) WaiverResponse {
	return WaiverResponse{
		ID:        w.ID.String(),
		SchoolID:  w.SchoolID.String(),
		TeacherID: w.TeacherID.String(),
		Date:      w.Date.Format("2006-01-02"),
		AdminID:   w.AdminID.String(),
		Reason:    w.Reason,
	}
}
