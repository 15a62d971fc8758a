package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "go-madrasa/internal/attendance/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordLinkSent(ctx context.Context, schoolID, teacherID string, req RecordLinkSentRequest) (DeliveryEventResponse, error)
	GetAll(ctx context.Context, schoolID, actorID string, canReadAll bool, filter ListEventsFilterRequest) ([]DeliveryEventResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) RecordLinkSent(ctx context.Context, schoolID, teacherID string, req RecordLinkSentRequest) (DeliveryEventResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeliveryEventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	studentUUID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return DeliveryEventResponse{}, attendanceerrors.ErrInvalidStudentID
	}

	belongs, err := qtx.StudentBelongsToSchool(ctx, schoolID, req.StudentID)
	if err != nil {
		return DeliveryEventResponse{}, err
	}
	if !belongs {
		return DeliveryEventResponse{}, attendanceerrors.ErrStudentNotInSchool
	}

	sentAt := time.Now().UTC()
	if req.SentAt != "" {
		sentAt, err = time.Parse(time.RFC3339, req.SentAt)
		if err != nil {
			return DeliveryEventResponse{}, attendanceerrors.ErrInvalidSentAt
		}
		sentAt = sentAt.UTC()
	}

	event := &DeliveryEvent{
		ID:        uuid.New(),
		SchoolID:  uuid.MustParse(schoolID),
		StudentID: studentUUID,
		TeacherID: uuid.MustParse(teacherID),
		SentAt:    sentAt,
	}

	if err := qtx.Create(ctx, event); err != nil {
		return DeliveryEventResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeliveryEventResponse{}, err
	}

	return mapToResponse(*event), nil
}

func (s *service) GetAll(ctx context.Context, schoolID, actorID string, canReadAll bool, filter ListEventsFilterRequest) ([]DeliveryEventResponse, error) {
	from, to, err := parseRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	teacherID := filter.TeacherID
	if !canReadAll {
		// Teachers only see their own delivery history.
		teacherID = actorID
	}

	var (
		events []DeliveryEvent
	)
	if teacherID != "" {
		events, err = s.repo.FindByTeacherAndRange(ctx, schoolID, teacherID, from, to)
	} else {
		events, err = s.repo.FindBySchoolAndRange(ctx, schoolID, from, to)
	}
	if err != nil {
		return nil, err
	}

	res := make([]DeliveryEventResponse, len(events))
	for i, e := range events {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
	}

	// Make the upper bound exclusive of nothing: include the whole "to" day.
	return from, to.AddDate(0, 0, 1), nil
}

func mapToResponse(e DeliveryEvent) DeliveryEventResponse {
	return DeliveryEventResponse{
		ID:        e.ID.String(),
		SchoolID:  e.SchoolID.String(),
		StudentID: e.StudentID.String(),
		TeacherID: e.TeacherID.String(),
		SentAt:    e.SentAt.Format(time.RFC3339),
	}
}
