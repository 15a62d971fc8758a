package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	studenterrors "go-madrasa/internal/student/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateStudentRequest) (StudentResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]StudentResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (StudentResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateStudentRequest) (StudentResponse, error)
	Reassign(ctx context.Context, schoolID, id string, req ReassignStudentRequest) (StudentResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, schoolID string, req CreateStudentRequest) (StudentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidStudentID
	}
	teacherUUID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidTeacherID
	}

	row := &Student{
		ID:         uuid.New(),
		SchoolID:   schoolUUID,
		FullName:   req.FullName,
		Package:    req.Package,
		DayPackage: req.DayPackage,
		TimeSlot:   NormalizeTimeSlot(req.TimeSlot),
		TeacherID:  teacherUUID,
		Status:     StatusActive,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return StudentResponse{}, err
	}

	// The first assignment window opens at enrollment.
	assignment := &TeacherAssignment{
		ID:        uuid.New(),
		SchoolID:  schoolUUID,
		StudentID: row.ID,
		TeacherID: teacherUUID,
		StartAt:   time.Now().UTC(),
	}
	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		return StudentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]StudentResponse, error) {
	students, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	res := make([]StudentResponse, len(students))
	for i, row := range students {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (StudentResponse, error) {
	row, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateStudentRequest) (StudentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}

	row.FullName = req.FullName
	row.Package = req.Package
	row.DayPackage = req.DayPackage
	row.TimeSlot = NormalizeTimeSlot(req.TimeSlot)
	row.Status = req.Status

	if err := qtx.Update(ctx, row); err != nil {
		return StudentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}
	return mapToResponse(*row), nil
}

// Reassign moves a student to a new teacher: the open assignment window is
// closed and a new one opened in the same transaction, so payroll always
// sees contiguous windows.
func (s *service) Reassign(ctx context.Context, schoolID, id string, req ReassignStudentRequest) (StudentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	newTeacher, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidTeacherID
	}

	row, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}

	if row.TeacherID == newTeacher {
		return StudentResponse{}, studenterrors.ErrSameTeacher
	}

	now := time.Now().UTC()
	if err := qtx.CloseOpenAssignment(ctx, schoolID, id, now); err != nil {
		return StudentResponse{}, err
	}

	assignment := &TeacherAssignment{
		ID:        uuid.New(),
		SchoolID:  row.SchoolID,
		StudentID: row.ID,
		TeacherID: newTeacher,
		StartAt:   now,
	}
	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		return StudentResponse{}, err
	}

	row.TeacherID = newTeacher
	if err := qtx.Update(ctx, row); err != nil {
		return StudentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:         s.ID.String(),
		SchoolID:   s.SchoolID.String(),
		FullName:   s.FullName,
		Package:    s.Package,
		DayPackage: s.DayPackage,
		TimeSlot:   s.TimeSlot,
		TeacherID:  s.TeacherID.String(),
		Status:     s.Status,
	}
}
