package student

import (
	"context"
	"database/sql"
	"testing"
	"time"

	studenterrors "go-madrasa/internal/student/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStudentRepo struct {
	students    map[string]*Student
	assignments []TeacherAssignment
	closedAt    []time.Time
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*Student{}}
}

func (f *fakeStudentRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeStudentRepo) Create(ctx context.Context, s *Student) error {
	f.students[s.ID.String()] = s
	return nil
}

func (f *fakeStudentRepo) FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var out []Student
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStudentRepo) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, s *Student) error {
	f.students[s.ID.String()] = s
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, schoolID, id string) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) CreateAssignment(ctx context.Context, a *TeacherAssignment) error {
	f.assignments = append(f.assignments, *a)
	return nil
}

func (f *fakeStudentRepo) CloseOpenAssignment(ctx context.Context, schoolID, studentID string, endAt time.Time) error {
	f.closedAt = append(f.closedAt, endAt)
	for i := range f.assignments {
		if f.assignments[i].StudentID.String() == studentID && f.assignments[i].EndAt == nil {
			end := endAt
			f.assignments[i].EndAt = &end
		}
	}
	return nil
}

const (
	testSchool   = "6b1f7a52-9c34-4c1e-8d2a-0f3b6a5e9d11"
	testTeacherA = "0a4c2f6e-1d3b-4e5a-9c7f-2b8d4e6a0c13"
	testTeacherB = "9f1e3d5c-7b9a-4c2e-8d6f-0a2c4e6b8d15"
)

func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()
	return db
}

func TestCreate_OpensFirstAssignmentWindow(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewService(newTxDB(t), repo)

	resp, err := svc.Create(context.Background(), testSchool, CreateStudentRequest{
		FullName:   "Aisha Kedir",
		Package:    "1 Hour",
		DayPackage: "MWF",
		TimeSlot:   "2:00 PM",
		TeacherID:  testTeacherA,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, "14:00", resp.TimeSlot)

	require.Len(t, repo.assignments, 1)
	assert.Equal(t, testTeacherA, repo.assignments[0].TeacherID.String())
	assert.Nil(t, repo.assignments[0].EndAt)
}

func TestReassign_ClosesAndOpensWindowAtSameInstant(t *testing.T) {
	repo := newFakeStudentRepo()
	id := uuid.New()
	repo.students[id.String()] = &Student{
		ID:        id,
		SchoolID:  uuid.MustParse(testSchool),
		FullName:  "Bilal Ahmed",
		Package:   "1 Hour",
		TimeSlot:  "14:00",
		TeacherID: uuid.MustParse(testTeacherA),
		Status:    StatusActive,
	}
	repo.assignments = append(repo.assignments, TeacherAssignment{
		ID:        uuid.New(),
		SchoolID:  uuid.MustParse(testSchool),
		StudentID: id,
		TeacherID: uuid.MustParse(testTeacherA),
		StartAt:   time.Now().UTC().Add(-30 * 24 * time.Hour),
	})

	svc := NewService(newTxDB(t), repo)

	resp, err := svc.Reassign(context.Background(), testSchool, id.String(), ReassignStudentRequest{
		TeacherID: testTeacherB,
	})
	require.NoError(t, err)
	assert.Equal(t, testTeacherB, resp.TeacherID)

	require.Len(t, repo.assignments, 2)
	require.NotNil(t, repo.assignments[0].EndAt)
	assert.Equal(t, *repo.assignments[0].EndAt, repo.assignments[1].StartAt)
	assert.Nil(t, repo.assignments[1].EndAt)
	assert.Equal(t, testTeacherB, repo.assignments[1].TeacherID.String())
}

func TestReassign_RejectsSameTeacher(t *testing.T) {
	repo := newFakeStudentRepo()
	id := uuid.New()
	repo.students[id.String()] = &Student{
		ID:        id,
		SchoolID:  uuid.MustParse(testSchool),
		TeacherID: uuid.MustParse(testTeacherA),
		Status:    StatusActive,
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, repo)

	_, err = svc.Reassign(context.Background(), testSchool, id.String(), ReassignStudentRequest{
		TeacherID: testTeacherA,
	})
	assert.ErrorIs(t, err, studenterrors.ErrSameTeacher)
	assert.Len(t, repo.assignments, 0)
}

func TestReassign_UnknownStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, newFakeStudentRepo())

	_, err = svc.Reassign(context.Background(), testSchool, uuid.NewString(), ReassignStudentRequest{
		TeacherID: testTeacherB,
	})
	assert.ErrorIs(t, err, studenterrors.ErrStudentNotFound)
}

func TestUpdate_NormalizesTimeSlot(t *testing.T) {
	repo := newFakeStudentRepo()
	id := uuid.New()
	repo.students[id.String()] = &Student{
		ID:        id,
		SchoolID:  uuid.MustParse(testSchool),
		FullName:  "Bilal Ahmed",
		Package:   "1 Hour",
		TimeSlot:  "14:00",
		TeacherID: uuid.MustParse(testTeacherA),
		Status:    StatusActive,
	}

	svc := NewService(newTxDB(t), repo)

	resp, err := svc.Update(context.Background(), testSchool, id.String(), UpdateStudentRequest{
		FullName:   "Bilal Ahmed",
		Package:    "1 Hour",
		DayPackage: "All days",
		TimeSlot:   "4:30 PM",
		Status:     StatusInactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "16:30", resp.TimeSlot)
	assert.Equal(t, StatusInactive, resp.Status)
}
