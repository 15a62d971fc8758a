package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	kafkamsg "go-madrasa/internal/messaging/kafka"
	payrollerrors "go-madrasa/internal/payroll/errors"
	"go-madrasa/internal/rates"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSchool  = "6b1f7a52-9c34-4c1e-8d2a-0f3b6a5e9d11"
	testTeacher = "7c2a8b63-1d45-4f2e-9e3b-1a4c7b6f0e22"
	testAdmin   = "8d3b9c74-2e56-4a3f-af4c-2b5d8c7a1f33"
)

type fakePayrollRepo struct {
	teacherExists bool
	teacherIDs    []string
	windows       map[string][]AssignmentWindow
	students      []StudentSchedule
	events        map[string][]time.Time
	excused       map[string]bool
	bonusTotal    float64
	bonusPeriods  []string

	payment    *SalaryPayment
	upserted   []*SalaryPayment
	audits     []*PaymentAudit
	bonuses    []*Bonus
	processed  []string
	lastTxnIDs []string
}

func (f *fakePayrollRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePayrollRepo) TeacherExists(ctx context.Context, schoolID, teacherID string) (bool, error) {
	return f.teacherExists, nil
}

func (f *fakePayrollRepo) FindActiveTeacherIDs(ctx context.Context, schoolID string) ([]string, error) {
	return f.teacherIDs, nil
}

func (f *fakePayrollRepo) FindAssignmentWindows(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string][]AssignmentWindow, error) {
	return f.windows, nil
}

func (f *fakePayrollRepo) FindStudentSchedules(ctx context.Context, schoolID string, studentIDs []string) ([]StudentSchedule, error) {
	return f.students, nil
}

func (f *fakePayrollRepo) FindDeliveryTimes(ctx context.Context, schoolID string, studentIDs []string, from, to time.Time) (map[string][]time.Time, error) {
	return f.events, nil
}

func (f *fakePayrollRepo) FindExcusedDates(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string]bool, error) {
	return f.excused, nil
}

func (f *fakePayrollRepo) SumBonuses(ctx context.Context, schoolID, teacherID string, periods []string) (float64, error) {
	f.bonusPeriods = periods
	return f.bonusTotal, nil
}

func (f *fakePayrollRepo) CreateBonus(ctx context.Context, row *Bonus) error {
	f.bonuses = append(f.bonuses, row)
	return nil
}

func (f *fakePayrollRepo) FindBonuses(ctx context.Context, schoolID, teacherID, period string) ([]Bonus, error) {
	out := make([]Bonus, len(f.bonuses))
	for i, b := range f.bonuses {
		out[i] = *b
	}
	return out, nil
}

func (f *fakePayrollRepo) GetPaymentForUpdate(ctx context.Context, schoolID, teacherID, period string) (*SalaryPayment, error) {
	if f.payment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.payment, nil
}

func (f *fakePayrollRepo) UpsertPayment(ctx context.Context, row *SalaryPayment) error {
	f.upserted = append(f.upserted, row)
	return nil
}

func (f *fakePayrollRepo) MarkProcessed(ctx context.Context, paymentID string, txnID string) error {
	f.processed = append(f.processed, paymentID)
	f.lastTxnIDs = append(f.lastTxnIDs, txnID)
	return nil
}

func (f *fakePayrollRepo) FindPayments(ctx context.Context, schoolID, period string) ([]SalaryPayment, error) {
	if f.payment == nil {
		return nil, nil
	}
	return []SalaryPayment{*f.payment}, nil
}

func (f *fakePayrollRepo) CreateAudit(ctx context.Context, row *PaymentAudit) error {
	f.audits = append(f.audits, row)
	return nil
}

type fakeRateSource struct {
	snap rates.Snapshot
}

func (f *fakeRateSource) Snapshot(ctx context.Context, schoolID string) (rates.Snapshot, error) {
	return f.snap, nil
}

type fakeOutbox struct {
	created []*kafkamsg.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafkamsg.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event *kafkamsg.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) FindPending(ctx context.Context, limit int) ([]kafkamsg.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, lastError string) error { return nil }

type fakeGateway struct {
	failures int
	calls    int
	txnID    string
}

func (f *fakeGateway) ProcessPayment(ctx context.Context, req GatewayRequest) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("gateway timeout")
	}
	return f.txnID, nil
}

func newPaymentTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()
	return db
}

func newTestService(t *testing.T, db *sql.DB, repo *fakePayrollRepo, gw *fakeGateway) (*service, *fakeOutbox) {
	t.Helper()
	outbox := &fakeOutbox{}
	snap := testSnapshot()
	snap.MonthlyRate["1 Hour"] = 300

	svc := NewService(db, repo, &fakeRateSource{snap: snap}, outbox, nil, gw, nil).(*service)
	svc.sleep = func(time.Duration) {}
	return svc, outbox
}

func TestGetTeacherSalary_UnknownTeacher(t *testing.T) {
	repo := &fakePayrollRepo{teacherExists: false}
	svc, _ := newTestService(t, nil, repo, nil)

	_, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, absFrom, absTo, false)

	assert.ErrorIs(t, err, payrollerrors.ErrTeacherNotFound)
}

func TestGetTeacherSalary_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakePayrollRepo{teacherExists: true}, nil)

	_, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, absTo, absFrom, false)

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
}

func TestGetTeacherSalary_ComputesAndStripsDetails(t *testing.T) {
	repo := &fakePayrollRepo{
		teacherExists: true,
		windows: map[string][]AssignmentWindow{
			"st-1": {{StudentID: "st-1", StartAt: absFrom}},
		},
		students: []StudentSchedule{mwfStudent()},
		events: map[string][]time.Time{
			"st-1": {
				time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
				time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC),
				time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC),
			},
		},
	}
	svc, _ := newTestService(t, nil, repo, nil)

	res, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, absFrom, absTo, false)
	require.NoError(t, err)

	assert.InDelta(t, 300, res.TotalSalary, 1e-9)
	assert.Nil(t, res.Students)
	assert.Nil(t, res.Daily)

	detailed, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, absFrom, absTo, true)
	require.NoError(t, err)
	assert.NotEmpty(t, detailed.Students)
}

func TestGetTeacherSalary_NoStudentsZeroValue(t *testing.T) {
	repo := &fakePayrollRepo{teacherExists: true}
	svc, _ := newTestService(t, nil, repo, nil)

	res, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, absFrom, absTo, true)
	require.NoError(t, err)

	assert.Zero(t, res.TotalSalary)
	assert.Empty(t, res.Students)
}

func TestGetTeacherSalary_SumsBonusesAcrossMonths(t *testing.T) {
	repo := &fakePayrollRepo{
		teacherExists: true,
		windows: map[string][]AssignmentWindow{
			"st-1": {{StudentID: "st-1", StartAt: absFrom}},
		},
		students: []StudentSchedule{mwfStudent()},
	}
	svc, _ := newTestService(t, nil, repo, nil)

	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetTeacherSalary(context.Background(), testSchool, testTeacher, from, to, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-03", "2025-04"}, repo.bonusPeriods)
}

func TestCalculateAll_ReturnsEveryTeacher(t *testing.T) {
	repo := &fakePayrollRepo{
		teacherExists: true,
		teacherIDs:    []string{testTeacher, testAdmin},
	}
	svc, _ := newTestService(t, nil, repo, nil)

	results, err := svc.CalculateAll(context.Background(), testSchool, absFrom, absTo)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, testTeacher, results[0].TeacherID)
	assert.Equal(t, testAdmin, results[1].TeacherID)
}

func TestUpsertPayment_CreatesRowAuditAndOutbox(t *testing.T) {
	repo := &fakePayrollRepo{}
	svc, outbox := newTestService(t, newPaymentTxDB(t), repo, nil)

	resp, err := svc.UpsertPayment(context.Background(), testSchool, testAdmin, UpsertPaymentRequest{
		TeacherID:   testTeacher,
		Period:      "2025-03",
		Status:      PaymentStatusPaid,
		TotalSalary: 172,
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)
	assert.False(t, resp.PaymentProcessed)

	require.Len(t, repo.upserted, 1)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, "status_change", repo.audits[0].Outcome)

	require.Len(t, outbox.created, 1)
	assert.Equal(t, "payroll.payment.status.v1", outbox.created[0].Topic)
}

func TestUpsertPayment_PaidIsTerminal(t *testing.T) {
	repo := &fakePayrollRepo{
		payment: &SalaryPayment{
			ID:     uuid.New(),
			Status: PaymentStatusPaid,
		},
	}
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc, _ := newTestService(t, db, repo, nil)

	_, err = svc.UpsertPayment(context.Background(), testSchool, testAdmin, UpsertPaymentRequest{
		TeacherID: testTeacher,
		Period:    "2025-03",
		Status:    PaymentStatusUnpaid,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrAlreadyPaid)
	assert.Empty(t, repo.upserted)
}

func TestUpsertPayment_ReusesExistingRowID(t *testing.T) {
	existingID := uuid.New()
	repo := &fakePayrollRepo{
		payment: &SalaryPayment{ID: existingID, Status: PaymentStatusUnpaid},
	}
	svc, _ := newTestService(t, newPaymentTxDB(t), repo, nil)

	resp, err := svc.UpsertPayment(context.Background(), testSchool, testAdmin, UpsertPaymentRequest{
		TeacherID:   testTeacher,
		Period:      "2025-03",
		Status:      PaymentStatusPaid,
		TotalSalary: 172,
	})
	require.NoError(t, err)

	assert.Equal(t, existingID.String(), resp.ID)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, existingID, repo.upserted[0].ID)
}

func TestUpsertPayment_GatewayRetriesThenSucceeds(t *testing.T) {
	repo := &fakePayrollRepo{}
	gw := &fakeGateway{failures: 2, txnID: "txn-99"}
	svc, _ := newTestService(t, newPaymentTxDB(t), repo, gw)

	resp, err := svc.UpsertPayment(context.Background(), testSchool, testAdmin, UpsertPaymentRequest{
		TeacherID:      testTeacher,
		Period:         "2025-03",
		Status:         PaymentStatusPaid,
		TotalSalary:    172,
		ProcessPayment: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, gw.calls)
	assert.True(t, resp.PaymentProcessed)
	assert.Equal(t, "txn-99", resp.GatewayTxnID)
	require.Len(t, repo.processed, 1)

	// status_change plus gateway_success
	require.Len(t, repo.audits, 2)
	assert.Equal(t, "gateway_success", repo.audits[1].Outcome)
}

func TestUpsertPayment_GatewayExhaustedKeepsBookkeeping(t *testing.T) {
	repo := &fakePayrollRepo{}
	gw := &fakeGateway{failures: 10}
	svc, _ := newTestService(t, newPaymentTxDB(t), repo, gw)

	resp, err := svc.UpsertPayment(context.Background(), testSchool, testAdmin, UpsertPaymentRequest{
		TeacherID:      testTeacher,
		Period:         "2025-03",
		Status:         PaymentStatusPaid,
		TotalSalary:    172,
		ProcessPayment: true,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrGatewayFailed)
	assert.Equal(t, 3, gw.calls)

	// The upsert committed before the gateway ran.
	require.Len(t, repo.upserted, 1)
	assert.False(t, resp.PaymentProcessed)
	assert.Empty(t, repo.processed)

	require.Len(t, repo.audits, 2)
	assert.Equal(t, "gateway_failed", repo.audits[1].Outcome)
}
