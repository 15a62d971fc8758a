package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-madrasa/internal/events"
	kafkamsg "go-madrasa/internal/messaging/kafka"
	payrollerrors "go-madrasa/internal/payroll/errors"
	"go-madrasa/internal/rates"
	"go-madrasa/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	gatewayAttempts = 3
	batchLimit      = 8
)

// RateSource is the slice of the rates service payroll depends on.
type RateSource interface {
	Snapshot(ctx context.Context, schoolID string) (rates.Snapshot, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetTeacherSalary(ctx context.Context, schoolID, teacherID string, from, to time.Time, details bool) (SalaryResult, error)
	CalculateAll(ctx context.Context, schoolID string, from, to time.Time) ([]SalaryResult, error)

	UpsertPayment(ctx context.Context, schoolID, adminID string, req UpsertPaymentRequest) (PaymentResponse, error)
	GetPayments(ctx context.Context, schoolID, period string) ([]PaymentResponse, error)

	CreateBonus(ctx context.Context, schoolID, adminID string, req CreateBonusRequest) (BonusResponse, error)
	GetBonuses(ctx context.Context, schoolID, teacherID, period string) ([]BonusResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	rateSrc RateSource
	outbox  kafkamsg.OutboxRepository
	cache   *SalaryCache
	gateway Gateway
	logger  *zap.Logger

	sf  singleflight.Group
	now func() time.Time

	// sleep is swapped out in tests so retry backoff does not slow them down.
	sleep func(time.Duration)
}

func NewService(
	db *sql.DB,
	repo Repository,
	rateSrc RateSource,
	outbox kafkamsg.OutboxRepository,
	cache *SalaryCache,
	gateway Gateway,
	logger *zap.Logger,
) Service {
	return &service{
		db:      db,
		repo:    repo,
		rateSrc: rateSrc,
		outbox:  outbox,
		cache:   cache,
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

func (s *service) GetTeacherSalary(ctx context.Context, schoolID, teacherID string, from, to time.Time, details bool) (SalaryResult, error) {
	if from.After(to) {
		return SalaryResult{}, payrollerrors.ErrInvalidDateRange
	}

	exists, err := s.repo.TeacherExists(ctx, schoolID, teacherID)
	if err != nil {
		return SalaryResult{}, err
	}
	if !exists {
		return SalaryResult{}, payrollerrors.ErrTeacherNotFound
	}

	result, err := s.salaryWithCache(ctx, schoolID, teacherID, from, to)
	if err != nil {
		return SalaryResult{}, err
	}

	if !details {
		result.Students = nil
		result.Lateness = nil
		result.Absences = nil
		result.Daily = nil
	}
	return result, nil
}

func (s *service) salaryWithCache(ctx context.Context, schoolID, teacherID string, from, to time.Time) (SalaryResult, error) {
	key := salaryCacheKey(schoolID, teacherID, from, to)

	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	// Concurrent requests for the same teacher and range share one compute.
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}

		result, err := s.computeSalary(ctx, schoolID, teacherID, from, to)
		if err != nil {
			return nil, err
		}

		s.cache.Set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return SalaryResult{}, err
	}
	return v.(SalaryResult), nil
}

func (s *service) computeSalary(ctx context.Context, schoolID, teacherID string, from, to time.Time) (SalaryResult, error) {
	windows, err := s.repo.FindAssignmentWindows(ctx, schoolID, teacherID, from, to)
	if err != nil {
		return SalaryResult{}, err
	}

	studentIDs := make([]string, 0, len(windows))
	for sid := range windows {
		studentIDs = append(studentIDs, sid)
	}

	// A teacher with no assigned students earns a zero-value result, not an
	// error.
	if len(studentIDs) == 0 {
		return SalaryResult{
			TeacherID: teacherID,
			From:      from.Format("2006-01-02"),
			To:        to.Format("2006-01-02"),
		}, nil
	}

	students, err := s.repo.FindStudentSchedules(ctx, schoolID, studentIDs)
	if err != nil {
		return SalaryResult{}, err
	}

	// The event window extends a day past the range so late-night classes
	// that deliver the link after midnight are still matched.
	eventsByStudent, err := s.repo.FindDeliveryTimes(ctx, schoolID, studentIDs, from, to.AddDate(0, 0, 1))
	if err != nil {
		return SalaryResult{}, err
	}

	excused, err := s.repo.FindExcusedDates(ctx, schoolID, teacherID, from, to)
	if err != nil {
		return SalaryResult{}, err
	}

	snap, err := s.rateSrc.Snapshot(ctx, schoolID)
	if err != nil {
		return SalaryResult{}, err
	}

	bonuses, err := s.repo.SumBonuses(ctx, schoolID, teacherID, monthPeriods(from, to))
	if err != nil {
		return SalaryResult{}, err
	}

	return CalculateSalary(EngineInput{
		TeacherID: teacherID,
		From:      from,
		To:        to,
		Students:  students,
		Windows:   windows,
		Events:    eventsByStudent,
		Excused:   excused,
		Bonuses:   bonuses,
		Rates:     snap,
	}), nil
}

// monthPeriods lists every "YYYY-MM" period overlapping [from, to], so a
// range crossing a month boundary picks up bonuses from each month.
func monthPeriods(from, to time.Time) []string {
	var periods []string
	for m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(to); m = m.AddDate(0, 1, 0) {
		periods = append(periods, m.Format("2006-01"))
	}
	return periods
}

// CalculateAll runs the per-teacher computation for every active teacher
// with bounded concurrency.
func (s *service) CalculateAll(ctx context.Context, schoolID string, from, to time.Time) ([]SalaryResult, error) {
	if from.After(to) {
		return nil, payrollerrors.ErrInvalidDateRange
	}

	teacherIDs, err := s.repo.FindActiveTeacherIDs(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	results := make([]SalaryResult, len(teacherIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)

	for i, tid := range teacherIDs {
		i, tid := i, tid
		g.Go(func() error {
			result, err := s.salaryWithCache(gctx, schoolID, tid, from, to)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *service) UpsertPayment(ctx context.Context, schoolID, adminID string, req UpsertPaymentRequest) (PaymentResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if req.Status != PaymentStatusPaid && req.Status != PaymentStatusUnpaid {
		return PaymentResponse{}, payrollerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.GetPaymentForUpdate(ctx, schoolID, req.TeacherID, req.Period)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PaymentResponse{}, err
	}

	// Paid is terminal per period.
	if existing != nil && existing.Status == PaymentStatusPaid && req.Status == PaymentStatusUnpaid {
		return PaymentResponse{}, payrollerrors.ErrAlreadyPaid
	}

	row := &SalaryPayment{
		ID:                uuid.New(),
		SchoolID:          uuid.MustParse(schoolID),
		TeacherID:         uuid.MustParse(req.TeacherID),
		Period:            req.Period,
		Status:            req.Status,
		TotalSalary:       req.TotalSalary,
		LatenessDeduction: req.LatenessDeduction,
		AbsenceDeduction:  req.AbsenceDeduction,
		Bonuses:           req.Bonuses,
		AdminID:           uuid.MustParse(adminID),
	}
	if existing != nil {
		row.ID = existing.ID
		row.PaymentProcessed = existing.PaymentProcessed
	}
	if req.Status == PaymentStatusPaid {
		now := s.now()
		row.PaidAt = &now
	}

	if err := qtx.UpsertPayment(ctx, row); err != nil {
		return PaymentResponse{}, err
	}

	if err := qtx.CreateAudit(ctx, &PaymentAudit{
		ID:        uuid.New(),
		SchoolID:  row.SchoolID,
		TeacherID: row.TeacherID,
		Period:    row.Period,
		Status:    row.Status,
		AdminID:   row.AdminID,
		Outcome:   "status_change",
	}); err != nil {
		return PaymentResponse{}, err
	}

	payload, err := json.Marshal(events.PaymentStatusChanged{
		SchoolID:         schoolID,
		TeacherID:        req.TeacherID,
		Period:           req.Period,
		Status:           req.Status,
		TotalSalary:      req.TotalSalary,
		PaymentProcessed: row.PaymentProcessed,
		ChangedBy:        adminID,
		ChangedAt:        s.now(),
	})
	if err != nil {
		return PaymentResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, &kafkamsg.OutboxEvent{
		ID:       uuid.New(),
		SchoolID: row.SchoolID,
		Topic:    events.TopicPaymentStatus,
		Key:      req.TeacherID + ":" + req.Period,
		Payload:  payload,
	}); err != nil {
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PaymentResponse{}, err
	}

	s.cache.Invalidate(ctx, schoolID, req.TeacherID)

	resp := PaymentResponse{
		ID:                row.ID.String(),
		TeacherID:         req.TeacherID,
		Period:            req.Period,
		Status:            row.Status,
		TotalSalary:       row.TotalSalary,
		LatenessDeduction: row.LatenessDeduction,
		AbsenceDeduction:  row.AbsenceDeduction,
		Bonuses:           row.Bonuses,
		PaymentProcessed:  row.PaymentProcessed,
		PaidAt:            row.PaidAt,
	}

	if !req.ProcessPayment || req.Status != PaymentStatusPaid {
		return resp, nil
	}

	// The gateway call runs after the commit. A failure here leaves the
	// bookkeeping row in place with payment_processed = false.
	txnID, gwErr := s.processWithRetry(ctx, row)
	if gwErr != nil {
		logger.Warn("payment gateway exhausted retries",
			zap.String("teacher_id", req.TeacherID),
			zap.String("period", req.Period),
			zap.Error(gwErr),
		)
		s.audit(ctx, row, "", "gateway_failed", gwErr.Error())
		return resp, payrollerrors.ErrGatewayFailed
	}

	if err := s.repo.MarkProcessed(ctx, row.ID.String(), txnID); err != nil {
		return resp, err
	}
	s.audit(ctx, row, txnID, "gateway_success", "")

	resp.PaymentProcessed = true
	resp.GatewayTxnID = txnID
	return resp, nil
}

func (s *service) processWithRetry(ctx context.Context, row *SalaryPayment) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= gatewayAttempts; attempt++ {
		txnID, err := s.gateway.ProcessPayment(ctx, GatewayRequest{
			TeacherID: row.TeacherID.String(),
			Period:    row.Period,
			Amount:    row.TotalSalary,
			Reference: row.ID.String(),
		})
		if err == nil {
			return txnID, nil
		}
		lastErr = err

		if attempt < gatewayAttempts {
			s.sleep(time.Duration(attempt) * time.Second)
		}
	}
	return "", lastErr
}

func (s *service) audit(ctx context.Context, row *SalaryPayment, txnID, outcome, detail string) {
	err := s.repo.CreateAudit(ctx, &PaymentAudit{
		ID:           uuid.New(),
		SchoolID:     row.SchoolID,
		TeacherID:    row.TeacherID,
		Period:       row.Period,
		Status:       row.Status,
		AdminID:      row.AdminID,
		GatewayTxnID: txnID,
		Outcome:      outcome,
		Detail:       detail,
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to write payment audit", zap.Error(err))
	}
}

func (s *service) GetPayments(ctx context.Context, schoolID, period string) ([]PaymentResponse, error) {
	rows, err := s.repo.FindPayments(ctx, schoolID, period)
	if err != nil {
		return nil, err
	}

	res := make([]PaymentResponse, len(rows))
	for i, row := range rows {
		res[i] = PaymentResponse{
			ID:                row.ID.String(),
			TeacherID:         row.TeacherID.String(),
			Period:            row.Period,
			Status:            row.Status,
			TotalSalary:       row.TotalSalary,
			LatenessDeduction: row.LatenessDeduction,
			AbsenceDeduction:  row.AbsenceDeduction,
			Bonuses:           row.Bonuses,
			PaymentProcessed:  row.PaymentProcessed,
			GatewayTxnID:      row.GatewayTxnID,
			PaidAt:            row.PaidAt,
		}
	}
	return res, nil
}

func (s *service) CreateBonus(ctx context.Context, schoolID, adminID string, req CreateBonusRequest) (BonusResponse, error) {
	row := &Bonus{
		ID:        uuid.New(),
		SchoolID:  uuid.MustParse(schoolID),
		TeacherID: uuid.MustParse(req.TeacherID),
		Period:    req.Period,
		Amount:    req.Amount,
		Reason:    req.Reason,
		AdminID:   uuid.MustParse(adminID),
	}

	if err := s.repo.CreateBonus(ctx, row); err != nil {
		return BonusResponse{}, err
	}

	s.cache.Invalidate(ctx, schoolID, req.TeacherID)

	return BonusResponse{
		ID:        row.ID.String(),
		TeacherID: req.TeacherID,
		Period:    row.Period,
		Amount:    row.Amount,
		Reason:    row.Reason,
	}, nil
}

func (s *service) GetBonuses(ctx context.Context, schoolID, teacherID, period string) ([]BonusResponse, error) {
	rows, err := s.repo.FindBonuses(ctx, schoolID, teacherID, period)
	if err != nil {
		return nil, err
	}

	res := make([]BonusResponse, len(rows))
	for i, row := range rows {
		res[i] = BonusResponse{
			ID:        row.ID.String(),
			TeacherID: row.TeacherID.String(),
			Period:    row.Period,
			Amount:    row.Amount,
			Reason:    row.Reason,
		}
	}
	return res, nil
}
