package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-madrasa/internal/student"
	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	TeacherExists(ctx context.Context, schoolID, teacherID string) (bool, error)
	FindActiveTeacherIDs(ctx context.Context, schoolID string) ([]string, error)
	FindAssignmentWindows(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string][]AssignmentWindow, error)
	FindStudentSchedules(ctx context.Context, schoolID string, studentIDs []string) ([]StudentSchedule, error)
	FindDeliveryTimes(ctx context.Context, schoolID string, studentIDs []string, from, to time.Time) (map[string][]time.Time, error)
	FindExcusedDates(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string]bool, error)

	SumBonuses(ctx context.Context, schoolID, teacherID string, periods []string) (float64, error)
	CreateBonus(ctx context.Context, row *Bonus) error
	FindBonuses(ctx context.Context, schoolID, teacherID, period string) ([]Bonus, error)

	GetPaymentForUpdate(ctx context.Context, schoolID, teacherID, period string) (*SalaryPayment, error)
	UpsertPayment(ctx context.Context, row *SalaryPayment) error
	MarkProcessed(ctx context.Context, paymentID string, txnID string) error
	FindPayments(ctx context.Context, schoolID, period string) ([]SalaryPayment, error)
	CreateAudit(ctx context.Context, row *PaymentAudit) error
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

func (r *repository) TeacherExists(ctx context.Context, schoolID, teacherID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&student.TeacherAssignment{}).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindActiveTeacherIDs(ctx context.Context, schoolID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&student.Student{}).
		Scopes(tenant.Scope(schoolID)).
		Where("status = ?", student.StatusActive).
		Distinct("teacher_id").
		Pluck("teacher_id", &ids).Error
	return ids, err
}

func (r *repository) FindAssignmentWindows(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string][]AssignmentWindow, error) {
	var rows []student.TeacherAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ?", teacherID).
		Where("start_at <= ? AND (end_at IS NULL OR end_at >= ?)", to, from).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	windows := map[string][]AssignmentWindow{}
	for _, row := range rows {
		sid := row.StudentID.String()
		windows[sid] = append(windows[sid], AssignmentWindow{
			StudentID: sid,
			StartAt:   row.StartAt,
			EndAt:     row.EndAt,
		})
	}
	return windows, nil
}

func (r *repository) FindStudentSchedules(ctx context.Context, schoolID string, studentIDs []string) ([]StudentSchedule, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var rows []student.Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("id IN ?", studentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	schedules := make([]StudentSchedule, len(rows))
	for i, row := range rows {
		schedules[i] = StudentSchedule{
			ID:         row.ID.String(),
			FullName:   row.FullName,
			Package:    row.Package,
			DayPackage: student.DayPackage(row.DayPackage),
			TimeSlot:   row.TimeSlot,
		}
	}
	return schedules, nil
}

func (r *repository) FindDeliveryTimes(ctx context.Context, schoolID string, studentIDs []string, from, to time.Time) (map[string][]time.Time, error) {
	times := map[string][]time.Time{}
	if len(studentIDs) == 0 {
		return times, nil
	}

	type eventRow struct {
		StudentID string
		SentAt    time.Time
	}
	var rows []eventRow
	err := r.db.WithContext(ctx).
		Table("delivery_events").
		Select("student_id, sent_at").
		Where("school_id = ?", schoolID).
		Where("student_id IN ?", studentIDs).
		Where("sent_at >= ? AND sent_at < ?", from, to).
		Where("deleted_at IS NULL").
		Order("sent_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		times[row.StudentID] = append(times[row.StudentID], row.SentAt)
	}
	return times, nil
}

// FindExcusedDates unions approved permission requests and admin waivers
// into a set of "no deduction today" dates for the teacher.
func (r *repository) FindExcusedDates(ctx context.Context, schoolID, teacherID string, from, to time.Time) (map[string]bool, error) {
	excused := map[string]bool{}

	var permDates []time.Time
	err := r.db.WithContext(ctx).
		Table("permission_requests").
		Where("school_id = ? AND teacher_id = ?", schoolID, teacherID).
		Where("status = ?", "APPROVED").
		Where("date >= ? AND date <= ?", from, to).
		Where("deleted_at IS NULL").
		Pluck("date", &permDates).Error
	if err != nil {
		return nil, err
	}
	for _, d := range permDates {
		excused[d.Format("2006-01-02")] = true
	}

	var waiverDates []time.Time
	err = r.db.WithContext(ctx).
		Table("deduction_waivers").
		Where("school_id = ? AND teacher_id = ?", schoolID, teacherID).
		Where("date >= ? AND date <= ?", from, to).
		Pluck("date", &waiverDates).Error
	if err != nil {
		return nil, err
	}
	for _, d := range waiverDates {
		excused[d.Format("2006-01-02")] = true
	}

	return excused, nil
}

func (r *repository) SumBonuses(ctx context.Context, schoolID, teacherID string, periods []string) (float64, error) {
	if len(periods) == 0 {
		return 0, nil
	}

	var total sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&Bonus{}).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ? AND period IN ?", teacherID, periods).
		Select("SUM(amount)").
		Scan(&total).Error
	return total.Float64, err
}

func (r *repository) CreateBonus(ctx context.Context, row *Bonus) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindBonuses(ctx context.Context, schoolID, teacherID, period string) ([]Bonus, error) {
	var rows []Bonus
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("created_at DESC")
	if teacherID != "" {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if period != "" {
		q = q.Where("period = ?", period)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) GetPaymentForUpdate(ctx context.Context, schoolID, teacherID, period string) (*SalaryPayment, error) {
	if r.tx == nil {
		var row SalaryPayment
		err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(schoolID)).
			Where("teacher_id = ? AND period = ?", teacherID, period).
			First(&row).Error
		if err != nil {
			return nil, err
		}
		return &row, nil
	}

	row := &SalaryPayment{}
	err := r.tx.QueryRowContext(ctx,
		`SELECT id, status, payment_processed
		 FROM salary_payments
		 WHERE school_id = $1 AND teacher_id = $2 AND period = $3 AND deleted_at IS NULL
		 FOR UPDATE`,
		schoolID, teacherID, period,
	).Scan(&row.ID, &row.Status, &row.PaymentProcessed)
	if err == sql.ErrNoRows {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) UpsertPayment(ctx context.Context, row *SalaryPayment) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Save(row).Error
	}

	_, err := r.tx.ExecContext(ctx,
		`INSERT INTO salary_payments
		   (id, school_id, teacher_id, period, status, total_salary,
		    lateness_deduction, absence_deduction, bonuses,
		    payment_processed, paid_at, admin_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		 ON CONFLICT (school_id, teacher_id, period) DO UPDATE SET
		   status = EXCLUDED.status,
		   total_salary = EXCLUDED.total_salary,
		   lateness_deduction = EXCLUDED.lateness_deduction,
		   absence_deduction = EXCLUDED.absence_deduction,
		   bonuses = EXCLUDED.bonuses,
		   paid_at = EXCLUDED.paid_at,
		   admin_id = EXCLUDED.admin_id,
		   updated_at = NOW()`,
		row.ID, row.SchoolID, row.TeacherID, row.Period, row.Status, row.TotalSalary,
		row.LatenessDeduction, row.AbsenceDeduction, row.Bonuses,
		row.PaymentProcessed, row.PaidAt, row.AdminID,
	)
	return err
}

func (r *repository) MarkProcessed(ctx context.Context, paymentID string, txnID string) error {
	return r.db.WithContext(ctx).
		Model(&SalaryPayment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"payment_processed": true,
			"gateway_txn_id":    txnID,
		}).Error
}

func (r *repository) FindPayments(ctx context.Context, schoolID, period string) ([]SalaryPayment, error) {
	var rows []SalaryPayment
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("period DESC, created_at DESC")
	if period != "" {
		q = q.Where("period = ?", period)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) CreateAudit(ctx context.Context, row *PaymentAudit) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO payment_audits
			   (id, school_id, teacher_id, period, status, admin_id, gateway_txn_id, outcome, detail, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
			row.ID, row.SchoolID, row.TeacherID, row.Period, row.Status,
			row.AdminID, row.GatewayTxnID, row.Outcome, row.Detail,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}
