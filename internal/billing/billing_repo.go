package billing

import (
	"context"
	"database/sql"
	"time"

	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=billing_repo.go -destination=mock/billing_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindActiveSubscription(ctx context.Context, schoolID, studentID string) (*Subscription, error)
	FindSubscriptions(ctx context.Context, schoolID, studentID string) ([]Subscription, error)
	CreateSubscription(ctx context.Context, row *Subscription) error
	ReplaceSubscription(ctx context.Context, oldID string, replacement *Subscription) error
	CreateInvoice(ctx context.Context, row *UpgradeInvoice) error
	FindInvoices(ctx context.Context, schoolID, studentID string) ([]UpgradeInvoice, error)
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

func (r *repository) FindActiveSubscription(ctx context.Context, schoolID, studentID string) (*Subscription, error) {
	if r.tx != nil {
		row := &Subscription{}
		err := r.tx.QueryRowContext(ctx,
			`SELECT id, package, price, duration_months, start_at, end_at
			 FROM subscriptions
			 WHERE school_id = $1 AND student_id = $2 AND status = $3 AND deleted_at IS NULL
			 FOR UPDATE`,
			schoolID, studentID, SubscriptionActive,
		).Scan(&row.ID, &row.Package, &row.Price, &row.DurationMonths, &row.StartAt, &row.EndAt)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return row, nil
	}

	var row Subscription
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ? AND status = ?", studentID, SubscriptionActive).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindSubscriptions(ctx context.Context, schoolID, studentID string) ([]Subscription, error) {
	var rows []Subscription
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("created_at DESC")
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) CreateSubscription(ctx context.Context, row *Subscription) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO subscriptions
			   (id, school_id, student_id, package, price, duration_months, start_at, end_at, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`,
			row.ID, row.SchoolID, row.StudentID, row.Package, row.Price,
			row.DurationMonths, row.StartAt, row.EndAt, row.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// ReplaceSubscription retires the old plan and activates the new one in the
// caller's transaction.
func (r *repository) ReplaceSubscription(ctx context.Context, oldID string, replacement *Subscription) error {
	if r.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if _, err := r.tx.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
		SubscriptionReplaced, oldID,
	); err != nil {
		return err
	}

	return r.CreateSubscription(ctx, replacement)
}

func (r *repository) CreateInvoice(ctx context.Context, row *UpgradeInvoice) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO upgrade_invoices
			   (id, school_id, student_id, subscription_id, old_package, new_package,
			    old_price, new_price, days_used, days_remaining, credit_amount, net_amount,
			    admin_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())`,
			row.ID, row.SchoolID, row.StudentID, row.SubscriptionID,
			row.OldPackage, row.NewPackage, row.OldPrice, row.NewPrice,
			row.DaysUsed, row.DaysRemaining, row.CreditAmount, row.NetAmount,
			row.AdminID,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindInvoices(ctx context.Context, schoolID, studentID string) ([]UpgradeInvoice, error) {
	var rows []UpgradeInvoice
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("created_at DESC")
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// addMonths is calendar-accurate on purpose; the 30-day convention applies
// to proration money math only.
func addMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}
