package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	billingerrors "go-madrasa/internal/billing/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=billing_service.go -destination=mock/billing_service_mock.go -package=mock
type Service interface {
	CreateSubscription(ctx context.Context, schoolID string, req CreateSubscriptionRequest) (SubscriptionResponse, error)
	GetSubscriptions(ctx context.Context, schoolID, studentID string) ([]SubscriptionResponse, error)
	PreviewProration(ctx context.Context, schoolID string, req ProrationPreviewRequest) (ProrationResult, error)
	UpgradeSubscription(ctx context.Context, schoolID, adminID string, req UpgradeSubscriptionRequest) (UpgradeResponse, error)
	GetInvoices(ctx context.Context, schoolID, studentID string) ([]InvoiceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	now  func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, now: time.Now}
}

func (s *service) CreateSubscription(ctx context.Context, schoolID string, req CreateSubscriptionRequest) (SubscriptionResponse, error) {
	existing, err := s.repo.FindActiveSubscription(ctx, schoolID, req.StudentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return SubscriptionResponse{}, err
	}
	if existing != nil {
		return SubscriptionResponse{}, billingerrors.ErrSubscriptionExists
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return SubscriptionResponse{}, err
	}

	row := &Subscription{
		ID:             uuid.New(),
		SchoolID:       uuid.MustParse(schoolID),
		StudentID:      uuid.MustParse(req.StudentID),
		Package:        req.Package,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		StartAt:        start,
		EndAt:          addMonths(start, req.DurationMonths),
		Status:         SubscriptionActive,
	}

	if err := s.repo.CreateSubscription(ctx, row); err != nil {
		return SubscriptionResponse{}, err
	}
	return toSubscriptionResponse(row), nil
}

func (s *service) GetSubscriptions(ctx context.Context, schoolID, studentID string) ([]SubscriptionResponse, error) {
	rows, err := s.repo.FindSubscriptions(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	res := make([]SubscriptionResponse, len(rows))
	for i := range rows {
		res[i] = toSubscriptionResponse(&rows[i])
	}
	return res, nil
}

func (s *service) PreviewProration(ctx context.Context, schoolID string, req ProrationPreviewRequest) (ProrationResult, error) {
	current, err := s.repo.FindActiveSubscription(ctx, schoolID, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProrationResult{}, billingerrors.ErrNoActiveSubscription
		}
		return ProrationResult{}, err
	}

	upgradeDate, err := s.resolveUpgradeDate(req.UpgradeDate)
	if err != nil {
		return ProrationResult{}, err
	}

	return CalculateProration(ProrationInput{
		CurrentPrice:    current.Price,
		CurrentDuration: current.DurationMonths,
		NewPrice:        req.NewPrice,
		NewDuration:     req.NewDuration,
		OriginalStart:   current.StartAt,
		UpgradeDate:     upgradeDate,
	}), nil
}

// UpgradeSubscription swaps the plan, prices the change, and invoices it in
// one transaction.
func (s *service) UpgradeSubscription(ctx context.Context, schoolID, adminID string, req UpgradeSubscriptionRequest) (UpgradeResponse, error) {
	upgradeDate, err := s.resolveUpgradeDate(req.UpgradeDate)
	if err != nil {
		return UpgradeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpgradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindActiveSubscription(ctx, schoolID, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UpgradeResponse{}, billingerrors.ErrNoActiveSubscription
		}
		return UpgradeResponse{}, err
	}

	if current.Package == req.NewPackage {
		return UpgradeResponse{}, billingerrors.ErrSamePackage
	}

	proration := CalculateProration(ProrationInput{
		CurrentPrice:    current.Price,
		CurrentDuration: current.DurationMonths,
		NewPrice:        req.NewPrice,
		NewDuration:     req.NewDuration,
		OriginalStart:   current.StartAt,
		UpgradeDate:     upgradeDate,
	})

	replacement := &Subscription{
		ID:             uuid.New(),
		SchoolID:       uuid.MustParse(schoolID),
		StudentID:      uuid.MustParse(req.StudentID),
		Package:        req.NewPackage,
		Price:          req.NewPrice,
		DurationMonths: req.NewDuration,
		StartAt:        upgradeDate,
		EndAt:          addMonths(upgradeDate, req.NewDuration),
		Status:         SubscriptionActive,
	}
	if err := qtx.ReplaceSubscription(ctx, current.ID.String(), replacement); err != nil {
		return UpgradeResponse{}, err
	}

	invoice := &UpgradeInvoice{
		ID:             uuid.New(),
		SchoolID:       replacement.SchoolID,
		StudentID:      replacement.StudentID,
		SubscriptionID: replacement.ID,
		OldPackage:     current.Package,
		NewPackage:     req.NewPackage,
		OldPrice:       current.Price,
		NewPrice:       req.NewPrice,
		DaysUsed:       proration.DaysUsed,
		DaysRemaining:  proration.DaysRemaining,
		CreditAmount:   proration.CreditAmount,
		NetAmount:      proration.NetAmount,
		AdminID:        uuid.MustParse(adminID),
	}
	if err := qtx.CreateInvoice(ctx, invoice); err != nil {
		return UpgradeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UpgradeResponse{}, err
	}

	return UpgradeResponse{
		Subscription: toSubscriptionResponse(replacement),
		Invoice: InvoiceResponse{
			ID:            invoice.ID.String(),
			OldPackage:    invoice.OldPackage,
			NewPackage:    invoice.NewPackage,
			CreditAmount:  invoice.CreditAmount,
			NetAmount:     invoice.NetAmount,
			DaysUsed:      invoice.DaysUsed,
			DaysRemaining: invoice.DaysRemaining,
		},
		Proration: proration,
	}, nil
}

func (s *service) GetInvoices(ctx context.Context, schoolID, studentID string) ([]InvoiceResponse, error) {
	rows, err := s.repo.FindInvoices(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	res := make([]InvoiceResponse, len(rows))
	for i, row := range rows {
		res[i] = InvoiceResponse{
			ID:            row.ID.String(),
			OldPackage:    row.OldPackage,
			NewPackage:    row.NewPackage,
			CreditAmount:  row.CreditAmount,
			NetAmount:     row.NetAmount,
			DaysUsed:      row.DaysUsed,
			DaysRemaining: row.DaysRemaining,
		}
	}
	return res, nil
}

func (s *service) resolveUpgradeDate(raw string) (time.Time, error) {
	if raw == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func toSubscriptionResponse(row *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:             row.ID.String(),
		StudentID:      row.StudentID.String(),
		Package:        row.Package,
		Price:          row.Price,
		DurationMonths: row.DurationMonths,
		StartAt:        row.StartAt,
		EndAt:          row.EndAt,
		Status:         row.Status,
	}
}
