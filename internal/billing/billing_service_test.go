package billing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	billingerrors "go-madrasa/internal/billing/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSchool  = "6b1f7a52-9c34-4c1e-8d2a-0f3b6a5e9d11"
	testStudent = "9e4c0d85-3f67-4b40-b05d-3c6e9d8b2a44"
	testAdmin   = "8d3b9c74-2e56-4a3f-af4c-2b5d8c7a1f33"
)

type fakeBillingRepo struct {
	active   *Subscription
	created  []*Subscription
	replaced []string
	invoices []*UpgradeInvoice
}

func (f *fakeBillingRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeBillingRepo) FindActiveSubscription(ctx context.Context, schoolID, studentID string) (*Subscription, error) {
	if f.active == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.active, nil
}

func (f *fakeBillingRepo) FindSubscriptions(ctx context.Context, schoolID, studentID string) ([]Subscription, error) {
	if f.active == nil {
		return nil, nil
	}
	return []Subscription{*f.active}, nil
}

func (f *fakeBillingRepo) CreateSubscription(ctx context.Context, row *Subscription) error {
	f.created = append(f.created, row)
	return nil
}

func (f *fakeBillingRepo) ReplaceSubscription(ctx context.Context, oldID string, replacement *Subscription) error {
	f.replaced = append(f.replaced, oldID)
	f.created = append(f.created, replacement)
	return nil
}

func (f *fakeBillingRepo) CreateInvoice(ctx context.Context, row *UpgradeInvoice) error {
	f.invoices = append(f.invoices, row)
	return nil
}

func (f *fakeBillingRepo) FindInvoices(ctx context.Context, schoolID, studentID string) ([]UpgradeInvoice, error) {
	out := make([]UpgradeInvoice, len(f.invoices))
	for i, inv := range f.invoices {
		out[i] = *inv
	}
	return out, nil
}

func activeSub() *Subscription {
	return &Subscription{
		ID:             uuid.New(),
		SchoolID:       uuid.MustParse(testSchool),
		StudentID:      uuid.MustParse(testStudent),
		Package:        "3 days",
		Price:          150,
		DurationMonths: 3,
		StartAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:         SubscriptionActive,
	}
}

func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()
	return db
}

func TestCreateSubscription_RejectsSecondActive(t *testing.T) {
	svc := NewService(nil, &fakeBillingRepo{active: activeSub()})

	_, err := svc.CreateSubscription(context.Background(), testSchool, CreateSubscriptionRequest{
		StudentID:      testStudent,
		Package:        "Europe",
		Price:          300,
		DurationMonths: 5,
		StartDate:      "2025-02-01",
	})

	assert.ErrorIs(t, err, billingerrors.ErrSubscriptionExists)
}

func TestCreateSubscription_SetsCalendarEndDate(t *testing.T) {
	repo := &fakeBillingRepo{}
	svc := NewService(nil, repo)

	resp, err := svc.CreateSubscription(context.Background(), testSchool, CreateSubscriptionRequest{
		StudentID:      testStudent,
		Package:        "3 days",
		Price:          150,
		DurationMonths: 3,
		StartDate:      "2025-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), resp.EndAt)
	require.Len(t, repo.created, 1)
}

func TestPreviewProration_NoActiveSubscription(t *testing.T) {
	svc := NewService(nil, &fakeBillingRepo{})

	_, err := svc.PreviewProration(context.Background(), testSchool, ProrationPreviewRequest{
		StudentID:   testStudent,
		NewPrice:    300,
		NewDuration: 5,
	})

	assert.ErrorIs(t, err, billingerrors.ErrNoActiveSubscription)
}

func TestPreviewProration_MatchesFormula(t *testing.T) {
	svc := NewService(nil, &fakeBillingRepo{active: activeSub()})

	res, err := svc.PreviewProration(context.Background(), testSchool, ProrationPreviewRequest{
		StudentID:   testStudent,
		NewPrice:    300,
		NewDuration: 5,
		UpgradeDate: "2025-02-01",
	})
	require.NoError(t, err)

	assert.InDelta(t, 98.33, res.CreditAmount, 1e-9)
	assert.InDelta(t, 201.67, res.NetAmount, 1e-9)
}

func TestUpgradeSubscription_ReplacesAndInvoices(t *testing.T) {
	repo := &fakeBillingRepo{active: activeSub()}
	svc := NewService(newTxDB(t), repo)

	resp, err := svc.UpgradeSubscription(context.Background(), testSchool, testAdmin, UpgradeSubscriptionRequest{
		StudentID:   testStudent,
		NewPackage:  "Europe",
		NewPrice:    300,
		NewDuration: 5,
		UpgradeDate: "2025-02-01",
	})
	require.NoError(t, err)

	require.Len(t, repo.replaced, 1)
	require.Len(t, repo.created, 1)
	require.Len(t, repo.invoices, 1)

	assert.Equal(t, "Europe", resp.Subscription.Package)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), resp.Subscription.EndAt)
	assert.InDelta(t, 201.67, resp.Invoice.NetAmount, 1e-9)
	assert.InDelta(t, resp.Invoice.CreditAmount+resp.Invoice.NetAmount, 300, 1e-9)
}

func TestUpgradeSubscription_SamePackageRejected(t *testing.T) {
	repo := &fakeBillingRepo{active: activeSub()}
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, repo)

	_, err = svc.UpgradeSubscription(context.Background(), testSchool, testAdmin, UpgradeSubscriptionRequest{
		StudentID:   testStudent,
		NewPackage:  "3 days",
		NewPrice:    150,
		NewDuration: 3,
	})

	assert.ErrorIs(t, err, billingerrors.ErrSamePackage)
	assert.Empty(t, repo.replaced)
}
