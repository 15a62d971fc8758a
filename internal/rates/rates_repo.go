package rates

import (
	"context"
	"database/sql"

	"go-madrasa/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rates_repo.go -destination=mock/rates_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	UpsertPackageDeduction(ctx context.Context, row *PackageDeduction) error
	FindPackageDeductions(ctx context.Context, schoolID string) ([]PackageDeduction, error)
	UpsertPackageSalary(ctx context.Context, row *PackageSalary) error
	FindPackageSalaries(ctx context.Context, schoolID string) ([]PackageSalary, error)

	DeleteTiers(ctx context.Context, schoolID string) error
	CreateTiers(ctx context.Context, tiers []LatenessTier) error
	FindTiers(ctx context.Context, schoolID string) ([]LatenessTier, error)

	UpsertSettings(ctx context.Context, row *LatenessSettings) error
	FindSettings(ctx context.Context, schoolID string) (*LatenessSettings, error)
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

func (r *repository) UpsertPackageDeduction(ctx context.Context, row *PackageDeduction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_id"}, {Name: "package"}},
			DoUpdates: clause.AssignmentColumns([]string{"lateness_base", "absence_base", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) FindPackageDeductions(ctx context.Context, schoolID string) ([]PackageDeduction, error) {
	var rows []PackageDeduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("package ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertPackageSalary(ctx context.Context, row *PackageSalary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_id"}, {Name: "package"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_rate", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) FindPackageSalaries(ctx context.Context, schoolID string) ([]PackageSalary, error) {
	var rows []PackageSalary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("package ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteTiers(ctx context.Context, schoolID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&LatenessTier{}).Error
}

func (r *repository) CreateTiers(ctx context.Context, tiers []LatenessTier) error {
	return r.db.WithContext(ctx).Create(&tiers).Error
}

func (r *repository) FindTiers(ctx context.Context, schoolID string) ([]LatenessTier, error) {
	var rows []LatenessTier
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("tier ASC, start_minute ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertSettings(ctx context.Context, row *LatenessSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"excused_threshold", "include_sundays", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) FindSettings(ctx context.Context, schoolID string) (*LatenessSettings, error) {
	var row LatenessSettings
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&row).Error
	return &row, err
}
