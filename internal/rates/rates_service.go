package rates

import (
	"context"
	"database/sql"
	"errors"

	rateserrors "go-madrasa/internal/rates/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rates_service.go -destination=mock/rates_service_mock.go -package=mock
type Service interface {
	UpsertPackageDeduction(ctx context.Context, schoolID string, req UpsertPackageDeductionRequest) (PackageDeductionResponse, error)
	GetPackageDeductions(ctx context.Context, schoolID string) ([]PackageDeductionResponse, error)
	UpsertPackageSalary(ctx context.Context, schoolID string, req UpsertPackageSalaryRequest) (PackageSalaryResponse, error)
	GetPackageSalaries(ctx context.Context, schoolID string) ([]PackageSalaryResponse, error)
	ReplaceLatenessConfig(ctx context.Context, schoolID string, req ReplaceTiersRequest) (LatenessConfigResponse, error)
	GetLatenessConfig(ctx context.Context, schoolID string) (LatenessConfigResponse, error)

	Snapshot(ctx context.Context, schoolID string) (Snapshot, error)
}

// SalaryInvalidator drops cached salary results for a whole school. Rate
// changes alter every teacher's computed salary, so each mutation below
// flushes the school.
type SalaryInvalidator interface {
	InvalidateSchool(ctx context.Context, schoolID string)
}

type service struct {
	db          *sql.DB
	repo        Repository
	invalidator SalaryInvalidator
}

func NewService(db *sql.DB, repo Repository, invalidator SalaryInvalidator) Service {
	return &service{db: db, repo: repo, invalidator: invalidator}
}

func (s *service) invalidate(ctx context.Context, schoolID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateSchool(ctx, schoolID)
	}
}

func (s *service) UpsertPackageDeduction(ctx context.Context, schoolID string, req UpsertPackageDeductionRequest) (PackageDeductionResponse, error) {
	row := &PackageDeduction{
		ID:           uuid.New(),
		SchoolID:     uuid.MustParse(schoolID),
		Package:      req.Package,
		LatenessBase: req.LatenessBase,
		AbsenceBase:  req.AbsenceBase,
	}

	if err := s.repo.UpsertPackageDeduction(ctx, row); err != nil {
		return PackageDeductionResponse{}, err
	}

	s.invalidate(ctx, schoolID)

	return PackageDeductionResponse{
		ID:           row.ID.String(),
		Package:      row.Package,
		LatenessBase: row.LatenessBase,
		AbsenceBase:  row.AbsenceBase,
	}, nil
}

func (s *service) GetPackageDeductions(ctx context.Context, schoolID string) ([]PackageDeductionResponse, error) {
	rows, err := s.repo.FindPackageDeductions(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	res := make([]PackageDeductionResponse, len(rows))
	for i, row := range rows {
		res[i] = PackageDeductionResponse{
			ID:           row.ID.String(),
			Package:      row.Package,
			LatenessBase: row.LatenessBase,
			AbsenceBase:  row.AbsenceBase,
		}
	}
	return res, nil
}

func (s *service) UpsertPackageSalary(ctx context.Context, schoolID string, req UpsertPackageSalaryRequest) (PackageSalaryResponse, error) {
	row := &PackageSalary{
		ID:          uuid.New(),
		SchoolID:    uuid.MustParse(schoolID),
		Package:     req.Package,
		MonthlyRate: req.MonthlyRate,
	}

	if err := s.repo.UpsertPackageSalary(ctx, row); err != nil {
		return PackageSalaryResponse{}, err
	}

	s.invalidate(ctx, schoolID)

	return PackageSalaryResponse{
		ID:          row.ID.String(),
		Package:     row.Package,
		MonthlyRate: row.MonthlyRate,
	}, nil
}

func (s *service) GetPackageSalaries(ctx context.Context, schoolID string) ([]PackageSalaryResponse, error) {
	rows, err := s.repo.FindPackageSalaries(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	res := make([]PackageSalaryResponse, len(rows))
	for i, row := range rows {
		res[i] = PackageSalaryResponse{
			ID:          row.ID.String(),
			Package:     row.Package,
			MonthlyRate: row.MonthlyRate,
		}
	}
	return res, nil
}

// ReplaceLatenessConfig swaps the whole tier set and settings in one
// transaction. The old delete-then-insert steps are never visible half-done
// to a concurrent payroll snapshot.
func (s *service) ReplaceLatenessConfig(ctx context.Context, schoolID string, req ReplaceTiersRequest) (LatenessConfigResponse, error) {
	if err := validateTiers(req.Tiers); err != nil {
		return LatenessConfigResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LatenessConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	schoolUUID := uuid.MustParse(schoolID)

	if err := qtx.DeleteTiers(ctx, schoolID); err != nil {
		return LatenessConfigResponse{}, err
	}

	tiers := make([]LatenessTier, len(req.Tiers))
	for i, in := range req.Tiers {
		tiers[i] = LatenessTier{
			ID:          uuid.New(),
			SchoolID:    schoolUUID,
			Tier:        in.Tier,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
			Percent:     in.Percent,
		}
	}
	if err := qtx.CreateTiers(ctx, tiers); err != nil {
		return LatenessConfigResponse{}, err
	}

	settings := &LatenessSettings{
		ID:               uuid.New(),
		SchoolID:         schoolUUID,
		ExcusedThreshold: req.ExcusedThreshold,
		IncludeSundays:   req.IncludeSundays,
	}
	if err := qtx.UpsertSettings(ctx, settings); err != nil {
		return LatenessConfigResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LatenessConfigResponse{}, err
	}

	s.invalidate(ctx, schoolID)

	return s.GetLatenessConfig(ctx, schoolID)
}

func (s *service) GetLatenessConfig(ctx context.Context, schoolID string) (LatenessConfigResponse, error) {
	tiers, err := s.repo.FindTiers(ctx, schoolID)
	if err != nil {
		return LatenessConfigResponse{}, err
	}

	resp := LatenessConfigResponse{
		ExcusedThreshold: 3,
		Tiers:            make([]Tier, len(tiers)),
	}
	for i, row := range tiers {
		resp.Tiers[i] = Tier{
			Tier:        row.Tier,
			StartMinute: row.StartMinute,
			EndMinute:   row.EndMinute,
			Percent:     row.Percent,
		}
	}

	settings, err := s.repo.FindSettings(ctx, schoolID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LatenessConfigResponse{}, err
	}
	if err == nil {
		resp.ExcusedThreshold = settings.ExcusedThreshold
		resp.IncludeSundays = settings.IncludeSundays
	}

	return resp, nil
}

func (s *service) Snapshot(ctx context.Context, schoolID string) (Snapshot, error) {
	snap := Snapshot{
		LatenessBase:     map[string]float64{},
		AbsenceBase:      map[string]float64{},
		MonthlyRate:      map[string]float64{},
		ExcusedThreshold: 3,
	}

	deductions, err := s.repo.FindPackageDeductions(ctx, schoolID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, row := range deductions {
		snap.LatenessBase[row.Package] = row.LatenessBase
		snap.AbsenceBase[row.Package] = row.AbsenceBase
	}

	salaries, err := s.repo.FindPackageSalaries(ctx, schoolID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, row := range salaries {
		snap.MonthlyRate[row.Package] = row.MonthlyRate
	}

	tiers, err := s.repo.FindTiers(ctx, schoolID)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Tiers = make([]Tier, len(tiers))
	for i, row := range tiers {
		snap.Tiers[i] = Tier{
			Tier:        row.Tier,
			StartMinute: row.StartMinute,
			EndMinute:   row.EndMinute,
			Percent:     row.Percent,
		}
	}

	settings, err := s.repo.FindSettings(ctx, schoolID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, err
	}
	if err == nil {
		snap.ExcusedThreshold = settings.ExcusedThreshold
		snap.IncludeSundays = settings.IncludeSundays
	}

	return snap, nil
}

func validateTiers(tiers []TierInput) error {
	for _, t := range tiers {
		if t.StartMinute > t.EndMinute {
			return rateserrors.ErrInvalidTierRange
		}
	}

	for i := range tiers {
		for j := i + 1; j < len(tiers); j++ {
			a, b := tiers[i], tiers[j]
			if a.StartMinute <= b.EndMinute && b.StartMinute <= a.EndMinute {
				return rateserrors.ErrOverlappingTiers
			}
		}
	}

	return nil
}
