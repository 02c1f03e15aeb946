package salary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	salaryerrors "github.com/azirkitai/utamaHR-sub001/internal/salary/errors"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	// ResolveAt dipanggil oleh penjana payroll: konfigurasi terkini dengan
	// effective_date <= asOf, dibekukan sebagai snapshot.
	ResolveAt(ctx context.Context, employeeID string, asOf time.Time) (SalarySnapshot, error)
	ListEmployeeIDs(ctx context.Context) ([]string, error)

	Upsert(ctx context.Context, req UpsertSalaryConfigRequest) (SalaryConfigResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (SalaryConfigResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) ResolveAt(ctx context.Context, employeeID string, asOf time.Time) (SalarySnapshot, error) {
	cfg, err := s.repo.FindEffectiveAt(ctx, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalarySnapshot{}, salaryerrors.ErrSalaryConfigNotFound
		}
		return SalarySnapshot{}, err
	}
	return cfg.Snapshot(time.Now().UTC()), nil
}

func (s *service) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListEmployeeIDsWithConfiguration(ctx)
}

func (s *service) Upsert(ctx context.Context, req UpsertSalaryConfigRequest) (SalaryConfigResponse, error) {
	if req.BasicSalary.IsNegative() || req.FixedAllowance.IsNegative() ||
		req.PCBAmount.IsNegative() || req.ZakatAmount.IsNegative() || req.AdvanceAmount.IsNegative() {
		return SalaryConfigResponse{}, salaryerrors.ErrNegativeSalary
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryConfigResponse{}, salaryerrors.ErrInvalidEffectiveDate
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryConfigResponse{}, salaryerrors.ErrSalaryConfigNotFound
	}

	cfg, err := s.repo.FindLatestByEmployee(ctx, req.EmployeeID)
	isNew := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryConfigResponse{}, err
		}
		cfg = &SalaryConfiguration{ID: uuid.New(), EmployeeID: employeeID}
		isNew = true
	}

	// Tarikh kuat kuasa baharu mencipta baris sejarah baharu, bukan overwrite.
	if !isNew && !cfg.EffectiveDate.Equal(effectiveDate) {
		cfg = &SalaryConfiguration{ID: uuid.New(), EmployeeID: employeeID}
		isNew = true
	}

	cfg.SalaryType = req.SalaryType
	cfg.BasicSalary = req.BasicSalary
	cfg.FixedAllowance = req.FixedAllowance
	cfg.AdditionalEarnings = req.AdditionalEarnings
	cfg.EPFEnrolled = boolOr(req.EPFEnrolled, true)
	cfg.SOCSOEnrolled = boolOr(req.SOCSOEnrolled, true)
	cfg.EISEnrolled = boolOr(req.EISEnrolled, true)
	cfg.HRDFEnrolled = boolOr(req.HRDFEnrolled, false)
	cfg.EPFEmployeeRateOverride = req.EPFEmployeeRateOverride
	cfg.EPFEmployerRateOverride = req.EPFEmployerRateOverride
	cfg.PCBAmount = req.PCBAmount
	cfg.ZakatAmount = req.ZakatAmount
	cfg.AdvanceAmount = req.AdvanceAmount
	cfg.EffectiveDate = effectiveDate

	if isNew {
		err = s.repo.Create(ctx, cfg)
	} else {
		err = s.repo.Update(ctx, cfg)
	}
	if err != nil {
		s.logger.Error("save salary configuration failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return SalaryConfigResponse{}, err
	}

	s.logger.Info("salary configuration saved",
		zap.String("employee_id", req.EmployeeID),
		zap.String("salary_type", cfg.SalaryType),
		zap.String("effective_date", req.EffectiveDate),
		zap.Bool("created", isNew),
	)
	return mapConfigToResponse(*cfg), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (SalaryConfigResponse, error) {
	cfg, err := s.repo.FindLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryConfigResponse{}, salaryerrors.ErrSalaryConfigNotFound
		}
		return SalaryConfigResponse{}, err
	}
	return mapConfigToResponse(*cfg), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return salaryerrors.ErrSalaryConfigNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func mapConfigToResponse(c SalaryConfiguration) SalaryConfigResponse {
	snap := c.Snapshot(time.Time{})
	return SalaryConfigResponse{
		ID:                      c.ID.String(),
		EmployeeID:              c.EmployeeID.String(),
		SalaryType:              c.SalaryType,
		BasicSalary:             c.BasicSalary,
		FixedAllowance:          c.FixedAllowance,
		AdditionalEarnings:      c.AdditionalEarnings,
		EPFEnrolled:             c.EPFEnrolled,
		SOCSOEnrolled:           c.SOCSOEnrolled,
		EISEnrolled:             c.EISEnrolled,
		HRDFEnrolled:            c.HRDFEnrolled,
		EPFEmployeeRateOverride: c.EPFEmployeeRateOverride,
		EPFEmployerRateOverride: c.EPFEmployerRateOverride,
		PCBAmount:               c.PCBAmount,
		ZakatAmount:             c.ZakatAmount,
		AdvanceAmount:           c.AdvanceAmount,
		DailyRate:               snap.DailyRate(),
		HourlyRate:              snap.HourlyRate(),
		EffectiveDate:           c.EffectiveDate.Format("2006-01-02"),
	}
}
