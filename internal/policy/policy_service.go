package policy

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	policyerrors "github.com/azirkitai/utamaHR-sub001/internal/policy/errors"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	// Lookups consumed by claim validation and payroll generation
	GetStatutoryRatesAt(ctx context.Context, asOf time.Time) (StatutoryRates, error)
	GetClaimPolicy(ctx context.Context, category string) (FinancialClaimPolicy, error)
	GetOvertimePolicy(ctx context.Context) (OvertimeRatePolicy, error)

	// Administration
	UpsertStatutoryRates(ctx context.Context, req UpsertStatutoryRatesRequest) (StatutoryRatesResponse, error)
	GetAllClaimPolicies(ctx context.Context) ([]ClaimPolicyResponse, error)
	CreateClaimPolicy(ctx context.Context, req CreateClaimPolicyRequest) (ClaimPolicyResponse, error)
	UpdateClaimPolicy(ctx context.Context, id string, req UpdateClaimPolicyRequest) (ClaimPolicyResponse, error)
	DeleteClaimPolicy(ctx context.Context, id string) error
	UpdateOvertimePolicy(ctx context.Context, req UpdateOvertimePolicyRequest) (OvertimePolicyResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetStatutoryRatesAt(ctx context.Context, asOf time.Time) (StatutoryRates, error) {
	rates, err := s.repo.FindStatutoryRatesAt(ctx, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatutoryRates{}, policyerrors.ErrStatutoryRatesNotFound
		}
		return StatutoryRates{}, err
	}
	return *rates, nil
}

func (s *service) GetClaimPolicy(ctx context.Context, category string) (FinancialClaimPolicy, error) {
	p, err := s.repo.FindClaimPolicyByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FinancialClaimPolicy{}, policyerrors.ErrClaimPolicyNotFound
		}
		return FinancialClaimPolicy{}, err
	}
	return *p, nil
}

func (s *service) GetOvertimePolicy(ctx context.Context) (OvertimeRatePolicy, error) {
	p, err := s.repo.FindOvertimePolicy(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeRatePolicy{}, policyerrors.ErrOvertimePolicyNotFound
		}
		return OvertimeRatePolicy{}, err
	}
	return *p, nil
}

func (s *service) UpsertStatutoryRates(ctx context.Context, req UpsertStatutoryRatesRequest) (StatutoryRatesResponse, error) {
	if !isFraction(req.EPFEmployeeRate) || !isFraction(req.EPFEmployerRate) || !isFraction(req.HRDFRate) {
		return StatutoryRatesResponse{}, policyerrors.ErrInvalidRateValue
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return StatutoryRatesResponse{}, policyerrors.ErrInvalidRateValue
	}

	rates := &StatutoryRates{
		ID:              uuid.New(),
		EPFEmployeeRate: req.EPFEmployeeRate,
		EPFEmployerRate: req.EPFEmployerRate,
		HRDFRate:        req.HRDFRate,
		SOCSOBands:      req.SOCSOBands,
		EISBands:        req.EISBands,
		EffectiveDate:   effectiveDate,
	}

	if err := s.repo.SaveStatutoryRates(ctx, rates); err != nil {
		s.logger.Error("save statutory rates failed", zap.Error(err))
		return StatutoryRatesResponse{}, err
	}

	s.logger.Info("statutory rates saved",
		zap.String("rates_id", rates.ID.String()),
		zap.String("effective_date", req.EffectiveDate),
	)
	return mapRatesToResponse(*rates), nil
}

func (s *service) GetAllClaimPolicies(ctx context.Context) ([]ClaimPolicyResponse, error) {
	policies, err := s.repo.FindAllClaimPolicies(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ClaimPolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapClaimPolicyToResponse(p)
	}
	return resp, nil
}

func (s *service) CreateClaimPolicy(ctx context.Context, req CreateClaimPolicyRequest) (ClaimPolicyResponse, error) {
	if isNegative(req.AnnualLimit) || isNegative(req.LimitPerApplication) {
		return ClaimPolicyResponse{}, policyerrors.ErrInvalidLimitValue
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	p := &FinancialClaimPolicy{
		ID:                  uuid.New(),
		Category:            req.Category,
		AnnualLimit:         req.AnnualLimit,
		LimitPerApplication: req.LimitPerApplication,
		ExcludedEmployeeIDs: req.ExcludedEmployeeIDs,
		Enabled:             enabled,
	}

	if err := s.repo.CreateClaimPolicy(ctx, p); err != nil {
		return ClaimPolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("claim policy created",
		zap.String("policy_id", p.ID.String()),
		zap.String("category", p.Category),
	)
	return mapClaimPolicyToResponse(*p), nil
}

func (s *service) UpdateClaimPolicy(ctx context.Context, id string, req UpdateClaimPolicyRequest) (ClaimPolicyResponse, error) {
	if isNegative(req.AnnualLimit) || isNegative(req.LimitPerApplication) {
		return ClaimPolicyResponse{}, policyerrors.ErrInvalidLimitValue
	}

	policies, err := s.repo.FindAllClaimPolicies(ctx)
	if err != nil {
		return ClaimPolicyResponse{}, err
	}

	var existing *FinancialClaimPolicy
	for i := range policies {
		if policies[i].ID.String() == id {
			existing = &policies[i]
			break
		}
	}
	if existing == nil {
		return ClaimPolicyResponse{}, policyerrors.ErrClaimPolicyNotFound
	}

	existing.AnnualLimit = req.AnnualLimit
	existing.LimitPerApplication = req.LimitPerApplication
	existing.ExcludedEmployeeIDs = req.ExcludedEmployeeIDs
	if req.Enabled != nil {
		existing.Enabled = *req.Enabled
	}

	if err := s.repo.UpdateClaimPolicy(ctx, existing); err != nil {
		return ClaimPolicyResponse{}, mapRepositoryError(err)
	}

	return mapClaimPolicyToResponse(*existing), nil
}

func (s *service) DeleteClaimPolicy(ctx context.Context, id string) error {
	return s.repo.DeleteClaimPolicy(ctx, id)
}

func (s *service) UpdateOvertimePolicy(ctx context.Context, req UpdateOvertimePolicyRequest) (OvertimePolicyResponse, error) {
	p, err := s.repo.FindOvertimePolicy(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimePolicyResponse{}, err
		}
		p = &OvertimeRatePolicy{ID: uuid.New()}
	}

	p.NormalRate = req.NormalRate
	p.RestDayRate = req.RestDayRate
	p.PublicHolidayRate = req.PublicHolidayRate
	p.CustomHourlyRate = req.CustomHourlyRate

	if err := s.repo.SaveOvertimePolicy(ctx, p); err != nil {
		return OvertimePolicyResponse{}, err
	}

	s.logger.Info("overtime rate policy updated", zap.String("policy_id", p.ID.String()))
	return mapOvertimePolicyToResponse(*p), nil
}

func isFraction(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(decimal.Zero) && d.LessThanOrEqual(decimal.NewFromInt(1))
}

func isNegative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func mapRatesToResponse(r StatutoryRates) StatutoryRatesResponse {
	return StatutoryRatesResponse{
		ID:              r.ID.String(),
		EPFEmployeeRate: r.EPFEmployeeRate,
		EPFEmployerRate: r.EPFEmployerRate,
		HRDFRate:        r.HRDFRate,
		SOCSOBands:      r.SOCSOBands,
		EISBands:        r.EISBands,
		EffectiveDate:   r.EffectiveDate.Format("2006-01-02"),
	}
}

func mapClaimPolicyToResponse(p FinancialClaimPolicy) ClaimPolicyResponse {
	return ClaimPolicyResponse{
		ID:                  p.ID.String(),
		Category:            p.Category,
		AnnualLimit:         p.AnnualLimit,
		LimitPerApplication: p.LimitPerApplication,
		ExcludedEmployeeIDs: p.ExcludedEmployeeIDs,
		Enabled:             p.Enabled,
	}
}

func mapOvertimePolicyToResponse(p OvertimeRatePolicy) OvertimePolicyResponse {
	return OvertimePolicyResponse{
		ID:                p.ID.String(),
		NormalRate:        p.NormalRate,
		RestDayRate:       p.RestDayRate,
		PublicHolidayRate: p.PublicHolidayRate,
		CustomHourlyRate:  p.CustomHourlyRate,
	}
}
