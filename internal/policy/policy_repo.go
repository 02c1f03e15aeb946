package policy

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindStatutoryRatesAt(ctx context.Context, asOf time.Time) (*StatutoryRates, error)
	SaveStatutoryRates(ctx context.Context, rates *StatutoryRates) error
	FindClaimPolicyByCategory(ctx context.Context, category string) (*FinancialClaimPolicy, error)
	FindAllClaimPolicies(ctx context.Context) ([]FinancialClaimPolicy, error)
	CreateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error
	UpdateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error
	DeleteClaimPolicy(ctx context.Context, id string) error
	FindOvertimePolicy(ctx context.Context) (*OvertimeRatePolicy, error)
	SaveOvertimePolicy(ctx context.Context, p *OvertimeRatePolicy) error
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

func (r *repository) FindStatutoryRatesAt(ctx context.Context, asOf time.Time) (*StatutoryRates, error) {
	var rates StatutoryRates
	err := r.db.WithContext(ctx).
		Where("effective_date <= ?", asOf).
		Order("effective_date DESC").
		First(&rates).Error
	return &rates, err
}

func (r *repository) SaveStatutoryRates(ctx context.Context, rates *StatutoryRates) error {
	return r.db.WithContext(ctx).Save(rates).Error
}

func (r *repository) FindClaimPolicyByCategory(ctx context.Context, category string) (*FinancialClaimPolicy, error) {
	var p FinancialClaimPolicy
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAllClaimPolicies(ctx context.Context) ([]FinancialClaimPolicy, error) {
	var policies []FinancialClaimPolicy
	err := r.db.WithContext(ctx).
		Order("category ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) CreateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) UpdateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteClaimPolicy(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&FinancialClaimPolicy{}, "id = ?", id).Error
}

func (r *repository) FindOvertimePolicy(ctx context.Context) (*OvertimeRatePolicy, error) {
	var p OvertimeRatePolicy
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *repository) SaveOvertimePolicy(ctx context.Context, p *OvertimeRatePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}
