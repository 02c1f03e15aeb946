package salary

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cfg *SalaryConfiguration) error
	Update(ctx context.Context, cfg *SalaryConfiguration) error
	FindByID(ctx context.Context, id string) (*SalaryConfiguration, error)
	FindLatestByEmployee(ctx context.Context, employeeID string) (*SalaryConfiguration, error)
	FindEffectiveAt(ctx context.Context, employeeID string, asOf time.Time) (*SalaryConfiguration, error)
	ListEmployeeIDsWithConfiguration(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, cfg *SalaryConfiguration) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) Update(ctx context.Context, cfg *SalaryConfiguration) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryConfiguration, error) {
	var cfg SalaryConfiguration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) FindLatestByEmployee(ctx context.Context, employeeID string) (*SalaryConfiguration, error) {
	var cfg SalaryConfiguration
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) FindEffectiveAt(ctx context.Context, employeeID string, asOf time.Time) (*SalaryConfiguration, error) {
	var cfg SalaryConfiguration
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND effective_date <= ?", employeeID, asOf).
		Order("effective_date DESC").
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) ListEmployeeIDsWithConfiguration(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&SalaryConfiguration{}).
		Distinct("employee_id").
		Order("employee_id ASC").
		Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SalaryConfiguration{}, "id = ?", id).Error
}
