package claim

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=claim_repo.go -destination=mock/claim_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *ClaimApplication) error
	FindByID(ctx context.Context, id string) (*ClaimApplication, error)
	FindByEmployee(ctx context.Context, employeeID string, page, limit int) ([]ClaimApplication, int64, error)
	FindPendingApproval(ctx context.Context, page, limit int) ([]ClaimApplication, int64, error)

	// SumCommittedYTD jumlahkan claim kewangan kategori ini untuk tahun
	// berkenaan dalam status yang masih mengikat limit tahunan
	// (PENDING, FIRST_APPROVED, APPROVED, PAID).
	SumCommittedYTD(ctx context.Context, employeeID, category string, year int) (decimal.Decimal, error)

	// TransitionStatus sets updates only when the current status still
	// matches from; the returned count is 0 on a lost race.
	TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error)

	FindApprovedInPeriod(ctx context.Context, employeeID, claimType string, start, end time.Time) ([]ClaimApplication, error)
	FindApprovedUnpaid(ctx context.Context) ([]ClaimApplication, error)
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

func (r *repository) Create(ctx context.Context, c *ClaimApplication) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ClaimApplication, error) {
	var c ClaimApplication
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	return &c, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, page, limit int) ([]ClaimApplication, int64, error) {
	var claims []ClaimApplication
	var total int64

	q := r.db.WithContext(ctx).Model(&ClaimApplication{}).Where("employee_id = ?", employeeID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("claim_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&claims).Error
	return claims, total, err
}

func (r *repository) FindPendingApproval(ctx context.Context, page, limit int) ([]ClaimApplication, int64, error) {
	var claims []ClaimApplication
	var total int64

	q := r.db.WithContext(ctx).Model(&ClaimApplication{}).
		Where("status IN ?", []string{StatusPending, StatusFirstApproved})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&claims).Error
	return claims, total, err
}

func (r *repository) SumCommittedYTD(ctx context.Context, employeeID, category string, year int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&ClaimApplication{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("employee_id = ?", employeeID).
		Where("type = ?", TypeFinancial).
		Where("category = ?", category).
		Where("EXTRACT(YEAR FROM claim_date) = ?", year).
		Where("status IN ?", []string{StatusPending, StatusFirstApproved, StatusApproved, StatusPaid}).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).Model(&ClaimApplication{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// FindApprovedInPeriod hanya mengutip claim APPROVED yang belum tersangkut
// pada baucar; claim yang sudah di baucar dibayar melalui saluran itu dan
// tidak boleh masuk payslip lagi.
func (r *repository) FindApprovedInPeriod(ctx context.Context, employeeID, claimType string, start, end time.Time) ([]ClaimApplication, error) {
	var claims []ClaimApplication
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("type = ?", claimType).
		Where("status = ?", StatusApproved).
		Where("voucher_id IS NULL").
		Where("claim_date >= ? AND claim_date <= ?", start, end).
		Order("claim_date ASC").
		Find(&claims).Error
	return claims, err
}

func (r *repository) FindApprovedUnpaid(ctx context.Context) ([]ClaimApplication, error) {
	var claims []ClaimApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("voucher_id IS NULL").
		Order("employee_id ASC, claim_date ASC").
		Find(&claims).Error
	return claims, err
}
