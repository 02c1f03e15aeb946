package voucher

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

//go:generate mockgen -source=voucher_repo.go -destination=mock/voucher_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *PaymentVoucher) error
	FindByID(ctx context.Context, id string) (*PaymentVoucher, error)
	List(ctx context.Context, status string, page, limit int) ([]PaymentVoucher, int64, error)

	// TransitionStatus sets updates only while the current status still
	// matches from; a zero row count means the caller lost the race.
	TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error)

	// FindPayeeName membaca nama pekerja dari jadual employees. Rentetan
	// kosong apabila rekod tiada; penomboran baucar tidak bergantung padanya.
	FindPayeeName(ctx context.Context, employeeID string) (string, error)
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

func (r *repository) Create(ctx context.Context, v *PaymentVoucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PaymentVoucher, error) {
	var v PaymentVoucher
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&v).Error
	return &v, err
}

func (r *repository) List(ctx context.Context, status string, page, limit int) ([]PaymentVoucher, int64, error) {
	var vouchers []PaymentVoucher
	var total int64

	q := r.db.WithContext(ctx).Model(&PaymentVoucher{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vouchers).Error
	return vouchers, total, err
}

func (r *repository) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	if r.tx != nil {
		return r.transitionStatusTx(ctx, id, from, to, updates)
	}

	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).Model(&PaymentVoucher{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// transitionStatusTx menjalankan peralihan dalam transaksi sql mentah supaya
// perubahan status dan penulisan outbox berkongsi commit yang sama.
func (r *repository) transitionStatusTx(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	query := `UPDATE payment_vouchers SET status = $1, updated_at = NOW()`
	args := []any{to}
	idx := 2

	for _, col := range []string{"submitted_by", "submitted_at", "payment_date", "paid_at"} {
		if v, ok := updates[col]; ok {
			query += `, ` + col + ` = $` + strconv.Itoa(idx)
			args = append(args, v)
			idx++
		}
	}
	query += ` WHERE id = $` + strconv.Itoa(idx) + ` AND status = $` + strconv.Itoa(idx+1)
	args = append(args, id, from)

	result, err := r.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) FindPayeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("full_name").
		Where("id = ?", employeeID).
		Scan(&name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return name, err
}
