package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SourceDataRepository adalah kontrak baca tipis atas jadual cuti, kehadiran
// dan data induk pekerja. Pengurusan data itu di luar skop; payroll hanya
// membaca.
//
//go:generate mockgen -source=source_repo.go -destination=mock/source_repo_mock.go -package=mock
type SourceDataRepository interface {
	UnpaidLeaveDays(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error)
	LatenessMinutes(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error)
	// EmployeeName mengembalikan nama penuh pekerja, kosong jika tiada rekod.
	EmployeeName(ctx context.Context, employeeID string) (string, error)
}

type sourceDataRepository struct {
	db *gorm.DB
}

func NewSourceDataRepository(db *gorm.DB) SourceDataRepository {
	return &sourceDataRepository{db: db}
}

func (r *sourceDataRepository) UnpaidLeaveDays(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("COALESCE(SUM(total_days), 0)").
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("is_paid = ?", false).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *sourceDataRepository) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("full_name").
		Where("id = ?", employeeID).
		Scan(&name).Error
	return name, err
}

func (r *sourceDataRepository) LatenessMinutes(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("COALESCE(SUM(late_minutes), 0)").
		Where("employee_id = ?", employeeID).
		Where("clock_in_at >= ? AND clock_in_at < ?", start, end.AddDate(0, 0, 1)).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
