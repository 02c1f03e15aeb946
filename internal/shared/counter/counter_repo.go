package counter

import (
	"context"

	"gorm.io/gorm"
)

// Penomoran dokumen (mis: payment voucher) harus unik dan monoton per prefix.

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, prefix string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, prefix string) (int64, error) {
	var nextValue int64

	// Raw SQL for atomic UPSERT and increment to handle concurrent number requests
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_counters (prefix, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (prefix) DO UPDATE
		SET last_value = document_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, prefix).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
