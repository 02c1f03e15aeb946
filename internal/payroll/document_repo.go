package payroll

import (
	"context"
	"database/sql"
	"strconv"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type DocumentRepository interface {
	WithTx(tx *sql.Tx) DocumentRepository
	Create(ctx context.Context, doc *PayrollDocument) error
	FindByID(ctx context.Context, id string) (*PayrollDocument, error)
	FindByPeriod(ctx context.Context, year, month int) (*PayrollDocument, error)
	List(ctx context.Context, page, limit int) ([]PayrollDocument, int64, error)

	// TransitionStatus is the optimistic precondition check: the UPDATE only
	// fires while status still equals from, and the row count tells the
	// caller whether it won the race.
	TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error)

	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) WithTx(tx *sql.Tx) DocumentRepository {
	return &documentRepository{db: r.db, tx: tx}
}

func (r *documentRepository) Create(ctx context.Context, doc *PayrollDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*PayrollDocument, error) {
	var doc PayrollDocument
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error
	return &doc, err
}

func (r *documentRepository) FindByPeriod(ctx context.Context, year, month int) (*PayrollDocument, error) {
	var doc PayrollDocument
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		First(&doc).Error
	return &doc, err
}

func (r *documentRepository) List(ctx context.Context, page, limit int) ([]PayrollDocument, int64, error) {
	var docs []PayrollDocument
	var total int64

	q := r.db.WithContext(ctx).Model(&PayrollDocument{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("year DESC, month DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&docs).Error
	return docs, total, err
}

func (r *documentRepository) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	if r.tx != nil {
		return r.transitionStatusTx(ctx, id, from, to, updates)
	}

	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).Model(&PayrollDocument{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// transitionStatusTx menjalankan peralihan dalam transaksi sql mentah supaya
// perubahan status dan penulisan outbox berkongsi commit yang sama.
func (r *documentRepository) transitionStatusTx(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	query := `UPDATE payroll_documents SET status = $1, updated_at = NOW()`
	args := []any{to}
	idx := 2

	for _, col := range []string{"submitted_by", "submitted_at", "approved_by", "approved_at", "rejected_by", "rejected_at", "rejection_reason", "closed_at"} {
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

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&PayrollItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&PayrollDocument{}, "id = ?", id).Error
	})
}
