package payroll

import (
	"context"
	"database/sql"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	payrollerrors "github.com/azirkitai/utamaHR-sub001/internal/payroll/errors"
)

//go:generate mockgen -source=item_repo.go -destination=mock/item_repo_mock.go -package=mock
type ItemRepository interface {
	WithTx(tx *sql.Tx) ItemRepository
	// Upsert menulis item atas kekangan unik (document_id, employee_id):
	// penjanaan semula menimpa nilai, bukan menduplikasi baris. Baris yang
	// sudah dikunci tidak disentuh; ErrItemLocked dikembalikan.
	Upsert(ctx context.Context, item *PayrollItem) error
	FindByDocument(ctx context.Context, documentID string) ([]PayrollItem, error)
	FindByDocumentAndEmployee(ctx context.Context, documentID, employeeID string) (*PayrollItem, error)
	LockByDocument(ctx context.Context, documentID string) (int64, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

type itemRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) WithTx(tx *sql.Tx) ItemRepository {
	return &itemRepository{db: r.db, tx: tx}
}

func (r *itemRepository) Upsert(ctx context.Context, item *PayrollItem) error {
	if r.tx != nil {
		return r.upsertTx(ctx, item)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"employee_name",
			"salary_snapshot",
			"gross_pay",
			"overtime_amount",
			"claims_amount",
			"unpaid_leave_amount",
			"lateness_amount",
			"deductions",
			"contributions",
			"total_deductions",
			"net_pay",
			"audit_log",
			"updated_at",
		}),
		// Penjanaan yang berlumba dengan kelulusan tidak boleh menimpa baris
		// yang sudah dikunci.
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "payroll_items", Name: "locked"}, Value: false},
		}},
	}).Create(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return payrollerrors.ErrItemLocked
	}
	return nil
}

func (r *itemRepository) upsertTx(ctx context.Context, item *PayrollItem) error {
	snapshot, err := json.Marshal(item.SalarySnapshot)
	if err != nil {
		return err
	}
	deductions, err := json.Marshal(item.Deductions)
	if err != nil {
		return err
	}
	contributions, err := json.Marshal(item.Contributions)
	if err != nil {
		return err
	}
	auditLog, err := json.Marshal(item.AuditLog)
	if err != nil {
		return err
	}

	result, err := r.tx.ExecContext(ctx, `
		INSERT INTO payroll_items (
			id, document_id, employee_id, employee_name, salary_snapshot,
			gross_pay, overtime_amount, claims_amount, unpaid_leave_amount, lateness_amount,
			deductions, contributions, total_deductions, net_pay, locked, audit_log,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, $15, NOW(), NOW())
		ON CONFLICT (document_id, employee_id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			salary_snapshot = EXCLUDED.salary_snapshot,
			gross_pay = EXCLUDED.gross_pay,
			overtime_amount = EXCLUDED.overtime_amount,
			claims_amount = EXCLUDED.claims_amount,
			unpaid_leave_amount = EXCLUDED.unpaid_leave_amount,
			lateness_amount = EXCLUDED.lateness_amount,
			deductions = EXCLUDED.deductions,
			contributions = EXCLUDED.contributions,
			total_deductions = EXCLUDED.total_deductions,
			net_pay = EXCLUDED.net_pay,
			audit_log = EXCLUDED.audit_log,
			updated_at = NOW()
		WHERE payroll_items.locked = FALSE`,
		item.ID, item.DocumentID, item.EmployeeID, item.EmployeeName, snapshot,
		item.GrossPay, item.OvertimeAmount, item.ClaimsAmount, item.UnpaidLeaveAmount, item.LatenessAmount,
		deductions, contributions, item.TotalDeductions, item.NetPay, auditLog,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return payrollerrors.ErrItemLocked
	}
	return nil
}

func (r *itemRepository) FindByDocument(ctx context.Context, documentID string) ([]PayrollItem, error) {
	var items []PayrollItem
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("employee_id ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) FindByDocumentAndEmployee(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
	var item PayrollItem
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND employee_id = ?", documentID, employeeID).
		First(&item).Error
	return &item, err
}

func (r *itemRepository) LockByDocument(ctx context.Context, documentID string) (int64, error) {
	if r.tx != nil {
		result, err := r.tx.ExecContext(ctx,
			`UPDATE payroll_items SET locked = TRUE, updated_at = NOW() WHERE document_id = $1 AND locked = FALSE`,
			documentID,
		)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	}

	result := r.db.WithContext(ctx).Model(&PayrollItem{}).
		Where("document_id = ? AND locked = ?", documentID, false).
		Update("locked", true)
	return result.RowsAffected, result.Error
}

func (r *itemRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&PayrollItem{}).Error
}
