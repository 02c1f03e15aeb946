package approval

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByWorkflow(ctx context.Context, workflowType string) (*ApprovalSetting, error)
	FindAll(ctx context.Context) ([]ApprovalSetting, error)
	Save(ctx context.Context, setting *ApprovalSetting) error
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

func (r *repository) FindByWorkflow(ctx context.Context, workflowType string) (*ApprovalSetting, error) {
	var setting ApprovalSetting
	err := r.db.WithContext(ctx).
		Where("workflow_type = ?", workflowType).
		First(&setting).Error
	return &setting, err
}

func (r *repository) FindAll(ctx context.Context) ([]ApprovalSetting, error) {
	var settings []ApprovalSetting
	err := r.db.WithContext(ctx).
		Order("workflow_type ASC").
		Find(&settings).Error
	return settings, err
}

func (r *repository) Save(ctx context.Context, setting *ApprovalSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
