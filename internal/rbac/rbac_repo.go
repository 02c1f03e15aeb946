package rbac

import (
	"gorm.io/gorm"
)

type RolePermission struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Role     string `gorm:"type:varchar(50);not null;index:idx_role_permissions_role"`
	Resource string `gorm:"type:varchar(50);not null"`
	Action   string `gorm:"type:varchar(50);not null"`
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRolePermissions() ([]RolePermission, error) {
	var perms []RolePermission
	err := r.db.Find(&perms).Error
	return perms, err
}
