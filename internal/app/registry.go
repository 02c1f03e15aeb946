package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	"github.com/azirkitai/utamaHR-sub001/internal/payroll"
	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/rbac"
	"github.com/azirkitai/utamaHR-sub001/internal/rbac/infra"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/counter"
	"github.com/azirkitai/utamaHR-sub001/internal/voucher"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	claimRepo := claim.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	documentRepo := payroll.NewDocumentRepository(gormDB)
	itemRepo := payroll.NewItemRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	sourceRepo := payroll.NewSourceDataRepository(gormDB)
	voucherRepo := voucher.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	approvalController := approval.NewController(db, approvalRepo)
	policyService := policy.NewService(db, policyRepo)
	salaryService := salary.NewService(db, salaryRepo)
	claimService := claim.NewService(db, claimRepo, policyService, salaryService, approvalController)
	payrollService := payroll.NewService(
		db,
		documentRepo,
		itemRepo,
		payroll.NewAggregator(claimRepo, sourceRepo),
		sourceRepo,
		salaryService,
		policyService,
		approvalController,
		outboxRepo,
	)
	voucherService := voucher.NewService(
		db,
		voucherRepo,
		claimRepo,
		claimService,
		counterRepo,
		approvalController,
		outboxRepo,
	)

	// --- Handlers ---
	approvalHandler := approval.NewHandler(approvalController)
	claimHandler := claim.NewHandler(claimService)
	payrollHandler := payroll.NewHandler(payrollService)
	policyHandler := policy.NewHandler(policyService)
	salaryHandler := salary.NewHandler(salaryService)
	voucherHandler := voucher.NewHandler(voucherService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		approval.RegisterRoutes(api, approvalHandler, rbacService)
		claim.RegisterRoutes(api, claimHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService)
		voucher.RegisterRoutes(api, voucherHandler, rbacService, rdb)
	}

	return nil
}
