package approval

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvalerrors "github.com/azirkitai/utamaHR-sub001/internal/approval/errors"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Controller interface {
	// Resolve adalah satu-satunya fungsi penyelesaian keupayaan. Tetapan
	// dimuat per panggilan, tidak pernah dicache. Pelaku dipadankan melalui
	// user ID atau rekod pekerja yang ditautkan; actorEmployeeID boleh kosong.
	Resolve(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) (Capability, error)
	// Authorize gagal dengan Unauthorized jika pelaku tidak boleh meluluskan
	// pada peringkat yang diminta.
	Authorize(ctx context.Context, workflowType, actorUserID, actorEmployeeID, level string) error
	// AuthorizeAnyLevel lulus selagi pelaku adalah pelulus yang dikonfigurasi
	// pada mana-mana peringkat aliran kerja.
	AuthorizeAnyLevel(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) error
	// RequiresSecondLevel reports whether the workflow is configured with a
	// second approver.
	RequiresSecondLevel(ctx context.Context, workflowType string) (bool, error)

	GetAllSettings(ctx context.Context) ([]ApprovalSettingResponse, error)
	UpsertSetting(ctx context.Context, req UpsertApprovalSettingRequest) (ApprovalSettingResponse, error)
}

type controller struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewController(db *sql.DB, repo Repository, logger ...*zap.Logger) Controller {
	l := zap.L().Named("approval.controller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.controller")
	}
	return &controller{db: db, repo: repo, logger: l}
}

func (c *controller) Resolve(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) (Capability, error) {
	if !IsValidWorkflow(workflowType) {
		return Capability{}, approvalerrors.ErrInvalidWorkflowType
	}

	setting, err := c.repo.FindByWorkflow(ctx, workflowType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Capability{}, approvalerrors.ErrSettingNotFound
		}
		return Capability{}, err
	}

	cap := Capability{Enabled: setting.Enabled}
	if setting.FirstApproverUserID.String() == actorUserID ||
		matchesEmployee(setting.FirstApproverEmployeeID, actorEmployeeID) {
		cap.FirstLevel = true
	}
	if (setting.SecondApproverUserID != nil && setting.SecondApproverUserID.String() == actorUserID) ||
		matchesEmployee(setting.SecondApproverEmployeeID, actorEmployeeID) {
		cap.SecondLevel = true
	}
	return cap, nil
}

func matchesEmployee(approverEmployeeID *uuid.UUID, actorEmployeeID string) bool {
	return approverEmployeeID != nil && actorEmployeeID != "" &&
		approverEmployeeID.String() == actorEmployeeID
}

func (c *controller) Authorize(ctx context.Context, workflowType, actorUserID, actorEmployeeID, level string) error {
	cap, err := c.Resolve(ctx, workflowType, actorUserID, actorEmployeeID)
	if err != nil {
		return err
	}

	if !cap.Enabled {
		return approvalerrors.ErrWorkflowDisabled.WithDetails(map[string]any{
			"workflow": workflowType,
		})
	}
	if !cap.CanApprove(level) {
		c.logger.Warn("approval denied",
			zap.String("workflow", workflowType),
			zap.String("actor_user_id", actorUserID),
			zap.String("level", level),
		)
		return approvalerrors.ErrNotAnApprover.WithDetails(map[string]any{
			"workflow": workflowType,
			"level":    level,
		})
	}
	return nil
}

func (c *controller) AuthorizeAnyLevel(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) error {
	cap, err := c.Resolve(ctx, workflowType, actorUserID, actorEmployeeID)
	if err != nil {
		return err
	}

	if !cap.Enabled {
		return approvalerrors.ErrWorkflowDisabled.WithDetails(map[string]any{
			"workflow": workflowType,
		})
	}
	if !cap.CanApproveAny() {
		c.logger.Warn("approval denied",
			zap.String("workflow", workflowType),
			zap.String("actor_user_id", actorUserID),
		)
		return approvalerrors.ErrNotAnApprover.WithDetails(map[string]any{
			"workflow": workflowType,
		})
	}
	return nil
}

func (c *controller) RequiresSecondLevel(ctx context.Context, workflowType string) (bool, error) {
	setting, err := c.repo.FindByWorkflow(ctx, workflowType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, approvalerrors.ErrSettingNotFound
		}
		return false, err
	}
	return setting.RequiresSecondLevel(), nil
}

func (c *controller) GetAllSettings(ctx context.Context) ([]ApprovalSettingResponse, error) {
	settings, err := c.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ApprovalSettingResponse, len(settings))
	for i, s := range settings {
		resp[i] = mapSettingToResponse(s)
	}
	return resp, nil
}

func (c *controller) UpsertSetting(ctx context.Context, req UpsertApprovalSettingRequest) (ApprovalSettingResponse, error) {
	firstUserID, err := uuid.Parse(req.FirstApproverUserID)
	if err != nil {
		return ApprovalSettingResponse{}, approvalerrors.ErrInvalidWorkflowType
	}

	setting, err := c.repo.FindByWorkflow(ctx, req.WorkflowType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalSettingResponse{}, err
		}
		setting = &ApprovalSetting{ID: uuid.New(), WorkflowType: req.WorkflowType}
	}

	setting.FirstApproverUserID = firstUserID
	setting.FirstApproverEmployeeID = parseOptionalUUID(req.FirstApproverEmployeeID)
	setting.SecondApproverUserID = parseOptionalUUID(req.SecondApproverUserID)
	setting.SecondApproverEmployeeID = parseOptionalUUID(req.SecondApproverEmployeeID)
	if req.Enabled != nil {
		setting.Enabled = *req.Enabled
	} else if setting.CreatedAt.IsZero() {
		setting.Enabled = true
	}

	if err := c.repo.Save(ctx, setting); err != nil {
		c.logger.Error("save approval setting failed",
			zap.String("workflow", req.WorkflowType),
			zap.Error(err),
		)
		return ApprovalSettingResponse{}, err
	}

	c.logger.Info("approval setting saved",
		zap.String("workflow", req.WorkflowType),
		zap.Bool("enabled", setting.Enabled),
	)
	return mapSettingToResponse(*setting), nil
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapSettingToResponse(s ApprovalSetting) ApprovalSettingResponse {
	return ApprovalSettingResponse{
		ID:                       s.ID.String(),
		WorkflowType:             s.WorkflowType,
		FirstApproverUserID:      s.FirstApproverUserID.String(),
		FirstApproverEmployeeID:  uuidPtrToString(s.FirstApproverEmployeeID),
		SecondApproverUserID:     uuidPtrToString(s.SecondApproverUserID),
		SecondApproverEmployeeID: uuidPtrToString(s.SecondApproverEmployeeID),
		Enabled:                  s.Enabled,
	}
}
