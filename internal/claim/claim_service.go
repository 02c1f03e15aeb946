package claim

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	claimerrors "github.com/azirkitai/utamaHR-sub001/internal/claim/errors"
	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
)

//go:generate mockgen -source=claim_service.go -destination=mock/claim_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitClaimRequest) (ClaimResponse, error)
	GetByID(ctx context.Context, id string) (ClaimResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]ClaimResponse, *response.PaginationMeta, error)
	ListPendingApproval(ctx context.Context, page, limit int) ([]ClaimResponse, *response.PaginationMeta, error)

	ApproveFirst(ctx context.Context, id, actorUserID, actorEmployeeID string) (ClaimResponse, error)
	Approve(ctx context.Context, id, actorUserID, actorEmployeeID string) (ClaimResponse, error)
	Reject(ctx context.Context, id, actorUserID, actorEmployeeID, reason string) (ClaimResponse, error)

	// MarkPaid hanya dipanggil semasa pengeluaran baucar.
	MarkPaid(ctx context.Context, id string, voucherID uuid.UUID, paidAt time.Time) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	policies  policy.Service
	salaries  salary.Service
	approvals approval.Controller
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	policies policy.Service,
	salaries salary.Service,
	approvals approval.Controller,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("claim.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("claim.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		policies:  policies,
		salaries:  salaries,
		approvals: approvals,
		logger:    l,
	}
}

func workflowFor(claimType string) string {
	if claimType == TypeOvertime {
		return approval.WorkflowOvertime
	}
	return approval.WorkflowClaim
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitClaimRequest) (ClaimResponse, error) {
	claimDate, err := time.Parse("2006-01-02", req.ClaimDate)
	if err != nil {
		return ClaimResponse{}, claimerrors.ErrInvalidClaimDate
	}

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return ClaimResponse{}, claimerrors.ErrInvalidActor
	}

	c := &ClaimApplication{
		ID:             uuid.New(),
		EmployeeID:     empID,
		Type:           req.Type,
		Category:       req.Category,
		ClaimDate:      claimDate,
		Description:    req.Description,
		SupportingDocs: req.SupportingDocs,
		Status:         StatusPending,
	}

	switch req.Type {
	case TypeFinancial:
		if !req.Amount.IsPositive() {
			return ClaimResponse{}, claimerrors.ErrInvalidClaimAmount
		}
		c.Amount = money.Round2(req.Amount)
		if err := s.validateAgainstPolicy(ctx, employeeID, req.Category, c.Amount, claimDate.Year()); err != nil {
			return ClaimResponse{}, err
		}
	case TypeOvertime:
		if !req.Hours.IsPositive() {
			return ClaimResponse{}, claimerrors.ErrInvalidClaimAmount.WithDetails(map[string]any{
				"field": "hours",
			})
		}
		c.Hours = req.Hours
		c.DayType = req.DayType
		if c.DayType == "" {
			c.DayType = policy.OvertimeDayNormal
		}
		computed, err := s.computeOvertimeAmount(ctx, employeeID, c.Hours, c.DayType, claimDate)
		if err != nil {
			return ClaimResponse{}, err
		}
		c.ComputedAmount = computed
	default:
		return ClaimResponse{}, claimerrors.ErrInvalidClaimType
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create claim failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return ClaimResponse{}, err
	}

	s.logger.Info("claim submitted",
		zap.String("claim_id", c.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("type", c.Type),
		zap.String("payable", c.PayableAmount().String()),
	)
	return mapClaimToResponse(*c), nil
}

// validateAgainstPolicy menguatkuasakan polisi claim kewangan sebelum simpan:
// polisi dimatikan, pekerja dikecualikan, limit per permohonan, limit tahunan.
func (s *service) validateAgainstPolicy(ctx context.Context, employeeID, category string, amount decimal.Decimal, year int) error {
	p, err := s.policies.GetClaimPolicy(ctx, category)
	if err != nil {
		return err
	}

	if !p.Enabled {
		return claimerrors.ErrPolicyDisabled.WithDetails(map[string]any{
			"category": category,
		})
	}
	if p.IsExcluded(employeeID) {
		return claimerrors.ErrEmployeeExcluded.WithDetails(map[string]any{
			"category": category,
		})
	}
	if p.LimitPerApplication != nil && amount.GreaterThan(*p.LimitPerApplication) {
		return claimerrors.ErrPerApplicationLimitExceeded.WithDetails(map[string]any{
			"limit":  p.LimitPerApplication.String(),
			"actual": amount.String(),
		})
	}
	if p.AnnualLimit != nil {
		committed, err := s.repo.SumCommittedYTD(ctx, employeeID, category, year)
		if err != nil {
			return err
		}
		if committed.Add(amount).GreaterThan(*p.AnnualLimit) {
			return claimerrors.ErrAnnualLimitExceeded.WithDetails(map[string]any{
				"limit":     p.AnnualLimit.String(),
				"committed": committed.String(),
				"actual":    committed.Add(amount).String(),
			})
		}
	}
	return nil
}

func (s *service) computeOvertimeAmount(ctx context.Context, employeeID string, hours decimal.Decimal, dayType string, claimDate time.Time) (decimal.Decimal, error) {
	otPolicy, err := s.policies.GetOvertimePolicy(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	snap, err := s.salaries.ResolveAt(ctx, employeeID, claimDate)
	if err != nil {
		return decimal.Zero, err
	}

	hourly := snap.HourlyRate()
	if otPolicy.CustomHourlyRate != nil {
		hourly = *otPolicy.CustomHourlyRate
	}
	return money.Round2(hourly.Mul(otPolicy.MultiplierFor(dayType)).Mul(hours)), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClaimResponse, error) {
	c, err := s.findClaim(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}
	return mapClaimToResponse(*c), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]ClaimResponse, *response.PaginationMeta, error) {
	claims, total, err := s.repo.FindByEmployee(ctx, employeeID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	meta := response.NewPaginationMeta(total, page, limit)
	return mapClaimsToResponses(claims), &meta, nil
}

func (s *service) ListPendingApproval(ctx context.Context, page, limit int) ([]ClaimResponse, *response.PaginationMeta, error) {
	claims, total, err := s.repo.FindPendingApproval(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}
	meta := response.NewPaginationMeta(total, page, limit)
	return mapClaimsToResponses(claims), &meta, nil
}

func (s *service) ApproveFirst(ctx context.Context, id, actorUserID, actorEmployeeID string) (ClaimResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return ClaimResponse{}, claimerrors.ErrInvalidActor
	}

	c, err := s.findClaim(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}

	workflow := workflowFor(c.Type)
	if err := s.approvals.Authorize(ctx, workflow, actorUserID, actorEmployeeID, approval.LevelFirst); err != nil {
		return ClaimResponse{}, err
	}
	if c.Status != StatusPending {
		return ClaimResponse{}, claimerrors.ErrNotApprovable.WithDetails(map[string]any{
			"current_status": c.Status,
		})
	}

	requiresSecond, err := s.approvals.RequiresSecondLevel(ctx, workflow)
	if err != nil {
		return ClaimResponse{}, err
	}

	now := time.Now().UTC()
	target := StatusFirstApproved
	updates := map[string]any{
		"first_approved_by": actor,
		"first_approved_at": now,
	}
	// Tanpa pelulus kedua, kelulusan pertama adalah muktamad.
	if !requiresSecond {
		target = StatusApproved
		updates["approved_by"] = actor
		updates["approved_at"] = now
	}

	rows, err := s.repo.TransitionStatus(ctx, id, StatusPending, target, updates)
	if err != nil {
		return ClaimResponse{}, err
	}
	if rows == 0 {
		return ClaimResponse{}, claimerrors.ErrStatusConflict
	}

	s.logger.Info("claim first-approved",
		zap.String("claim_id", id),
		zap.String("actor_user_id", actorUserID),
		zap.String("new_status", target),
	)
	return s.GetByID(ctx, id)
}

func (s *service) Approve(ctx context.Context, id, actorUserID, actorEmployeeID string) (ClaimResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return ClaimResponse{}, claimerrors.ErrInvalidActor
	}

	c, err := s.findClaim(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}

	workflow := workflowFor(c.Type)
	if err := s.approvals.Authorize(ctx, workflow, actorUserID, actorEmployeeID, approval.LevelSecond); err != nil {
		return ClaimResponse{}, err
	}
	// Kelulusan peringkat pertama adalah prasyarat, bukan pintasan.
	if c.Status != StatusFirstApproved {
		return ClaimResponse{}, claimerrors.ErrNotApprovable.WithDetails(map[string]any{
			"current_status":  c.Status,
			"required_status": StatusFirstApproved,
		})
	}

	rows, err := s.repo.TransitionStatus(ctx, id, StatusFirstApproved, StatusApproved, map[string]any{
		"approved_by": actor,
		"approved_at": time.Now().UTC(),
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	if rows == 0 {
		return ClaimResponse{}, claimerrors.ErrStatusConflict
	}

	s.logger.Info("claim approved",
		zap.String("claim_id", id),
		zap.String("actor_user_id", actorUserID),
	)
	return s.GetByID(ctx, id)
}

func (s *service) Reject(ctx context.Context, id, actorUserID, actorEmployeeID, reason string) (ClaimResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return ClaimResponse{}, claimerrors.ErrInvalidActor
	}

	c, err := s.findClaim(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}

	workflow := workflowFor(c.Type)
	level := approval.LevelFirst
	if c.Status == StatusFirstApproved {
		level = approval.LevelSecond
	}
	if err := s.approvals.Authorize(ctx, workflow, actorUserID, actorEmployeeID, level); err != nil {
		return ClaimResponse{}, err
	}
	if c.Status != StatusPending && c.Status != StatusFirstApproved {
		return ClaimResponse{}, claimerrors.ErrNotApprovable.WithDetails(map[string]any{
			"current_status": c.Status,
		})
	}

	rows, err := s.repo.TransitionStatus(ctx, id, c.Status, StatusRejected, map[string]any{
		"rejected_by":      actor,
		"rejected_at":      time.Now().UTC(),
		"rejection_reason": reason,
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	if rows == 0 {
		return ClaimResponse{}, claimerrors.ErrStatusConflict
	}

	s.logger.Info("claim rejected",
		zap.String("claim_id", id),
		zap.String("actor_user_id", actorUserID),
	)
	return s.GetByID(ctx, id)
}

func (s *service) MarkPaid(ctx context.Context, id string, voucherID uuid.UUID, paidAt time.Time) error {
	rows, err := s.repo.TransitionStatus(ctx, id, StatusApproved, StatusPaid, map[string]any{
		"paid_at":    paidAt,
		"voucher_id": voucherID,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return claimerrors.ErrStatusConflict
	}
	return nil
}

func (s *service) findClaim(ctx context.Context, id string) (*ClaimApplication, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimerrors.ErrClaimNotFound
		}
		return nil, err
	}
	return c, nil
}

func mapClaimsToResponses(claims []ClaimApplication) []ClaimResponse {
	resp := make([]ClaimResponse, len(claims))
	for i, c := range claims {
		resp[i] = mapClaimToResponse(c)
	}
	return resp
}

func mapClaimToResponse(c ClaimApplication) ClaimResponse {
	return ClaimResponse{
		ID:              c.ID.String(),
		EmployeeID:      c.EmployeeID.String(),
		Type:            c.Type,
		Category:        c.Category,
		Amount:          c.Amount,
		Hours:           c.Hours,
		DayType:         c.DayType,
		ComputedAmount:  c.ComputedAmount,
		PayableAmount:   c.PayableAmount(),
		ClaimDate:       c.ClaimDate.Format("2006-01-02"),
		Description:     c.Description,
		SupportingDocs:  c.SupportingDocs,
		Status:          c.Status,
		FirstApprovedBy: uuidPtrToString(c.FirstApprovedBy),
		FirstApprovedAt: timePtrToString(c.FirstApprovedAt),
		ApprovedBy:      uuidPtrToString(c.ApprovedBy),
		ApprovedAt:      timePtrToString(c.ApprovedAt),
		RejectedBy:      uuidPtrToString(c.RejectedBy),
		RejectedAt:      timePtrToString(c.RejectedAt),
		RejectionReason: c.RejectionReason,
		PaidAt:          timePtrToString(c.PaidAt),
		VoucherID:       uuidPtrToString(c.VoucherID),
	}
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
