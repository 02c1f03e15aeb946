package voucher

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
	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/events"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/counter"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
	vouchererrors "github.com/azirkitai/utamaHR-sub001/internal/voucher/errors"
)

//go:generate mockgen -source=voucher_service.go -destination=mock/voucher_service_mock.go -package=mock
type Service interface {
	// Aggregate mengumpulkan claim diluluskan menjadi baucar, satu baucar
	// per penerima per larian. Pengumpulan sentiasa mengikut penerima,
	// bukan kategori claim.
	Aggregate(ctx context.Context, actorUserID string, req AggregateRequest) ([]VoucherResponse, error)

	Get(ctx context.Context, id string) (VoucherResponse, error)
	List(ctx context.Context, status string, page, limit int) ([]VoucherResponse, *response.PaginationMeta, error)

	Submit(ctx context.Context, id, actorUserID, actorEmployeeID string) (VoucherResponse, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (VoucherResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	claimRepo claim.Repository
	claims    claim.Service
	counters  counter.Repository
	approvals approval.Controller
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	claimRepo claim.Repository,
	claims claim.Service,
	counters counter.Repository,
	approvals approval.Controller,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("voucher.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("voucher.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		claimRepo: claimRepo,
		claims:    claims,
		counters:  counters,
		approvals: approvals,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Aggregate(ctx context.Context, actorUserID string, req AggregateRequest) ([]VoucherResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return nil, vouchererrors.ErrInvalidActor
	}

	claims, err := s.collectPayable(ctx, req.ClaimIDs)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, vouchererrors.ErrNoClaimsToAggregate
	}

	// Kumpulkan mengikut penerima, kekalkan tertib penemuan.
	grouped := map[uuid.UUID][]claim.ClaimApplication{}
	var payees []uuid.UUID
	for _, c := range claims {
		if _, seen := grouped[c.EmployeeID]; !seen {
			payees = append(payees, c.EmployeeID)
		}
		grouped[c.EmployeeID] = append(grouped[c.EmployeeID], c)
	}

	resp := make([]VoucherResponse, 0, len(payees))
	for _, payee := range payees {
		v, err := s.createVoucher(ctx, actor, payee, grouped[payee])
		if err != nil {
			return nil, err
		}
		resp = append(resp, mapVoucherToResponse(*v))
	}

	s.logger.Info("payment vouchers aggregated",
		zap.Int("vouchers", len(resp)),
		zap.Int("claims", len(claims)),
	)
	return resp, nil
}

func (s *service) collectPayable(ctx context.Context, claimIDs []string) ([]claim.ClaimApplication, error) {
	if len(claimIDs) == 0 {
		return s.claimRepo.FindApprovedUnpaid(ctx)
	}

	claims := make([]claim.ClaimApplication, 0, len(claimIDs))
	for _, id := range claimIDs {
		c, err := s.claimRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, vouchererrors.ErrClaimNotPayable.WithDetails(map[string]any{
					"claim_id": id,
				})
			}
			return nil, err
		}
		if c.Status != claim.StatusApproved || c.VoucherID != nil {
			return nil, vouchererrors.ErrClaimNotPayable.WithDetails(map[string]any{
				"claim_id": id,
				"status":   c.Status,
			})
		}
		claims = append(claims, *c)
	}
	return claims, nil
}

func (s *service) createVoucher(
	ctx context.Context,
	actor, payee uuid.UUID,
	claims []claim.ClaimApplication,
) (*PaymentVoucher, error) {
	seq, err := s.counters.GetNextValue(ctx, NumberPrefix)
	if err != nil {
		return nil, err
	}

	payeeName, err := s.repo.FindPayeeName(ctx, payee.String())
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	claimIDs := make([]uuid.UUID, len(claims))
	for i, c := range claims {
		total = total.Add(c.PayableAmount())
		claimIDs[i] = c.ID
	}

	v := &PaymentVoucher{
		ID:              uuid.New(),
		VoucherNumber:   FormatVoucherNumber(seq),
		PayeeEmployeeID: payee,
		PayeeName:       payeeName,
		ClaimIDs:        claimIDs,
		TotalAmount:     money.Round2(total),
		Status:          StatusGenerated,
		CreatedBy:       actor,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, mapRepositoryError(err)
	}

	// Tanda claim supaya larian agregasi berikutnya tidak mengutipnya lagi.
	for _, c := range claims {
		rows, err := s.claimRepo.TransitionStatus(ctx, c.ID.String(), claim.StatusApproved, claim.StatusApproved, map[string]any{
			"voucher_id": v.ID,
		})
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, vouchererrors.ErrClaimNotPayable.WithDetails(map[string]any{
				"claim_id": c.ID.String(),
			})
		}
	}
	return v, nil
}

func (s *service) Get(ctx context.Context, id string) (VoucherResponse, error) {
	v, err := s.findVoucher(ctx, id)
	if err != nil {
		return VoucherResponse{}, err
	}
	return mapVoucherToResponse(*v), nil
}

func (s *service) List(ctx context.Context, status string, page, limit int) ([]VoucherResponse, *response.PaginationMeta, error) {
	vouchers, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		resp[i] = mapVoucherToResponse(v)
	}
	meta := response.NewPaginationMeta(total, page, limit)
	return resp, &meta, nil
}

// Submit menghantar baucar untuk diproses: pelulus aliran kerja pembayaran
// disahkan, peralihan status dan event outbox berkongsi satu transaksi, dan
// claim di dalamnya ditanda PAID. Mana-mana pelulus pembayaran yang
// dikonfigurasi boleh menghantar, tidak kira peringkat.
func (s *service) Submit(ctx context.Context, id, actorUserID, actorEmployeeID string) (VoucherResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return VoucherResponse{}, vouchererrors.ErrInvalidActor
	}

	v, err := s.findVoucher(ctx, id)
	if err != nil {
		return VoucherResponse{}, err
	}

	if err := s.approvals.AuthorizeAnyLevel(ctx, approval.WorkflowPayment, actorUserID, actorEmployeeID); err != nil {
		return VoucherResponse{}, err
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VoucherResponse{}, err
	}
	defer tx.Rollback()

	qvouchers := s.repo.WithTx(tx)
	qoutbox := s.outbox.WithTx(tx)

	rows, err := qvouchers.TransitionStatus(ctx, id, StatusGenerated, StatusProcessing, map[string]any{
		"submitted_by": actor,
		"submitted_at": now,
	})
	if err != nil {
		return VoucherResponse{}, err
	}
	if rows == 0 {
		return VoucherResponse{}, vouchererrors.ErrStatusConflict
	}

	msg, err := kafka.NewOutboxMessage(events.TopicVoucherSubmitted, id, events.VoucherSubmitted{
		VoucherID:       v.ID,
		VoucherNumber:   v.VoucherNumber,
		PayeeEmployeeID: v.PayeeEmployeeID,
		TotalAmount:     v.TotalAmount,
		ClaimIDs:        v.ClaimIDs,
		SubmittedAt:     now,
	})
	if err != nil {
		return VoucherResponse{}, err
	}
	if err := qoutbox.Insert(ctx, msg); err != nil {
		return VoucherResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoucherResponse{}, err
	}

	for _, claimID := range v.ClaimIDs {
		if err := s.claims.MarkPaid(ctx, claimID.String(), v.ID, now); err != nil {
			s.logger.Error("failed to mark claim paid",
				zap.String("voucher_id", id),
				zap.String("claim_id", claimID.String()),
				zap.Error(err),
			)
			return VoucherResponse{}, err
		}
	}

	s.logger.Info("payment voucher submitted",
		zap.String("voucher_id", id),
		zap.String("voucher_number", v.VoucherNumber),
		zap.Int("claims", len(v.ClaimIDs)),
	)
	return s.getVoucherResponse(ctx, id)
}

func (s *service) MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (VoucherResponse, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return VoucherResponse{}, vouchererrors.ErrInvalidPaymentDate
	}

	rows, err := s.repo.TransitionStatus(ctx, id, StatusProcessing, StatusPaid, map[string]any{
		"payment_date": paymentDate,
		"paid_at":      time.Now().UTC(),
	})
	if err != nil {
		return VoucherResponse{}, err
	}
	if rows == 0 {
		return VoucherResponse{}, vouchererrors.ErrStatusConflict
	}

	s.logger.Info("payment voucher paid", zap.String("voucher_id", id))
	return s.getVoucherResponse(ctx, id)
}

func (s *service) findVoucher(ctx context.Context, id string) (*PaymentVoucher, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vouchererrors.ErrVoucherNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *service) getVoucherResponse(ctx context.Context, id string) (VoucherResponse, error) {
	v, err := s.findVoucher(ctx, id)
	if err != nil {
		return VoucherResponse{}, err
	}
	return mapVoucherToResponse(*v), nil
}

func mapVoucherToResponse(v PaymentVoucher) VoucherResponse {
	claimIDs := make([]string, len(v.ClaimIDs))
	for i, id := range v.ClaimIDs {
		claimIDs[i] = id.String()
	}
	return VoucherResponse{
		ID:              v.ID.String(),
		VoucherNumber:   v.VoucherNumber,
		PayeeEmployeeID: v.PayeeEmployeeID.String(),
		PayeeName:       v.PayeeName,
		ClaimIDs:        claimIDs,
		TotalAmount:     v.TotalAmount,
		Status:          v.Status,
		CreatedBy:       v.CreatedBy.String(),
		SubmittedBy:     uuidPtrToString(v.SubmittedBy),
		SubmittedAt:     timePtrToString(v.SubmittedAt),
		PaymentDate:     datePtrToString(v.PaymentDate),
		PaidAt:          timePtrToString(v.PaidAt),
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

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
