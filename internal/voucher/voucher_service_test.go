package voucher

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	approvalerrors "github.com/azirkitai/utamaHR-sub001/internal/approval/errors"
	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
	vouchererrors "github.com/azirkitai/utamaHR-sub001/internal/voucher/errors"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// --- fakes ---

type fakeVoucherRepo struct {
	created            []*PaymentVoucher
	findByIDFn         func(ctx context.Context, id string) (*PaymentVoucher, error)
	transitionStatusFn func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error)
}

func (f *fakeVoucherRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeVoucherRepo) Create(ctx context.Context, v *PaymentVoucher) error {
	f.created = append(f.created, v)
	return nil
}
func (f *fakeVoucherRepo) FindByID(ctx context.Context, id string) (*PaymentVoucher, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeVoucherRepo) List(ctx context.Context, status string, page, limit int) ([]PaymentVoucher, int64, error) {
	return nil, 0, nil
}
func (f *fakeVoucherRepo) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	return f.transitionStatusFn(ctx, id, from, to, updates)
}
func (f *fakeVoucherRepo) FindPayeeName(ctx context.Context, employeeID string) (string, error) {
	return "Siti Aminah", nil
}

type fakeClaimRepo struct {
	byID           map[string]*claim.ClaimApplication
	approvedUnpaid []claim.ClaimApplication
	tagged         []string
}

func (f *fakeClaimRepo) WithTx(tx *sql.Tx) claim.Repository                          { return f }
func (f *fakeClaimRepo) Create(ctx context.Context, c *claim.ClaimApplication) error { return nil }
func (f *fakeClaimRepo) FindByID(ctx context.Context, id string) (*claim.ClaimApplication, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeClaimRepo) FindByEmployee(ctx context.Context, employeeID string, page, limit int) ([]claim.ClaimApplication, int64, error) {
	return nil, 0, nil
}
func (f *fakeClaimRepo) FindPendingApproval(ctx context.Context, page, limit int) ([]claim.ClaimApplication, int64, error) {
	return nil, 0, nil
}
func (f *fakeClaimRepo) SumCommittedYTD(ctx context.Context, employeeID, category string, year int) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeClaimRepo) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	f.tagged = append(f.tagged, id)
	return 1, nil
}
func (f *fakeClaimRepo) FindApprovedInPeriod(ctx context.Context, employeeID, claimType string, start, end time.Time) ([]claim.ClaimApplication, error) {
	return nil, nil
}
func (f *fakeClaimRepo) FindApprovedUnpaid(ctx context.Context) ([]claim.ClaimApplication, error) {
	return f.approvedUnpaid, nil
}

type fakeClaimService struct {
	paid []string
}

func (f *fakeClaimService) Submit(ctx context.Context, employeeID string, req claim.SubmitClaimRequest) (claim.ClaimResponse, error) {
	return claim.ClaimResponse{}, nil
}
func (f *fakeClaimService) GetByID(ctx context.Context, id string) (claim.ClaimResponse, error) {
	return claim.ClaimResponse{}, nil
}
func (f *fakeClaimService) ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]claim.ClaimResponse, *response.PaginationMeta, error) {
	return nil, nil, nil
}
func (f *fakeClaimService) ListPendingApproval(ctx context.Context, page, limit int) ([]claim.ClaimResponse, *response.PaginationMeta, error) {
	return nil, nil, nil
}
func (f *fakeClaimService) ApproveFirst(ctx context.Context, id, actorUserID, actorEmployeeID string) (claim.ClaimResponse, error) {
	return claim.ClaimResponse{}, nil
}
func (f *fakeClaimService) Approve(ctx context.Context, id, actorUserID, actorEmployeeID string) (claim.ClaimResponse, error) {
	return claim.ClaimResponse{}, nil
}
func (f *fakeClaimService) Reject(ctx context.Context, id, actorUserID, actorEmployeeID, reason string) (claim.ClaimResponse, error) {
	return claim.ClaimResponse{}, nil
}
func (f *fakeClaimService) MarkPaid(ctx context.Context, id string, voucherID uuid.UUID, paidAt time.Time) error {
	f.paid = append(f.paid, id)
	return nil
}

type fakeCounterRepo struct {
	next int64
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, prefix string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeApprovalController struct {
	authorizeErr    error
	authorizeAnyErr error
}

func (f *fakeApprovalController) Resolve(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) (approval.Capability, error) {
	return approval.Capability{FirstLevel: true, Enabled: true}, nil
}
func (f *fakeApprovalController) Authorize(ctx context.Context, workflowType, actorUserID, actorEmployeeID, level string) error {
	return f.authorizeErr
}
func (f *fakeApprovalController) AuthorizeAnyLevel(ctx context.Context, workflowType, actorUserID, actorEmployeeID string) error {
	return f.authorizeAnyErr
}
func (f *fakeApprovalController) RequiresSecondLevel(ctx context.Context, workflowType string) (bool, error) {
	return false, nil
}
func (f *fakeApprovalController) GetAllSettings(ctx context.Context) ([]approval.ApprovalSettingResponse, error) {
	return nil, nil
}
func (f *fakeApprovalController) UpsertSetting(ctx context.Context, req approval.UpsertApprovalSettingRequest) (approval.ApprovalSettingResponse, error) {
	return approval.ApprovalSettingResponse{}, nil
}

type fakeOutboxRepo struct {
	inserted []*kafka.OutboxMessage
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Insert(ctx context.Context, msg *kafka.OutboxMessage) error {
	f.inserted = append(f.inserted, msg)
	return nil
}
func (f *fakeOutboxRepo) FetchPending(ctx context.Context, limit int) ([]kafka.OutboxMessage, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, ids []uuid.UUID) error { return nil }

// --- helpers ---

func approvedClaim(employeeID uuid.UUID, amount string) claim.ClaimApplication {
	return claim.ClaimApplication{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       claim.TypeFinancial,
		Category:   "MEDICAL",
		Amount:     dec(amount),
		Status:     claim.StatusApproved,
	}
}

func newVoucherService(
	db *sql.DB,
	repo Repository,
	claimRepo claim.Repository,
	claims claim.Service,
	outbox kafka.OutboxRepository,
) Service {
	return NewService(db, repo, claimRepo, claims,
		&fakeCounterRepo{},
		&fakeApprovalController{},
		outbox,
		zap.NewNop(),
	)
}

// --- tests ---

func TestAggregate(t *testing.T) {
	actor := uuid.New().String()

	t.Run("claims 120 and 80 for one payee total 200.00 on a single voucher", func(t *testing.T) {
		payee := uuid.New()
		repo := &fakeVoucherRepo{}
		claimRepo := &fakeClaimRepo{
			approvedUnpaid: []claim.ClaimApplication{
				approvedClaim(payee, "120"),
				approvedClaim(payee, "80"),
			},
		}
		svc := newVoucherService(nil, repo, claimRepo, &fakeClaimService{}, &fakeOutboxRepo{})

		resp, err := svc.Aggregate(context.Background(), actor, AggregateRequest{})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.True(t, resp[0].TotalAmount.Equal(dec("200.00")))
		assert.Len(t, resp[0].ClaimIDs, 2)
		assert.Equal(t, "PV000001", resp[0].VoucherNumber)
		assert.Len(t, claimRepo.tagged, 2)
	})

	t.Run("one voucher per payee, never per category", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()
		travel := approvedClaim(first, "50")
		travel.Category = "TRAVEL"
		repo := &fakeVoucherRepo{}
		claimRepo := &fakeClaimRepo{
			approvedUnpaid: []claim.ClaimApplication{
				approvedClaim(first, "120"),
				approvedClaim(second, "75.50"),
				travel,
			},
		}
		svc := newVoucherService(nil, repo, claimRepo, &fakeClaimService{}, &fakeOutboxRepo{})

		resp, err := svc.Aggregate(context.Background(), actor, AggregateRequest{})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, first.String(), resp[0].PayeeEmployeeID)
		assert.True(t, resp[0].TotalAmount.Equal(dec("170")), "both categories on one voucher")
		assert.Equal(t, second.String(), resp[1].PayeeEmployeeID)
		assert.True(t, resp[1].TotalAmount.Equal(dec("75.50")))
		assert.Equal(t, "PV000002", resp[1].VoucherNumber)
	})

	t.Run("overtime claims contribute their frozen computed amount", func(t *testing.T) {
		payee := uuid.New()
		overtime := claim.ClaimApplication{
			ID:             uuid.New(),
			EmployeeID:     payee,
			Type:           claim.TypeOvertime,
			Hours:          dec("4"),
			ComputedAmount: dec("100"),
			Status:         claim.StatusApproved,
		}
		claimRepo := &fakeClaimRepo{approvedUnpaid: []claim.ClaimApplication{overtime}}
		svc := newVoucherService(nil, &fakeVoucherRepo{}, claimRepo, &fakeClaimService{}, &fakeOutboxRepo{})

		resp, err := svc.Aggregate(context.Background(), actor, AggregateRequest{})

		assert.NoError(t, err)
		assert.True(t, resp[0].TotalAmount.Equal(dec("100")))
	})

	t.Run("an explicitly named pending claim is refused", func(t *testing.T) {
		pending := approvedClaim(uuid.New(), "40")
		pending.Status = claim.StatusPending
		claimRepo := &fakeClaimRepo{
			byID: map[string]*claim.ClaimApplication{pending.ID.String(): &pending},
		}
		svc := newVoucherService(nil, &fakeVoucherRepo{}, claimRepo, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.Aggregate(context.Background(), actor, AggregateRequest{ClaimIDs: []string{pending.ID.String()}})

		assert.ErrorIs(t, err, vouchererrors.ErrClaimNotPayable)
	})

	t.Run("a claim already on a voucher is refused", func(t *testing.T) {
		taken := approvedClaim(uuid.New(), "40")
		otherVoucher := uuid.New()
		taken.VoucherID = &otherVoucher
		claimRepo := &fakeClaimRepo{
			byID: map[string]*claim.ClaimApplication{taken.ID.String(): &taken},
		}
		svc := newVoucherService(nil, &fakeVoucherRepo{}, claimRepo, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.Aggregate(context.Background(), actor, AggregateRequest{ClaimIDs: []string{taken.ID.String()}})

		assert.ErrorIs(t, err, vouchererrors.ErrClaimNotPayable)
	})

	t.Run("nothing payable refuses the run", func(t *testing.T) {
		svc := newVoucherService(nil, &fakeVoucherRepo{}, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.Aggregate(context.Background(), actor, AggregateRequest{})

		assert.ErrorIs(t, err, vouchererrors.ErrNoClaimsToAggregate)
	})

	t.Run("an actor without a uuid identity is invalid input", func(t *testing.T) {
		svc := newVoucherService(nil, &fakeVoucherRepo{}, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.Aggregate(context.Background(), "service-account-7", AggregateRequest{})

		assert.ErrorIs(t, err, vouchererrors.ErrInvalidActor)
	})
}

func TestSubmitVoucher(t *testing.T) {
	actor := uuid.New().String()

	newGeneratedVoucher := func(claimIDs ...uuid.UUID) *PaymentVoucher {
		return &PaymentVoucher{
			ID:              uuid.New(),
			VoucherNumber:   "PV000007",
			PayeeEmployeeID: uuid.New(),
			ClaimIDs:        claimIDs,
			TotalAmount:     dec("200"),
			Status:          StatusGenerated,
			CreatedBy:       uuid.New(),
		}
	}

	t.Run("marks claims paid and writes the outbox event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		claimA := uuid.New()
		claimB := uuid.New()
		v := newGeneratedVoucher(claimA, claimB)
		repo := &fakeVoucherRepo{
			findByIDFn: func(ctx context.Context, id string) (*PaymentVoucher, error) { return v, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				assert.Equal(t, StatusGenerated, from)
				assert.Equal(t, StatusProcessing, to)
				return 1, nil
			},
		}
		claims := &fakeClaimService{}
		outbox := &fakeOutboxRepo{}
		svc := newVoucherService(db, repo, &fakeClaimRepo{}, claims, outbox)

		_, err = svc.Submit(context.Background(), v.ID.String(), actor, "")

		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{claimA.String(), claimB.String()}, claims.paid)
		assert.Len(t, outbox.inserted, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an approver holding only the second level is accepted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		v := newGeneratedVoucher(uuid.New())
		repo := &fakeVoucherRepo{
			findByIDFn: func(ctx context.Context, id string) (*PaymentVoucher, error) { return v, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 1, nil
			},
		}
		// Peringkat tunggal akan menolak pelaku ini; penghantaran baucar
		// menerima pelulus pembayaran pada mana-mana peringkat.
		approvals := &fakeApprovalController{authorizeErr: approvalerrors.ErrNotAnApprover}
		svc := NewService(db, repo, &fakeClaimRepo{}, &fakeClaimService{},
			&fakeCounterRepo{}, approvals, &fakeOutboxRepo{}, zap.NewNop())

		_, err = svc.Submit(context.Background(), v.ID.String(), actor, uuid.New().String())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an actor without a uuid identity is rejected, never a crash", func(t *testing.T) {
		v := newGeneratedVoucher(uuid.New())
		repo := &fakeVoucherRepo{
			findByIDFn: func(ctx context.Context, id string) (*PaymentVoucher, error) { return v, nil },
		}
		svc := newVoucherService(nil, repo, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.Submit(context.Background(), v.ID.String(), "service-account-7", "")

		assert.ErrorIs(t, err, vouchererrors.ErrInvalidActor)
	})

	t.Run("a lost status race rolls back and pays nothing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		v := newGeneratedVoucher(uuid.New())
		repo := &fakeVoucherRepo{
			findByIDFn: func(ctx context.Context, id string) (*PaymentVoucher, error) { return v, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 0, nil
			},
		}
		claims := &fakeClaimService{}
		outbox := &fakeOutboxRepo{}
		svc := newVoucherService(db, repo, &fakeClaimRepo{}, claims, outbox)

		_, err = svc.Submit(context.Background(), v.ID.String(), actor, "")

		assert.ErrorIs(t, err, vouchererrors.ErrStatusConflict)
		assert.Empty(t, claims.paid)
		assert.Empty(t, outbox.inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkPaidVoucher(t *testing.T) {
	t.Run("processing vouchers become paid with a payment date", func(t *testing.T) {
		v := &PaymentVoucher{ID: uuid.New(), Status: StatusPaid}
		repo := &fakeVoucherRepo{
			findByIDFn: func(ctx context.Context, id string) (*PaymentVoucher, error) { return v, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				assert.Equal(t, StatusProcessing, from)
				assert.Equal(t, StatusPaid, to)
				assert.Contains(t, updates, "payment_date")
				return 1, nil
			},
		}
		svc := newVoucherService(nil, repo, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		resp, err := svc.MarkPaid(context.Background(), v.ID.String(), MarkPaidRequest{PaymentDate: "2025-04-05"})

		assert.NoError(t, err)
		assert.Equal(t, StatusPaid, resp.Status)
	})

	t.Run("a malformed payment date is rejected", func(t *testing.T) {
		svc := newVoucherService(nil, &fakeVoucherRepo{}, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.MarkPaid(context.Background(), uuid.New().String(), MarkPaidRequest{PaymentDate: "05/04/2025"})

		assert.ErrorIs(t, err, vouchererrors.ErrInvalidPaymentDate)
	})

	t.Run("an already paid voucher loses the race", func(t *testing.T) {
		repo := &fakeVoucherRepo{
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 0, nil
			},
		}
		svc := newVoucherService(nil, repo, &fakeClaimRepo{}, &fakeClaimService{}, &fakeOutboxRepo{})

		_, err := svc.MarkPaid(context.Background(), uuid.New().String(), MarkPaidRequest{PaymentDate: "2025-04-05"})

		assert.ErrorIs(t, err, vouchererrors.ErrStatusConflict)
	})
}
