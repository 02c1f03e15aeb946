package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	approvalerrors "github.com/azirkitai/utamaHR-sub001/internal/approval/errors"
	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	payrollerrors "github.com/azirkitai/utamaHR-sub001/internal/payroll/errors"
	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	salaryerrors "github.com/azirkitai/utamaHR-sub001/internal/salary/errors"
)

// --- fakes ---

type fakeDocRepo struct {
	createFn           func(ctx context.Context, doc *PayrollDocument) error
	findByIDFn         func(ctx context.Context, id string) (*PayrollDocument, error)
	transitionStatusFn func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error)
	deleteFn           func(ctx context.Context, id string) error
	withTxCalled       bool
}

func (f *fakeDocRepo) WithTx(tx *sql.Tx) DocumentRepository {
	f.withTxCalled = true
	return f
}
func (f *fakeDocRepo) Create(ctx context.Context, doc *PayrollDocument) error {
	return f.createFn(ctx, doc)
}
func (f *fakeDocRepo) FindByID(ctx context.Context, id string) (*PayrollDocument, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeDocRepo) FindByPeriod(ctx context.Context, year, month int) (*PayrollDocument, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDocRepo) List(ctx context.Context, page, limit int) ([]PayrollDocument, int64, error) {
	return nil, 0, nil
}
func (f *fakeDocRepo) TransitionStatus(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
	return f.transitionStatusFn(ctx, id, from, to, updates)
}
func (f *fakeDocRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeItemRepo struct {
	upsertFn       func(ctx context.Context, item *PayrollItem) error
	findByDocFn    func(ctx context.Context, documentID string) ([]PayrollItem, error)
	findByDocEmpFn func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error)
	lockByDocFn    func(ctx context.Context, documentID string) (int64, error)
}

func (f *fakeItemRepo) WithTx(tx *sql.Tx) ItemRepository { return f }
func (f *fakeItemRepo) Upsert(ctx context.Context, item *PayrollItem) error {
	return f.upsertFn(ctx, item)
}
func (f *fakeItemRepo) FindByDocument(ctx context.Context, documentID string) ([]PayrollItem, error) {
	return f.findByDocFn(ctx, documentID)
}
func (f *fakeItemRepo) FindByDocumentAndEmployee(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
	return f.findByDocEmpFn(ctx, documentID, employeeID)
}
func (f *fakeItemRepo) LockByDocument(ctx context.Context, documentID string) (int64, error) {
	return f.lockByDocFn(ctx, documentID)
}
func (f *fakeItemRepo) DeleteByDocument(ctx context.Context, documentID string) error { return nil }

type fakeClaimRepo struct {
	approvedInPeriod map[string][]claim.ClaimApplication
}

func (f *fakeClaimRepo) WithTx(tx *sql.Tx) claim.Repository                     { return f }
func (f *fakeClaimRepo) Create(ctx context.Context, c *claim.ClaimApplication) error { return nil }
func (f *fakeClaimRepo) FindByID(ctx context.Context, id string) (*claim.ClaimApplication, error) {
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
	return 1, nil
}
func (f *fakeClaimRepo) FindApprovedInPeriod(ctx context.Context, employeeID, claimType string, start, end time.Time) ([]claim.ClaimApplication, error) {
	return f.approvedInPeriod[claimType], nil
}
func (f *fakeClaimRepo) FindApprovedUnpaid(ctx context.Context) ([]claim.ClaimApplication, error) {
	return nil, nil
}

type fakeSourceRepo struct {
	unpaidLeaveDays decimal.Decimal
	latenessMinutes decimal.Decimal
	employeeName    string
}

func (f *fakeSourceRepo) UnpaidLeaveDays(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	return f.unpaidLeaveDays, nil
}
func (f *fakeSourceRepo) LatenessMinutes(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	return f.latenessMinutes, nil
}
func (f *fakeSourceRepo) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	return f.employeeName, nil
}

type fakeSalaryService struct {
	snapshots map[string]salary.SalarySnapshot
	ids       []string
}

func (f *fakeSalaryService) ResolveAt(ctx context.Context, employeeID string, asOf time.Time) (salary.SalarySnapshot, error) {
	snap, ok := f.snapshots[employeeID]
	if !ok {
		return salary.SalarySnapshot{}, salaryerrors.ErrSalaryConfigNotFound
	}
	return snap, nil
}
func (f *fakeSalaryService) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	return f.ids, nil
}
func (f *fakeSalaryService) Upsert(ctx context.Context, req salary.UpsertSalaryConfigRequest) (salary.SalaryConfigResponse, error) {
	return salary.SalaryConfigResponse{}, nil
}
func (f *fakeSalaryService) GetByEmployee(ctx context.Context, employeeID string) (salary.SalaryConfigResponse, error) {
	return salary.SalaryConfigResponse{}, nil
}
func (f *fakeSalaryService) Delete(ctx context.Context, id string) error { return nil }

type fakePolicyService struct {
	rates policy.StatutoryRates
}

func (f *fakePolicyService) GetStatutoryRatesAt(ctx context.Context, asOf time.Time) (policy.StatutoryRates, error) {
	return f.rates, nil
}
func (f *fakePolicyService) GetClaimPolicy(ctx context.Context, category string) (policy.FinancialClaimPolicy, error) {
	return policy.FinancialClaimPolicy{}, nil
}
func (f *fakePolicyService) GetOvertimePolicy(ctx context.Context) (policy.OvertimeRatePolicy, error) {
	return policy.OvertimeRatePolicy{}, nil
}
func (f *fakePolicyService) UpsertStatutoryRates(ctx context.Context, req policy.UpsertStatutoryRatesRequest) (policy.StatutoryRatesResponse, error) {
	return policy.StatutoryRatesResponse{}, nil
}
func (f *fakePolicyService) GetAllClaimPolicies(ctx context.Context) ([]policy.ClaimPolicyResponse, error) {
	return nil, nil
}
func (f *fakePolicyService) CreateClaimPolicy(ctx context.Context, req policy.CreateClaimPolicyRequest) (policy.ClaimPolicyResponse, error) {
	return policy.ClaimPolicyResponse{}, nil
}
func (f *fakePolicyService) UpdateClaimPolicy(ctx context.Context, id string, req policy.UpdateClaimPolicyRequest) (policy.ClaimPolicyResponse, error) {
	return policy.ClaimPolicyResponse{}, nil
}
func (f *fakePolicyService) DeleteClaimPolicy(ctx context.Context, id string) error { return nil }
func (f *fakePolicyService) UpdateOvertimePolicy(ctx context.Context, req policy.UpdateOvertimePolicyRequest) (policy.OvertimePolicyResponse, error) {
	return policy.OvertimePolicyResponse{}, nil
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

func editableDoc(status string) *PayrollDocument {
	return &PayrollDocument{
		ID:                 uuid.New(),
		Year:               2025,
		Month:              3,
		Status:             status,
		IncludeClaims:      true,
		IncludeOvertime:    true,
		IncludeUnpaidLeave: true,
		IncludeLateness:    true,
		CreatedBy:          uuid.New(),
	}
}

func newPayrollService(
	db *sql.DB,
	docs DocumentRepository,
	items ItemRepository,
	claims claim.Repository,
	source SourceDataRepository,
	salaries salary.Service,
	outbox kafka.OutboxRepository,
) Service {
	return NewService(db, docs, items,
		NewAggregator(claims, source),
		source,
		salaries,
		&fakePolicyService{rates: standardRates()},
		&fakeApprovalController{},
		outbox,
		zap.NewNop(),
	)
}

// --- tests ---

func TestCreateDocument(t *testing.T) {
	actor := uuid.New().String()

	t.Run("duplicate period maps to conflict", func(t *testing.T) {
		docs := &fakeDocRepo{
			createFn: func(ctx context.Context, doc *PayrollDocument) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_period"}
			},
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Create(context.Background(), actor, CreateDocumentRequest{Year: 2025, Month: 3})

		assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
	})

	t.Run("month outside 1..12 is rejected", func(t *testing.T) {
		svc := newPayrollService(nil, &fakeDocRepo{}, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Create(context.Background(), actor, CreateDocumentRequest{Year: 2025, Month: 13})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})

	t.Run("an actor without a uuid identity is invalid input", func(t *testing.T) {
		svc := newPayrollService(nil, &fakeDocRepo{}, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Create(context.Background(), "service-account-7", CreateDocumentRequest{Year: 2025, Month: 3})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidActor)
	})

	t.Run("aggregation flags default on", func(t *testing.T) {
		var created *PayrollDocument
		docs := &fakeDocRepo{
			createFn: func(ctx context.Context, doc *PayrollDocument) error {
				created = doc
				return nil
			},
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Create(context.Background(), actor, CreateDocumentRequest{Year: 2025, Month: 3})

		assert.NoError(t, err)
		assert.True(t, created.IncludeClaims)
		assert.True(t, created.IncludeLateness)
	})
}

func TestGenerate(t *testing.T) {
	actor := uuid.New().String()
	withSalary := uuid.New()
	withoutSalary := uuid.New()

	snapshots := map[string]salary.SalarySnapshot{
		withSalary.String(): {
			EmployeeID:    withSalary,
			SalaryType:    salary.SalaryTypeMonthly,
			BasicSalary:   dec("3000"),
			EPFEnrolled:   true,
			SOCSOEnrolled: true,
			EISEnrolled:   true,
		},
	}

	t.Run("missing salary configuration excludes the employee, not the batch", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		var upserted []*PayrollItem

		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			upsertFn: func(ctx context.Context, item *PayrollItem) error {
				upserted = append(upserted, item)
				return nil
			},
			findByDocEmpFn: func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		salaries := &fakeSalaryService{
			snapshots: snapshots,
			ids:       []string{withSalary.String(), withoutSalary.String()},
		}
		source := &fakeSourceRepo{employeeName: "Siti Aminah"}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, source, salaries, &fakeOutboxRepo{})

		result, err := svc.Generate(context.Background(), doc.ID.String(), actor)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.GeneratedCount)
		assert.Len(t, result.Exclusions, 1)
		assert.Equal(t, withoutSalary.String(), result.Exclusions[0].EmployeeID)
		assert.Len(t, upserted, 1)
		assert.True(t, upserted[0].NetPay.Equal(dec("2735.20")))
		assert.Equal(t, "Siti Aminah", upserted[0].EmployeeName, "name frozen on the item")
		assert.Equal(t, AuditActionGenerated, upserted[0].AuditLog[0].Action)
	})

	t.Run("an upsert that loses to a concurrent lock is reported, not fatal", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			upsertFn: func(ctx context.Context, item *PayrollItem) error {
				return payrollerrors.ErrItemLocked
			},
			findByDocEmpFn: func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		salaries := &fakeSalaryService{snapshots: snapshots, ids: []string{withSalary.String()}}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, salaries, &fakeOutboxRepo{})

		result, err := svc.Generate(context.Background(), doc.ID.String(), actor)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.GeneratedCount)
		assert.Len(t, result.Exclusions, 1)
	})

	t.Run("regeneration appends RECALCULATED to the existing trail", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		var upserted *PayrollItem

		existingTrail := AuditTrail{{Action: AuditActionGenerated, ActorID: uuid.New(), At: time.Now()}}
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			upsertFn: func(ctx context.Context, item *PayrollItem) error {
				upserted = item
				return nil
			},
			findByDocEmpFn: func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
				return &PayrollItem{AuditLog: existingTrail}, nil
			},
		}
		salaries := &fakeSalaryService{snapshots: snapshots, ids: []string{withSalary.String()}}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, salaries, &fakeOutboxRepo{})

		result, err := svc.Generate(context.Background(), doc.ID.String(), actor)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.GeneratedCount)
		assert.Len(t, upserted.AuditLog, 2)
		assert.Equal(t, AuditActionRecalculated, upserted.AuditLog[1].Action)
	})

	t.Run("locked items are reported, never overwritten", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			findByDocEmpFn: func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
				return &PayrollItem{Locked: true}, nil
			},
		}
		salaries := &fakeSalaryService{snapshots: snapshots, ids: []string{withSalary.String()}}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, salaries, &fakeOutboxRepo{})

		result, err := svc.Generate(context.Background(), doc.ID.String(), actor)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.GeneratedCount)
		assert.Len(t, result.Exclusions, 1)
	})

	t.Run("approved documents refuse regeneration", func(t *testing.T) {
		doc := editableDoc(StatusApproved)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Refresh(context.Background(), doc.ID.String(), actor)

		assert.ErrorIs(t, err, payrollerrors.ErrDocumentNotEditable)
	})

	t.Run("flags zero their sub-computations independently", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		doc.IncludeClaims = false
		doc.IncludeUnpaidLeave = false

		claims := &fakeClaimRepo{approvedInPeriod: map[string][]claim.ClaimApplication{
			claim.TypeFinancial: {{Type: claim.TypeFinancial, Amount: dec("200"), Status: claim.StatusApproved}},
			claim.TypeOvertime:  {{Type: claim.TypeOvertime, ComputedAmount: dec("150"), Status: claim.StatusApproved}},
		}}
		source := &fakeSourceRepo{unpaidLeaveDays: dec("2"), latenessMinutes: dec("60")}

		var upserted *PayrollItem
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			upsertFn: func(ctx context.Context, item *PayrollItem) error {
				upserted = item
				return nil
			},
			findByDocEmpFn: func(ctx context.Context, documentID, employeeID string) (*PayrollItem, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		salaries := &fakeSalaryService{snapshots: snapshots, ids: []string{withSalary.String()}}
		svc := newPayrollService(nil, docs, items, claims, source, salaries, &fakeOutboxRepo{})

		_, err := svc.Generate(context.Background(), doc.ID.String(), actor)

		assert.NoError(t, err)
		assert.True(t, upserted.ClaimsAmount.IsZero(), "claims flag off")
		assert.True(t, upserted.UnpaidLeaveAmount.IsZero(), "unpaid leave flag off")
		assert.True(t, upserted.OvertimeAmount.Equal(dec("150")), "overtime flag still on")
		// 60 minit lewat pada kadar 14.42 sejam
		assert.True(t, upserted.LatenessAmount.Equal(dec("14.42")), "lateness flag still on, got %s", upserted.LatenessAmount)
	})
}

func TestSubmit(t *testing.T) {
	actor := uuid.New().String()

	t.Run("refuses an empty document", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			findByDocFn: func(ctx context.Context, documentID string) ([]PayrollItem, error) {
				return nil, nil
			},
		}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Submit(context.Background(), doc.ID.String(), actor)

		assert.ErrorIs(t, err, payrollerrors.ErrNoItemsToSubmit)
	})

	t.Run("losing the status race is a conflict", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 0, nil
			},
		}
		items := &fakeItemRepo{
			findByDocFn: func(ctx context.Context, documentID string) ([]PayrollItem, error) {
				return []PayrollItem{{}}, nil
			},
		}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Submit(context.Background(), doc.ID.String(), actor)

		assert.ErrorIs(t, err, payrollerrors.ErrStatusConflict)
	})

	t.Run("an actor without a uuid identity is rejected as invalid input", func(t *testing.T) {
		doc := editableDoc(StatusPreparing)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		items := &fakeItemRepo{
			findByDocFn: func(ctx context.Context, documentID string) ([]PayrollItem, error) {
				return []PayrollItem{{}}, nil
			},
		}
		svc := newPayrollService(nil, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Submit(context.Background(), doc.ID.String(), "service-account-7")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidActor)
	})
}

func TestApprove(t *testing.T) {
	actor := uuid.New().String()

	t.Run("locks items and writes the outbox event inside one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		doc := editableDoc(StatusPendingApproval)
		outbox := &fakeOutboxRepo{}
		var lockedDoc string
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				assert.Equal(t, StatusPendingApproval, from)
				assert.Equal(t, StatusApproved, to)
				return 1, nil
			},
		}
		items := &fakeItemRepo{
			lockByDocFn: func(ctx context.Context, documentID string) (int64, error) {
				lockedDoc = documentID
				return 5, nil
			},
		}
		svc := newPayrollService(db, docs, items, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, outbox)

		_, err = svc.Approve(context.Background(), doc.ID.String(), actor, "")

		assert.NoError(t, err)
		assert.Equal(t, doc.ID.String(), lockedDoc)
		assert.Len(t, outbox.inserted, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an approver holding only the second level is accepted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		doc := editableDoc(StatusPendingApproval)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 1, nil
			},
		}
		items := &fakeItemRepo{
			lockByDocFn: func(ctx context.Context, documentID string) (int64, error) { return 3, nil },
		}
		// Peringkat tunggal akan menolak pelaku ini; kelulusan pembayaran
		// menerima pelulus pada mana-mana peringkat.
		approvals := &fakeApprovalController{authorizeErr: approvalerrors.ErrNotAnApprover}
		source := &fakeSourceRepo{}
		svc := NewService(db, docs, items,
			NewAggregator(&fakeClaimRepo{}, source),
			source,
			&fakeSalaryService{},
			&fakePolicyService{rates: standardRates()},
			approvals,
			&fakeOutboxRepo{},
			zap.NewNop(),
		)

		_, err = svc.Approve(context.Background(), doc.ID.String(), actor, uuid.New().String())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an actor without a uuid identity is rejected as invalid input", func(t *testing.T) {
		doc := editableDoc(StatusPendingApproval)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		_, err := svc.Approve(context.Background(), doc.ID.String(), "service-account-7", "")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidActor)
	})

	t.Run("a lost status race rolls the transaction back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		doc := editableDoc(StatusPendingApproval)
		outbox := &fakeOutboxRepo{}
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				return 0, nil
			},
		}
		svc := newPayrollService(db, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, outbox)

		_, err = svc.Approve(context.Background(), doc.ID.String(), actor, "")

		assert.ErrorIs(t, err, payrollerrors.ErrStatusConflict)
		assert.Empty(t, outbox.inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteDocument(t *testing.T) {
	t.Run("approved documents cannot be deleted", func(t *testing.T) {
		doc := editableDoc(StatusApproved)
		docs := &fakeDocRepo{
			findByIDFn: func(ctx context.Context, id string) (*PayrollDocument, error) { return doc, nil },
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		err := svc.Delete(context.Background(), doc.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrDocumentNotDeletable)
	})
}

func TestClose(t *testing.T) {
	t.Run("closes only approved documents", func(t *testing.T) {
		docs := &fakeDocRepo{
			transitionStatusFn: func(ctx context.Context, id, from, to string, updates map[string]any) (int64, error) {
				assert.Equal(t, StatusApproved, from)
				assert.Equal(t, StatusClosed, to)
				return 1, nil
			},
		}
		svc := newPayrollService(nil, docs, &fakeItemRepo{}, &fakeClaimRepo{}, &fakeSourceRepo{}, &fakeSalaryService{}, &fakeOutboxRepo{})

		err := svc.Close(context.Background(), uuid.New().String())

		assert.NoError(t, err)
	})
}
