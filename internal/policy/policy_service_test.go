package policy

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	policyerrors "github.com/azirkitai/utamaHR-sub001/internal/policy/errors"
)

var errDuplicateCategory = &pgconn.PgError{Code: "23505", ConstraintName: "uq_claim_policy_category"}

type fakePolicyRepo struct {
	findStatutoryRatesAtFn      func(ctx context.Context, asOf time.Time) (*StatutoryRates, error)
	saveStatutoryRatesFn        func(ctx context.Context, rates *StatutoryRates) error
	findClaimPolicyByCategoryFn func(ctx context.Context, category string) (*FinancialClaimPolicy, error)
	findAllClaimPoliciesFn      func(ctx context.Context) ([]FinancialClaimPolicy, error)
	createClaimPolicyFn         func(ctx context.Context, p *FinancialClaimPolicy) error
	updateClaimPolicyFn         func(ctx context.Context, p *FinancialClaimPolicy) error
	deleteClaimPolicyFn         func(ctx context.Context, id string) error
	findOvertimePolicyFn        func(ctx context.Context) (*OvertimeRatePolicy, error)
	saveOvertimePolicyFn        func(ctx context.Context, p *OvertimeRatePolicy) error
}

func (f *fakePolicyRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePolicyRepo) FindStatutoryRatesAt(ctx context.Context, asOf time.Time) (*StatutoryRates, error) {
	return f.findStatutoryRatesAtFn(ctx, asOf)
}
func (f *fakePolicyRepo) SaveStatutoryRates(ctx context.Context, rates *StatutoryRates) error {
	return f.saveStatutoryRatesFn(ctx, rates)
}
func (f *fakePolicyRepo) FindClaimPolicyByCategory(ctx context.Context, category string) (*FinancialClaimPolicy, error) {
	return f.findClaimPolicyByCategoryFn(ctx, category)
}
func (f *fakePolicyRepo) FindAllClaimPolicies(ctx context.Context) ([]FinancialClaimPolicy, error) {
	return f.findAllClaimPoliciesFn(ctx)
}
func (f *fakePolicyRepo) CreateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error {
	return f.createClaimPolicyFn(ctx, p)
}
func (f *fakePolicyRepo) UpdateClaimPolicy(ctx context.Context, p *FinancialClaimPolicy) error {
	return f.updateClaimPolicyFn(ctx, p)
}
func (f *fakePolicyRepo) DeleteClaimPolicy(ctx context.Context, id string) error {
	return f.deleteClaimPolicyFn(ctx, id)
}
func (f *fakePolicyRepo) FindOvertimePolicy(ctx context.Context) (*OvertimeRatePolicy, error) {
	return f.findOvertimePolicyFn(ctx)
}
func (f *fakePolicyRepo) SaveOvertimePolicy(ctx context.Context, p *OvertimeRatePolicy) error {
	return f.saveOvertimePolicyFn(ctx, p)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestGetStatutoryRatesAt(t *testing.T) {
	t.Run("returns the most recent rates effective on or before asOf", func(t *testing.T) {
		want := &StatutoryRates{
			ID:              uuid.New(),
			EPFEmployeeRate: dec("0.11"),
			EPFEmployerRate: dec("0.13"),
			EffectiveDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		repo := &fakePolicyRepo{
			findStatutoryRatesAtFn: func(ctx context.Context, asOf time.Time) (*StatutoryRates, error) {
				return want, nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		got, err := svc.GetStatutoryRatesAt(context.Background(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.True(t, got.EPFEmployeeRate.Equal(dec("0.11")))
	})

	t.Run("maps record not found to sentinel", func(t *testing.T) {
		repo := &fakePolicyRepo{
			findStatutoryRatesAtFn: func(ctx context.Context, asOf time.Time) (*StatutoryRates, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		_, err := svc.GetStatutoryRatesAt(context.Background(), time.Now())

		assert.ErrorIs(t, err, policyerrors.ErrStatutoryRatesNotFound)
	})
}

func TestUpsertStatutoryRates(t *testing.T) {
	t.Run("rejects rates outside [0,1]", func(t *testing.T) {
		svc := NewService(nil, &fakePolicyRepo{}, zap.NewNop())

		_, err := svc.UpsertStatutoryRates(context.Background(), UpsertStatutoryRatesRequest{
			EPFEmployeeRate: dec("1.5"),
			EPFEmployerRate: dec("0.13"),
			EffectiveDate:   "2025-01-01",
		})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidRateValue)
	})

	t.Run("rejects malformed effective date", func(t *testing.T) {
		svc := NewService(nil, &fakePolicyRepo{}, zap.NewNop())

		_, err := svc.UpsertStatutoryRates(context.Background(), UpsertStatutoryRatesRequest{
			EPFEmployeeRate: dec("0.11"),
			EPFEmployerRate: dec("0.13"),
			EffectiveDate:   "01-01-2025",
		})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidRateValue)
	})

	t.Run("persists and echoes the saved rates", func(t *testing.T) {
		var saved *StatutoryRates
		repo := &fakePolicyRepo{
			saveStatutoryRatesFn: func(ctx context.Context, rates *StatutoryRates) error {
				saved = rates
				return nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		resp, err := svc.UpsertStatutoryRates(context.Background(), UpsertStatutoryRatesRequest{
			EPFEmployeeRate: dec("0.11"),
			EPFEmployerRate: dec("0.13"),
			HRDFRate:        dec("0.01"),
			EffectiveDate:   "2025-01-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, "2025-01-01", resp.EffectiveDate)
		assert.True(t, resp.HRDFRate.Equal(dec("0.01")))
	})
}

func TestCreateClaimPolicy(t *testing.T) {
	t.Run("rejects negative limits", func(t *testing.T) {
		svc := NewService(nil, &fakePolicyRepo{}, zap.NewNop())

		neg := dec("-100")
		_, err := svc.CreateClaimPolicy(context.Background(), CreateClaimPolicyRequest{
			Category:    "MEDICAL",
			AnnualLimit: &neg,
		})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidLimitValue)
	})

	t.Run("maps duplicate category to sentinel", func(t *testing.T) {
		repo := &fakePolicyRepo{
			createClaimPolicyFn: func(ctx context.Context, p *FinancialClaimPolicy) error {
				return errDuplicateCategory
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		_, err := svc.CreateClaimPolicy(context.Background(), CreateClaimPolicyRequest{Category: "MEDICAL"})

		assert.ErrorIs(t, err, policyerrors.ErrClaimPolicyCategoryExists)
	})

	t.Run("defaults enabled to true when omitted", func(t *testing.T) {
		var created *FinancialClaimPolicy
		repo := &fakePolicyRepo{
			createClaimPolicyFn: func(ctx context.Context, p *FinancialClaimPolicy) error {
				created = p
				return nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		resp, err := svc.CreateClaimPolicy(context.Background(), CreateClaimPolicyRequest{Category: "TRAVEL"})

		assert.NoError(t, err)
		assert.True(t, created.Enabled)
		assert.True(t, resp.Enabled)
		assert.Nil(t, resp.AnnualLimit)
	})
}

func TestBandTableLookup(t *testing.T) {
	table := BandTable{
		{WageFrom: dec("2900.01"), WageTo: dec("3000.00"), Employee: dec("14.75"), Employer: dec("51.65")},
		{WageFrom: dec("3000.01"), WageTo: dec("3100.00"), Employee: dec("15.25"), Employer: dec("53.35")},
	}

	t.Run("returns amounts for the containing band", func(t *testing.T) {
		emp, er := table.Lookup(dec("3000"))
		assert.True(t, emp.Equal(dec("14.75")))
		assert.True(t, er.Equal(dec("51.65")))
	})

	t.Run("returns zero outside every band", func(t *testing.T) {
		emp, er := table.Lookup(dec("99999"))
		assert.True(t, emp.IsZero())
		assert.True(t, er.IsZero())
	})
}

func TestOvertimeMultiplierFor(t *testing.T) {
	p := OvertimeRatePolicy{
		NormalRate:        dec("1.5"),
		RestDayRate:       dec("2.0"),
		PublicHolidayRate: dec("3.0"),
	}

	assert.True(t, p.MultiplierFor(OvertimeDayNormal).Equal(dec("1.5")))
	assert.True(t, p.MultiplierFor(OvertimeDayRestDay).Equal(dec("2.0")))
	assert.True(t, p.MultiplierFor(OvertimeDayPublicHoliday).Equal(dec("3.0")))
	assert.True(t, p.MultiplierFor("WEIRD").Equal(dec("1.5")))
}
