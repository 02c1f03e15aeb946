package salary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	salaryerrors "github.com/azirkitai/utamaHR-sub001/internal/salary/errors"
)

type fakeSalaryRepo struct {
	createFn               func(ctx context.Context, cfg *SalaryConfiguration) error
	updateFn               func(ctx context.Context, cfg *SalaryConfiguration) error
	findByIDFn             func(ctx context.Context, id string) (*SalaryConfiguration, error)
	findLatestByEmployeeFn func(ctx context.Context, employeeID string) (*SalaryConfiguration, error)
	findEffectiveAtFn      func(ctx context.Context, employeeID string, asOf time.Time) (*SalaryConfiguration, error)
	listEmployeeIDsFn      func(ctx context.Context) ([]string, error)
	deleteFn               func(ctx context.Context, id string) error
}

func (f *fakeSalaryRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeSalaryRepo) Create(ctx context.Context, cfg *SalaryConfiguration) error {
	return f.createFn(ctx, cfg)
}
func (f *fakeSalaryRepo) Update(ctx context.Context, cfg *SalaryConfiguration) error {
	return f.updateFn(ctx, cfg)
}
func (f *fakeSalaryRepo) FindByID(ctx context.Context, id string) (*SalaryConfiguration, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeSalaryRepo) FindLatestByEmployee(ctx context.Context, employeeID string) (*SalaryConfiguration, error) {
	return f.findLatestByEmployeeFn(ctx, employeeID)
}
func (f *fakeSalaryRepo) FindEffectiveAt(ctx context.Context, employeeID string, asOf time.Time) (*SalaryConfiguration, error) {
	return f.findEffectiveAtFn(ctx, employeeID, asOf)
}
func (f *fakeSalaryRepo) ListEmployeeIDsWithConfiguration(ctx context.Context) ([]string, error) {
	return f.listEmployeeIDsFn(ctx)
}
func (f *fakeSalaryRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestDerivedRates(t *testing.T) {
	t.Run("monthly 2600 gives daily 100 and hourly 12.50", func(t *testing.T) {
		snap := SalarySnapshot{SalaryType: SalaryTypeMonthly, BasicSalary: dec("2600")}

		assert.True(t, snap.DailyRate().Equal(dec("100")), "daily = basic/26")
		assert.True(t, snap.HourlyRate().Equal(dec("12.50")), "hourly = basic/26/8")
	})

	t.Run("daily pay type uses basic as the daily rate", func(t *testing.T) {
		snap := SalarySnapshot{SalaryType: SalaryTypeDaily, BasicSalary: dec("120")}
		assert.True(t, snap.DailyRate().Equal(dec("120")))
	})

	t.Run("hourly pay type uses basic as the hourly rate", func(t *testing.T) {
		snap := SalarySnapshot{SalaryType: SalaryTypeHourly, BasicSalary: dec("15")}
		assert.True(t, snap.HourlyRate().Equal(dec("15")))
	})

	t.Run("rates round to two decimal places", func(t *testing.T) {
		snap := SalarySnapshot{SalaryType: SalaryTypeMonthly, BasicSalary: dec("3000")}

		// 3000/26 = 115.384615..., 3000/26/8 = 14.423...
		assert.True(t, snap.DailyRate().Equal(dec("115.38")))
		assert.True(t, snap.HourlyRate().Equal(dec("14.42")))
	})
}

func TestResolveAt(t *testing.T) {
	employeeID := uuid.New()

	t.Run("freezes the effective configuration into a snapshot", func(t *testing.T) {
		repo := &fakeSalaryRepo{
			findEffectiveAtFn: func(ctx context.Context, id string, asOf time.Time) (*SalaryConfiguration, error) {
				return &SalaryConfiguration{
					ID:          uuid.New(),
					EmployeeID:  employeeID,
					SalaryType:  SalaryTypeMonthly,
					BasicSalary: dec("2600"),
					EPFEnrolled: true,
				}, nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		snap, err := svc.ResolveAt(context.Background(), employeeID.String(), time.Now())

		assert.NoError(t, err)
		assert.Equal(t, employeeID, snap.EmployeeID)
		assert.True(t, snap.BasicSalary.Equal(dec("2600")))
		assert.True(t, snap.EPFEnrolled)
		assert.False(t, snap.CapturedAt.IsZero())
	})

	t.Run("returns not found when no configuration covers asOf", func(t *testing.T) {
		repo := &fakeSalaryRepo{
			findEffectiveAtFn: func(ctx context.Context, id string, asOf time.Time) (*SalaryConfiguration, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		_, err := svc.ResolveAt(context.Background(), employeeID.String(), time.Now())

		assert.ErrorIs(t, err, salaryerrors.ErrSalaryConfigNotFound)
	})
}

func TestUpsert(t *testing.T) {
	employeeID := uuid.New()

	t.Run("rejects negative basic salary", func(t *testing.T) {
		svc := NewService(nil, &fakeSalaryRepo{}, zap.NewNop())

		_, err := svc.Upsert(context.Background(), UpsertSalaryConfigRequest{
			EmployeeID:    employeeID.String(),
			SalaryType:    SalaryTypeMonthly,
			BasicSalary:   dec("-1"),
			EffectiveDate: "2025-01-01",
		})

		assert.ErrorIs(t, err, salaryerrors.ErrNegativeSalary)
	})

	t.Run("creates a new row for a first-time employee", func(t *testing.T) {
		var created *SalaryConfiguration
		repo := &fakeSalaryRepo{
			findLatestByEmployeeFn: func(ctx context.Context, id string) (*SalaryConfiguration, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, cfg *SalaryConfiguration) error {
				created = cfg
				return nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		resp, err := svc.Upsert(context.Background(), UpsertSalaryConfigRequest{
			EmployeeID:    employeeID.String(),
			SalaryType:    SalaryTypeMonthly,
			BasicSalary:   dec("2600"),
			EffectiveDate: "2025-01-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.EPFEnrolled, "EPF defaults on")
		assert.False(t, created.HRDFEnrolled, "HRDF defaults off")
		assert.True(t, resp.DailyRate.Equal(dec("100")))
	})

	t.Run("a new effective date creates a history row instead of overwriting", func(t *testing.T) {
		existing := &SalaryConfiguration{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			SalaryType:    SalaryTypeMonthly,
			BasicSalary:   dec("2600"),
			EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		var created *SalaryConfiguration
		repo := &fakeSalaryRepo{
			findLatestByEmployeeFn: func(ctx context.Context, id string) (*SalaryConfiguration, error) {
				return existing, nil
			},
			createFn: func(ctx context.Context, cfg *SalaryConfiguration) error {
				created = cfg
				return nil
			},
		}
		svc := NewService(nil, repo, zap.NewNop())

		_, err := svc.Upsert(context.Background(), UpsertSalaryConfigRequest{
			EmployeeID:    employeeID.String(),
			SalaryType:    SalaryTypeMonthly,
			BasicSalary:   dec("3000"),
			EffectiveDate: "2025-06-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.NotEqual(t, existing.ID, created.ID)
	})
}
