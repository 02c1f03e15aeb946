package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
)

var minutesPerHour = decimal.NewFromInt(60)

// Aggregates adalah hasil pengumpulan pelarasan seorang pekerja untuk satu
// tempoh dokumen. Setiap medan sifar apabila bendera dimatikan atau data
// tiada; pengumpulan tidak pernah gagal kerana ketiadaan data.
type Aggregates struct {
	ClaimsAmount      decimal.Decimal
	OvertimeAmount    decimal.Decimal
	UnpaidLeaveAmount decimal.Decimal
	LatenessAmount    decimal.Decimal
}

// Aggregator mengumpul pelarasan daripada claim yang diluluskan dan data
// sumber cuti/kehadiran. Setiap sub-pengiraan berdiri sendiri mengikut
// bendera dokumennya.
type Aggregator struct {
	claims claim.Repository
	source SourceDataRepository
}

func NewAggregator(claims claim.Repository, source SourceDataRepository) *Aggregator {
	return &Aggregator{claims: claims, source: source}
}

func (a *Aggregator) Collect(
	ctx context.Context,
	doc PayrollDocument,
	employeeID string,
	snap salary.SalarySnapshot,
) (Aggregates, error) {
	start, end := doc.PeriodRange()
	var agg Aggregates

	if doc.IncludeClaims {
		amount, err := a.sumApprovedClaims(ctx, employeeID, claim.TypeFinancial, start, end)
		if err != nil {
			return Aggregates{}, err
		}
		agg.ClaimsAmount = amount
	}

	if doc.IncludeOvertime {
		amount, err := a.sumApprovedClaims(ctx, employeeID, claim.TypeOvertime, start, end)
		if err != nil {
			return Aggregates{}, err
		}
		agg.OvertimeAmount = amount
	}

	if doc.IncludeUnpaidLeave {
		days, err := a.source.UnpaidLeaveDays(ctx, employeeID, start, end)
		if err != nil {
			return Aggregates{}, err
		}
		agg.UnpaidLeaveAmount = money.Round2(days.Mul(snap.DailyRate()))
	}

	if doc.IncludeLateness {
		minutes, err := a.source.LatenessMinutes(ctx, employeeID, start, end)
		if err != nil {
			return Aggregates{}, err
		}
		agg.LatenessAmount = money.Round2(minutes.Div(minutesPerHour).Mul(snap.HourlyRate()))
	}

	return agg, nil
}

// sumApprovedClaims menjumlahkan amaun boleh bayar claim yang diluluskan
// dalam tempoh. Amaun kerja lebih masa sudah dibekukan semasa penyerahan.
func (a *Aggregator) sumApprovedClaims(ctx context.Context, employeeID, claimType string, start, end time.Time) (decimal.Decimal, error) {
	claims, err := a.claims.FindApprovedInPeriod(ctx, employeeID, claimType, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range claims {
		total = total.Add(c.PayableAmount())
	}
	return money.Round2(total), nil
}
