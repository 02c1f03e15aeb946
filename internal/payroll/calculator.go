package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
	"github.com/azirkitai/utamaHR-sub001/internal/statutory"
)

// ItemValues adalah nilai wang lengkap satu payslip. Pengiraan bersifat
// deterministik: input sama menghasilkan nilai yang serupa.
type ItemValues struct {
	GrossPay          decimal.Decimal
	OvertimeAmount    decimal.Decimal
	ClaimsAmount      decimal.Decimal
	UnpaidLeaveAmount decimal.Decimal
	LatenessAmount    decimal.Decimal
	Deductions        statutory.Deductions
	Contributions     statutory.Contributions
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
}

// BuildRateConfig menyelesaikan kadar berkanun untuk seorang pekerja:
// pendaftaran per pekerja, override kadar EPF, dan band SOCSO/EIS atas gaji
// kasar.
func BuildRateConfig(snap salary.SalarySnapshot, rates policy.StatutoryRates, gross decimal.Decimal) statutory.RateConfig {
	cfg := statutory.RateConfig{
		PCB:     snap.PCBAmount,
		Zakat:   snap.ZakatAmount,
		Advance: snap.AdvanceAmount,
	}

	if snap.EPFEnrolled {
		cfg.EPFEmployeeRate = rates.EPFEmployeeRate
		cfg.EPFEmployerRate = rates.EPFEmployerRate
		if snap.EPFEmployeeRateOverride != nil {
			cfg.EPFEmployeeRate = *snap.EPFEmployeeRateOverride
		}
		if snap.EPFEmployerRateOverride != nil {
			cfg.EPFEmployerRate = *snap.EPFEmployerRateOverride
		}
	}
	if snap.SOCSOEnrolled {
		cfg.SOCSOEmployee, cfg.SOCSOEmployer = rates.SOCSOBands.Lookup(gross)
	}
	if snap.EISEnrolled {
		cfg.EISEmployee, cfg.EISEmployer = rates.EISBands.Lookup(gross)
	}
	if snap.HRDFEnrolled {
		cfg.HRDFRate = rates.HRDFRate
	}

	return cfg
}

// Calculate menurunkan payslip penuh:
// netPay = gross + overtime + claims - unpaidLeave - lateness - totalDeductions.
func Calculate(snap salary.SalarySnapshot, rates policy.StatutoryRates, agg Aggregates) ItemValues {
	gross := snap.MonthlyGross()
	deductions, contributions := statutory.Compute(gross, BuildRateConfig(snap, rates, gross))
	totalDeductions := money.Round2(deductions.Total())

	netPay := money.Round2(
		gross.
			Add(agg.OvertimeAmount).
			Add(agg.ClaimsAmount).
			Sub(agg.UnpaidLeaveAmount).
			Sub(agg.LatenessAmount).
			Sub(totalDeductions),
	)

	return ItemValues{
		GrossPay:          gross,
		OvertimeAmount:    agg.OvertimeAmount,
		ClaimsAmount:      agg.ClaimsAmount,
		UnpaidLeaveAmount: agg.UnpaidLeaveAmount,
		LatenessAmount:    agg.LatenessAmount,
		Deductions:        deductions,
		Contributions:     contributions,
		TotalDeductions:   totalDeductions,
		NetPay:            netPay,
	}
}
