package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
)

const (
	SalaryTypeMonthly = "MONTHLY"
	SalaryTypeDaily   = "DAILY"
	SalaryTypeHourly  = "HOURLY"
)

// Pembahagi gaji mengikut amalan 26 hari bekerja, 8 jam sehari.
var (
	workingDaysPerMonth = decimal.NewFromInt(26)
	workingHoursPerDay  = decimal.NewFromInt(8)
)

// SalaryConfiguration adalah konfigurasi gaji induk yang boleh diubah admin.
// Ia TIDAK pernah dirujuk oleh item payroll; item menyimpan SalarySnapshot.
type SalaryConfiguration struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_salary_config_employee"`
	SalaryType         string          `gorm:"type:varchar(10);not null;default:'MONTHLY'"`
	BasicSalary        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FixedAllowance     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	AdditionalEarnings money.Items     `gorm:"type:jsonb;serializer:json"`

	EPFEnrolled   bool `gorm:"not null;default:true"`
	SOCSOEnrolled bool `gorm:"not null;default:true"`
	EISEnrolled   bool `gorm:"not null;default:true"`
	HRDFEnrolled  bool `gorm:"not null;default:false"`

	// Override kadar EPF per pekerja; nil bermaksud guna kadar berkanun.
	EPFEmployeeRateOverride *decimal.Decimal `gorm:"type:numeric(6,4)"`
	EPFEmployerRateOverride *decimal.Decimal `gorm:"type:numeric(6,4)"`

	PCBAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ZakatAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	AdvanceAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	EffectiveDate time.Time `gorm:"type:date;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// SalarySnapshot adalah salinan beku konfigurasi pada saat payroll dijana.
// Jenis berasingan supaya perubahan konfigurasi kemudian tidak menjejaskan
// dokumen yang sudah wujud.
type SalarySnapshot struct {
	EmployeeID         uuid.UUID       `json:"employee_id"`
	SalaryType         string          `json:"salary_type"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	AdditionalEarnings money.Items     `json:"additional_earnings,omitempty"`

	EPFEnrolled   bool `json:"epf_enrolled"`
	SOCSOEnrolled bool `json:"socso_enrolled"`
	EISEnrolled   bool `json:"eis_enrolled"`
	HRDFEnrolled  bool `json:"hrdf_enrolled"`

	EPFEmployeeRateOverride *decimal.Decimal `json:"epf_employee_rate_override,omitempty"`
	EPFEmployerRateOverride *decimal.Decimal `json:"epf_employer_rate_override,omitempty"`

	PCBAmount     decimal.Decimal `json:"pcb_amount"`
	ZakatAmount   decimal.Decimal `json:"zakat_amount"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`

	EffectiveDate time.Time `json:"effective_date"`
	CapturedAt    time.Time `json:"captured_at"`
}

func (c SalaryConfiguration) Snapshot(capturedAt time.Time) SalarySnapshot {
	return SalarySnapshot{
		EmployeeID:              c.EmployeeID,
		SalaryType:              c.SalaryType,
		BasicSalary:             c.BasicSalary,
		FixedAllowance:          c.FixedAllowance,
		AdditionalEarnings:      append(money.Items(nil), c.AdditionalEarnings...),
		EPFEnrolled:             c.EPFEnrolled,
		SOCSOEnrolled:           c.SOCSOEnrolled,
		EISEnrolled:             c.EISEnrolled,
		HRDFEnrolled:            c.HRDFEnrolled,
		EPFEmployeeRateOverride: c.EPFEmployeeRateOverride,
		EPFEmployerRateOverride: c.EPFEmployerRateOverride,
		PCBAmount:               c.PCBAmount,
		ZakatAmount:             c.ZakatAmount,
		AdvanceAmount:           c.AdvanceAmount,
		EffectiveDate:           c.EffectiveDate,
		CapturedAt:              capturedAt,
	}
}

// DailyRate is basic salary divided by 26 working days, 2 dp.
func (s SalarySnapshot) DailyRate() decimal.Decimal {
	if s.SalaryType == SalaryTypeDaily {
		return money.Round2(s.BasicSalary)
	}
	return money.Round2(s.BasicSalary.Div(workingDaysPerMonth))
}

// HourlyRate is the daily rate divided by 8 working hours, 2 dp.
func (s SalarySnapshot) HourlyRate() decimal.Decimal {
	if s.SalaryType == SalaryTypeHourly {
		return money.Round2(s.BasicSalary)
	}
	return money.Round2(s.BasicSalary.Div(workingDaysPerMonth).Div(workingHoursPerDay))
}

// MonthlyGross is basic + fixed allowance + additional earnings, before
// overtime and claims.
func (s SalarySnapshot) MonthlyGross() decimal.Decimal {
	return money.Round2(s.BasicSalary.Add(s.FixedAllowance).Add(s.AdditionalEarnings.Total()))
}
