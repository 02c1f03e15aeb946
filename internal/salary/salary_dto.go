package salary

import (
	"github.com/shopspring/decimal"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
)

type UpsertSalaryConfigRequest struct {
	EmployeeID         string          `json:"employee_id" binding:"required,uuid"`
	SalaryType         string          `json:"salary_type" binding:"required,oneof=MONTHLY DAILY HOURLY"`
	BasicSalary        decimal.Decimal `json:"basic_salary" binding:"required"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	AdditionalEarnings money.Items     `json:"additional_earnings"`

	EPFEnrolled   *bool `json:"epf_enrolled"`
	SOCSOEnrolled *bool `json:"socso_enrolled"`
	EISEnrolled   *bool `json:"eis_enrolled"`
	HRDFEnrolled  *bool `json:"hrdf_enrolled"`

	EPFEmployeeRateOverride *decimal.Decimal `json:"epf_employee_rate_override"`
	EPFEmployerRateOverride *decimal.Decimal `json:"epf_employer_rate_override"`

	PCBAmount     decimal.Decimal `json:"pcb_amount"`
	ZakatAmount   decimal.Decimal `json:"zakat_amount"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`

	EffectiveDate string `json:"effective_date" binding:"required"`
}

type SalaryConfigResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
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

	DailyRate  decimal.Decimal `json:"daily_rate"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	EffectiveDate string `json:"effective_date"`
}
