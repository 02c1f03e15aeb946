package policy

import "github.com/shopspring/decimal"

type UpsertStatutoryRatesRequest struct {
	EPFEmployeeRate decimal.Decimal    `json:"epf_employee_rate" binding:"required"`
	EPFEmployerRate decimal.Decimal    `json:"epf_employer_rate" binding:"required"`
	HRDFRate        decimal.Decimal    `json:"hrdf_rate"`
	SOCSOBands      []ContributionBand `json:"socso_bands"`
	EISBands        []ContributionBand `json:"eis_bands"`
	EffectiveDate   string             `json:"effective_date" binding:"required"`
}

type StatutoryRatesResponse struct {
	ID              string             `json:"id"`
	EPFEmployeeRate decimal.Decimal    `json:"epf_employee_rate"`
	EPFEmployerRate decimal.Decimal    `json:"epf_employer_rate"`
	HRDFRate        decimal.Decimal    `json:"hrdf_rate"`
	SOCSOBands      []ContributionBand `json:"socso_bands"`
	EISBands        []ContributionBand `json:"eis_bands"`
	EffectiveDate   string             `json:"effective_date"`
}

type CreateClaimPolicyRequest struct {
	Category            string           `json:"category" binding:"required"`
	AnnualLimit         *decimal.Decimal `json:"annual_limit"`
	LimitPerApplication *decimal.Decimal `json:"limit_per_application"`
	ExcludedEmployeeIDs []string         `json:"excluded_employee_ids"`
	Enabled             *bool            `json:"enabled"`
}

type UpdateClaimPolicyRequest struct {
	AnnualLimit         *decimal.Decimal `json:"annual_limit"`
	LimitPerApplication *decimal.Decimal `json:"limit_per_application"`
	ExcludedEmployeeIDs []string         `json:"excluded_employee_ids"`
	Enabled             *bool            `json:"enabled"`
}

type ClaimPolicyResponse struct {
	ID                  string           `json:"id"`
	Category            string           `json:"category"`
	AnnualLimit         *decimal.Decimal `json:"annual_limit,omitempty"`
	LimitPerApplication *decimal.Decimal `json:"limit_per_application,omitempty"`
	ExcludedEmployeeIDs []string         `json:"excluded_employee_ids,omitempty"`
	Enabled             bool             `json:"enabled"`
}

type UpdateOvertimePolicyRequest struct {
	NormalRate        decimal.Decimal  `json:"normal_rate" binding:"required"`
	RestDayRate       decimal.Decimal  `json:"rest_day_rate" binding:"required"`
	PublicHolidayRate decimal.Decimal  `json:"public_holiday_rate" binding:"required"`
	CustomHourlyRate  *decimal.Decimal `json:"custom_hourly_rate"`
}

type OvertimePolicyResponse struct {
	ID                string           `json:"id"`
	NormalRate        decimal.Decimal  `json:"normal_rate"`
	RestDayRate       decimal.Decimal  `json:"rest_day_rate"`
	PublicHolidayRate decimal.Decimal  `json:"public_holiday_rate"`
	CustomHourlyRate  *decimal.Decimal `json:"custom_hourly_rate,omitempty"`
}
