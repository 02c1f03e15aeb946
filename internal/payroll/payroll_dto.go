package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/statutory"
)

type CreateDocumentRequest struct {
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	Month       int    `json:"month" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"omitempty"`
	Remarks     string `json:"remarks"`

	IncludeClaims      *bool `json:"include_claims"`
	IncludeOvertime    *bool `json:"include_overtime"`
	IncludeUnpaidLeave *bool `json:"include_unpaid_leave"`
	IncludeLateness    *bool `json:"include_lateness"`
}

type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DocumentResponse struct {
	ID          string  `json:"id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	PaymentDate *string `json:"payment_date,omitempty"`
	Remarks     string  `json:"remarks,omitempty"`

	IncludeClaims      bool `json:"include_claims"`
	IncludeOvertime    bool `json:"include_overtime"`
	IncludeUnpaidLeave bool `json:"include_unpaid_leave"`
	IncludeLateness    bool `json:"include_lateness"`

	Status string `json:"status"`

	CreatedBy       string  `json:"created_by"`
	SubmittedBy     *string `json:"submitted_by,omitempty"`
	SubmittedAt     *string `json:"submitted_at,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	ClosedAt        *string `json:"closed_at,omitempty"`
}

type ItemResponse struct {
	ID           string `json:"id"`
	DocumentID   string `json:"document_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`

	SalarySnapshot salary.SalarySnapshot `json:"salary_snapshot"`

	GrossPay          decimal.Decimal `json:"gross_pay"`
	OvertimeAmount    decimal.Decimal `json:"overtime_amount"`
	ClaimsAmount      decimal.Decimal `json:"claims_amount"`
	UnpaidLeaveAmount decimal.Decimal `json:"unpaid_leave_amount"`
	LatenessAmount    decimal.Decimal `json:"lateness_amount"`

	Deductions    statutory.Deductions    `json:"deductions"`
	Contributions statutory.Contributions `json:"contributions"`

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	Locked   bool       `json:"locked"`
	AuditLog AuditTrail `json:"audit_log"`
}

type DocumentDetailResponse struct {
	Document DocumentResponse `json:"document"`
	Items    []ItemResponse   `json:"items"`
}

// ExcludedEmployee merekod pekerja yang digugurkan daripada satu penjanaan
// beserta sebabnya. Penjanaan keseluruhan tetap berjaya.
type ExcludedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GenerateResponse struct {
	DocumentID     string             `json:"document_id"`
	GeneratedCount int                `json:"generated_count"`
	Exclusions     []ExcludedEmployee `json:"exclusions,omitempty"`
}
