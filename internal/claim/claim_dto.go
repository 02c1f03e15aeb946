package claim

import (
	"github.com/shopspring/decimal"
)

type SubmitClaimRequest struct {
	Type           string          `json:"type" binding:"required,oneof=FINANCIAL OVERTIME"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Hours          decimal.Decimal `json:"hours"`
	DayType        string          `json:"day_type" binding:"omitempty,oneof=NORMAL REST_DAY PUBLIC_HOLIDAY"`
	ClaimDate      string          `json:"claim_date" binding:"required"`
	Description    string          `json:"description"`
	SupportingDocs []string        `json:"supporting_docs"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ClaimResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Type           string          `json:"type"`
	Category       string          `json:"category,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Hours          decimal.Decimal `json:"hours,omitempty"`
	DayType        string          `json:"day_type,omitempty"`
	ComputedAmount decimal.Decimal `json:"computed_amount"`
	PayableAmount  decimal.Decimal `json:"payable_amount"`
	ClaimDate      string          `json:"claim_date"`
	Description    string          `json:"description,omitempty"`
	SupportingDocs []string        `json:"supporting_docs,omitempty"`
	Status         string          `json:"status"`

	FirstApprovedBy *string `json:"first_approved_by,omitempty"`
	FirstApprovedAt *string `json:"first_approved_at,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	VoucherID       *string `json:"voucher_id,omitempty"`
}
