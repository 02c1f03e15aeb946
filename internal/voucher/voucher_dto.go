package voucher

import (
	"github.com/shopspring/decimal"
)

type AggregateRequest struct {
	// Kosong bermaksud semua claim diluluskan yang belum bertaucar.
	ClaimIDs []string `json:"claim_ids"`
}

type MarkPaidRequest struct {
	PaymentDate string `json:"payment_date" binding:"required"`
}

type VoucherResponse struct {
	ID              string          `json:"id"`
	VoucherNumber   string          `json:"voucher_number"`
	PayeeEmployeeID string          `json:"payee_employee_id"`
	PayeeName       string          `json:"payee_name,omitempty"`
	ClaimIDs        []string        `json:"claim_ids"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	SubmittedBy     *string         `json:"submitted_by,omitempty"`
	SubmittedAt     *string         `json:"submitted_at,omitempty"`
	PaymentDate     *string         `json:"payment_date,omitempty"`
	PaidAt          *string         `json:"paid_at,omitempty"`
}
