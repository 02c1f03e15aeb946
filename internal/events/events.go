// Package events mendefinisikan kontrak event antar proses. Versi ada di
// nama topic supaya perubahan payload tidak memutus consumer lama.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TopicPayrollDocumentApproved = "payroll.document.approved.v1"
	TopicPaymentExecuted         = "payroll.payment.executed.v1"
	TopicVoucherSubmitted        = "claims.voucher.submitted.v1"
)

// PayrollDocumentApproved diterbitkan apabila dokumen gaji diluluskan dan
// semua itemnya dikunci.
type PayrollDocumentApproved struct {
	DocumentID uuid.UUID `json:"document_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
	ItemCount  int64     `json:"item_count"`
}

// PaymentExecuted dilaporkan oleh sistem pembayaran luaran; consumer kami
// menutup dokumen yang berkenaan.
type PaymentExecuted struct {
	DocumentID uuid.UUID `json:"document_id"`
	ExecutedAt time.Time `json:"executed_at"`
	Reference  string    `json:"reference,omitempty"`
}

// VoucherSubmitted diterbitkan apabila baucar bayaran dihantar untuk
// diproses.
type VoucherSubmitted struct {
	VoucherID       uuid.UUID       `json:"voucher_id"`
	VoucherNumber   string          `json:"voucher_number"`
	PayeeEmployeeID uuid.UUID       `json:"payee_employee_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ClaimIDs        []uuid.UUID     `json:"claim_ids"`
	SubmittedAt     time.Time       `json:"submitted_at"`
}
