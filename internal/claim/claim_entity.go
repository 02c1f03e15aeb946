package claim

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeFinancial = "FINANCIAL"
	TypeOvertime  = "OVERTIME"
)

const (
	StatusPending       = "PENDING"
	StatusFirstApproved = "FIRST_APPROVED"
	StatusApproved      = "APPROVED"
	StatusRejected      = "REJECTED"
	StatusPaid          = "PAID"
)

// ClaimApplication meliputi claim kewangan dan permohonan bayaran kerja lebih
// masa. Tangga status: PENDING -> FIRST_APPROVED -> APPROVED | REJECTED -> PAID.
type ClaimApplication struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_claim_employee"`
	Type       string    `gorm:"type:varchar(10);not null"`
	Category   string    `gorm:"type:varchar(60)"`

	// Claim kewangan.
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Kerja lebih masa. ComputedAmount dikira semasa penyerahan daripada
	// polisi kadar dan kadar per jam pekerja, lalu dibekukan.
	Hours          decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	DayType        string          `gorm:"type:varchar(20)"`
	ComputedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	ClaimDate      time.Time `gorm:"type:date;not null;index"`
	Description    string    `gorm:"type:text"`
	SupportingDocs []string  `gorm:"type:jsonb;serializer:json"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index"`

	FirstApprovedBy *uuid.UUID `gorm:"type:uuid"`
	FirstApprovedAt *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason string     `gorm:"type:text"`
	PaidAt          *time.Time
	VoucherID       *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PayableAmount adalah jumlah yang masuk ke payslip atau baucar: jumlah yang
// dituntut untuk claim kewangan, jumlah terkira untuk kerja lebih masa.
func (c ClaimApplication) PayableAmount() decimal.Decimal {
	if c.Type == TypeOvertime {
		return c.ComputedAmount
	}
	return c.Amount
}
