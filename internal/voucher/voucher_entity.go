package voucher

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusGenerated  = "GENERATED"
	StatusProcessing = "PROCESSING"
	StatusPaid       = "PAID"
)

// NumberPrefix dikongsi dengan counter dokumen supaya nombor baucar monoton.
const NumberPrefix = "PV"

// PaymentVoucher mengumpulkan claim yang diluluskan untuk seorang penerima
// menjadi satu arahan bayaran. Tangga status: GENERATED -> PROCESSING -> PAID.
type PaymentVoucher struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VoucherNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_voucher_number"`

	PayeeEmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	PayeeName       string    `gorm:"type:varchar(120)"`

	ClaimIDs    []uuid.UUID     `gorm:"type:jsonb;serializer:json"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'GENERATED';index"`

	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	SubmittedBy *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt *time.Time
	PaymentDate *time.Time `gorm:"type:date"`
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func FormatVoucherNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", NumberPrefix, seq)
}
