package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/statutory"
)

const (
	StatusPreparing       = "PREPARING"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
	StatusClosed          = "CLOSED"
)

// PayrollDocument adalah dokumen gaji bulanan, unik per (year, month).
// Tangga status: PREPARING -> PENDING_APPROVAL -> APPROVED | REJECTED -> CLOSED;
// REJECTED kembali ke PREPARING apabila dijana semula.
type PayrollDocument struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year  int       `gorm:"not null;uniqueIndex:uq_payroll_period"`
	Month int       `gorm:"not null;uniqueIndex:uq_payroll_period"`

	PaymentDate *time.Time `gorm:"type:date"`
	Remarks     string     `gorm:"type:text"`

	// Bendera agregasi per dokumen. Setiap satu mematikan sub-pengiraannya
	// sendiri tanpa menjejaskan yang lain.
	IncludeClaims      bool `gorm:"not null;default:true"`
	IncludeOvertime    bool `gorm:"not null;default:true"`
	IncludeUnpaidLeave bool `gorm:"not null;default:true"`
	IncludeLateness    bool `gorm:"not null;default:true"`

	Status string `gorm:"type:varchar(20);not null;default:'PREPARING';index"`

	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	SubmittedBy     *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt     *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason string     `gorm:"type:text"`
	ClosedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PeriodRange adalah hari pertama dan terakhir bulan dokumen.
func (d PayrollDocument) PeriodRange() (time.Time, time.Time) {
	start := time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

func (d PayrollDocument) IsEditable() bool {
	return d.Status == StatusPreparing || d.Status == StatusRejected
}

const (
	AuditActionGenerated    = "GENERATED"
	AuditActionRecalculated = "RECALCULATED"
	AuditActionLocked       = "LOCKED"
)

type AuditEntry struct {
	Action  string    `json:"action"`
	ActorID uuid.UUID `json:"actor_id"`
	At      time.Time `json:"at"`
	Note    string    `json:"note,omitempty"`
}

// AuditTrail hanya ditambah, tidak pernah dipadam.
type AuditTrail []AuditEntry

func (t AuditTrail) Append(entry AuditEntry) AuditTrail {
	return append(append(AuditTrail(nil), t...), entry)
}

// PayrollItem adalah payslip seorang pekerja dalam satu dokumen, unik per
// (document, employee). Semua nilai wang dibekukan pada saat penjanaan.
type PayrollItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_doc_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_doc_employee"`

	// Nama pekerja disalin pada saat penjanaan, sama seperti snapshot gaji.
	EmployeeName string `gorm:"type:varchar(150);not null;default:''"`

	SalarySnapshot salary.SalarySnapshot `gorm:"type:jsonb;serializer:json"`

	GrossPay          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OvertimeAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ClaimsAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	UnpaidLeaveAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LatenessAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Deductions    statutory.Deductions    `gorm:"type:jsonb;serializer:json"`
	Contributions statutory.Contributions `gorm:"type:jsonb;serializer:json"`

	TotalDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Locked   bool       `gorm:"not null;default:false"`
	AuditLog AuditTrail `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
