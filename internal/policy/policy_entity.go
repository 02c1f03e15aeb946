package policy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContributionBand adalah satu baris jadual caruman (SOCSO/EIS): rentang upah
// dengan jumlah caruman pekerja dan majikan yang tetap.
type ContributionBand struct {
	WageFrom decimal.Decimal `json:"wage_from"`
	WageTo   decimal.Decimal `json:"wage_to"`
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

type BandTable []ContributionBand

// Lookup returns the employee/employer amounts for the band containing gross.
// Outside every band both amounts are zero, never an error.
func (t BandTable) Lookup(gross decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	for _, band := range t {
		if gross.GreaterThanOrEqual(band.WageFrom) && gross.LessThanOrEqual(band.WageTo) {
			return band.Employee, band.Employer
		}
	}
	return decimal.Zero, decimal.Zero
}

// StatutoryRates memegang kadar berkanun yang aktif: pecahan desimal untuk
// EPF/HRDF (0.08 = 8%) dan jadual band untuk SOCSO/EIS.
type StatutoryRates struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EPFEmployeeRate decimal.Decimal `gorm:"type:numeric(6,4);not null;default:0"`
	EPFEmployerRate decimal.Decimal `gorm:"type:numeric(6,4);not null;default:0"`
	HRDFRate        decimal.Decimal `gorm:"type:numeric(6,4);not null;default:0"`
	SOCSOBands      BandTable       `gorm:"type:jsonb;serializer:json"`
	EISBands        BandTable       `gorm:"type:jsonb;serializer:json"`
	EffectiveDate   time.Time       `gorm:"type:date;not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FinancialClaimPolicy membatasi claim kewangan per kategori. Limit nil
// bermaksud unlimited.
type FinancialClaimPolicy struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category            string           `gorm:"type:varchar(60);not null;uniqueIndex:uq_claim_policy_category"`
	AnnualLimit         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	LimitPerApplication *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ExcludedEmployeeIDs []string         `gorm:"type:jsonb;serializer:json"`
	Enabled             bool             `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (p FinancialClaimPolicy) IsExcluded(employeeID string) bool {
	for _, id := range p.ExcludedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// OvertimeRatePolicy: pengganda atas kadar per jam, atau kadar tetap kustom
// jika dikonfigurasi.
type OvertimeRatePolicy struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NormalRate        decimal.Decimal  `gorm:"type:numeric(6,4);not null;default:1.5"`
	RestDayRate       decimal.Decimal  `gorm:"type:numeric(6,4);not null;default:2.0"`
	PublicHolidayRate decimal.Decimal  `gorm:"type:numeric(6,4);not null;default:3.0"`
	CustomHourlyRate  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const (
	OvertimeDayNormal        = "NORMAL"
	OvertimeDayRestDay       = "REST_DAY"
	OvertimeDayPublicHoliday = "PUBLIC_HOLIDAY"
)

// MultiplierFor maps an overtime day type to its pay multiplier.
// Unknown day types fall back to the normal multiplier.
func (p OvertimeRatePolicy) MultiplierFor(dayType string) decimal.Decimal {
	switch dayType {
	case OvertimeDayRestDay:
		return p.RestDayRate
	case OvertimeDayPublicHoliday:
		return p.PublicHolidayRate
	default:
		return p.NormalRate
	}
}
