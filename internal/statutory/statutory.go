// Package statutory mengira potongan pekerja dan caruman majikan daripada
// gaji kasar. Paket ini murni: tiada I/O, tiada keadaan, semua kadar dan
// jumlah band sudah diselesaikan oleh pemanggil.
package statutory

import (
	"github.com/shopspring/decimal"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/money"
)

// RateConfig membawa kadar dan jumlah yang sudah diselesaikan untuk seorang
// pekerja. Medan sifar dikira sebagai sifar, tidak pernah ralat.
type RateConfig struct {
	EPFEmployeeRate decimal.Decimal // pecahan, cth 0.11
	EPFEmployerRate decimal.Decimal // pecahan, cth 0.13

	// SOCSO/EIS adalah jumlah band tetap daripada jadual caruman, bukan
	// peratusan atas gaji.
	SOCSOEmployee decimal.Decimal
	SOCSOEmployer decimal.Decimal
	EISEmployee   decimal.Decimal
	EISEmployer   decimal.Decimal

	HRDFRate decimal.Decimal // pecahan atas gaji kasar, majikan sahaja

	// Entri manual per pekerja.
	PCB     decimal.Decimal
	Advance decimal.Decimal
	Zakat   decimal.Decimal

	// Tambahan majikan.
	EmployerMedical decimal.Decimal

	OtherDeductions    money.Items
	OtherContributions money.Items
}

// Deductions adalah rekod tertutup potongan pekerja. Total() mesti sama
// dengan hasil tambah setiap medan; pelarasan cuti tanpa gaji dan lewat
// bukan medan di sini.
type Deductions struct {
	EPF     decimal.Decimal `json:"epf"`
	SOCSO   decimal.Decimal `json:"socso"`
	EIS     decimal.Decimal `json:"eis"`
	PCB     decimal.Decimal `json:"pcb"`
	Advance decimal.Decimal `json:"advance"`
	Zakat   decimal.Decimal `json:"zakat"`
	Others  decimal.Decimal `json:"others"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.EPF.Add(d.SOCSO).Add(d.EIS).Add(d.PCB).Add(d.Advance).Add(d.Zakat).Add(d.Others)
}

// Contributions adalah rekod tertutup caruman majikan. Tidak memberi kesan
// kepada gaji bersih pekerja.
type Contributions struct {
	EPF     decimal.Decimal `json:"epf"`
	SOCSO   decimal.Decimal `json:"socso"`
	EIS     decimal.Decimal `json:"eis"`
	HRDF    decimal.Decimal `json:"hrdf"`
	Medical decimal.Decimal `json:"medical"`
	Others  decimal.Decimal `json:"others"`
}

func (c Contributions) Total() decimal.Decimal {
	return c.EPF.Add(c.SOCSO).Add(c.EIS).Add(c.HRDF).Add(c.Medical).Add(c.Others)
}

// Compute derives both records from gross pay. Every output is rounded to
// two decimal places.
func Compute(gross decimal.Decimal, cfg RateConfig) (Deductions, Contributions) {
	deductions := Deductions{
		EPF:     money.Fraction(gross, cfg.EPFEmployeeRate),
		SOCSO:   money.Round2(cfg.SOCSOEmployee),
		EIS:     money.Round2(cfg.EISEmployee),
		PCB:     money.Round2(cfg.PCB),
		Advance: money.Round2(cfg.Advance),
		Zakat:   money.Round2(cfg.Zakat),
		Others:  money.Round2(cfg.OtherDeductions.Total()),
	}

	contributions := Contributions{
		EPF:     money.Fraction(gross, cfg.EPFEmployerRate),
		SOCSO:   money.Round2(cfg.SOCSOEmployer),
		EIS:     money.Round2(cfg.EISEmployer),
		HRDF:    money.Fraction(gross, cfg.HRDFRate),
		Medical: money.Round2(cfg.EmployerMedical),
		Others:  money.Round2(cfg.OtherContributions.Total()),
	}

	return deductions, contributions
}
