package pricing

import (
	"errors"
	"fmt"
)

type Family string

const (
	Playzone  Family = "Playzone"
	Skatepark Family = "Skatepark"
)

const (
	PlayzoneOneHour   = "1hr"
	PlayzoneUnlimited = "unlimited"

	SkateparkHalfHour = "30min"
	SkateparkOneHour  = "1hr"
)

// Selection is what the counter picked on the booking form. Package is the
// Playzone package or the Skatepark base package; ExtraHours only applies to
// Skatepark.
type Selection struct {
	Family     Family `json:"game_type"`
	Package    string `json:"package"`
	ExtraHours int    `json:"extra_hours"`
}

// Complete reports whether sel names a known family/package pair.
func (sel Selection) Complete() bool {
	switch sel.Family {
	case Playzone:
		return sel.Package == PlayzoneOneHour || sel.Package == PlayzoneUnlimited
	case Skatepark:
		return sel.Package == SkateparkHalfHour || sel.Package == SkateparkOneHour
	}
	return false
}

// Describe renders the package for receipts and listings, e.g. "30min + 2hr extra".
func (sel Selection) Describe() string {
	if !sel.Complete() {
		return "N/A"
	}
	if sel.Family == Skatepark && sel.ExtraHours > 0 {
		return fmt.Sprintf("%s + %dhr extra", sel.Package, sel.ExtraHours)
	}
	return sel.Package
}

// PriceTable holds the admin-configured unit prices, per person, in paisa.
type PriceTable struct {
	Playzone1hrCents        int64 `json:"playzone_1hr_cents"`
	PlayzoneUnlimitedCents  int64 `json:"playzone_unlimited_cents"`
	Skatepark30minCents     int64 `json:"skatepark_30min_cents"`
	Skatepark1hrCents       int64 `json:"skatepark_1hr_cents"`
	SkateparkExtraHourCents int64 `json:"skatepark_extra_hour_cents"`
}

// MaxPriceCents caps every unit price at Rs. 1,00,000. With at most 500
// persons and 24 extra hours a booking total stays far inside int64.
const MaxPriceCents int64 = 10_000_000

var (
	ErrNegativePrice = errors.New("prices must not be negative")
	ErrPriceTooHigh  = fmt.Errorf("prices must not exceed %s", FormatRupees(MaxPriceCents))
)

func (t PriceTable) Validate() error {
	for _, v := range []int64{
		t.Playzone1hrCents,
		t.PlayzoneUnlimitedCents,
		t.Skatepark30minCents,
		t.Skatepark1hrCents,
		t.SkateparkExtraHourCents,
	} {
		if v < 0 {
			return ErrNegativePrice
		}
		if v > MaxPriceCents {
			return ErrPriceTooHigh
		}
	}
	return nil
}

// DefaultTable is used until an admin saves prices, and whenever the
// price settings cannot be read.
func DefaultTable() PriceTable {
	return PriceTable{
		Playzone1hrCents:        200_00,
		PlayzoneUnlimitedCents:  350_00,
		Skatepark30minCents:     100_00,
		Skatepark1hrCents:       150_00,
		SkateparkExtraHourCents: 100_00,
	}
}

// UnitPrice is the per-person charge for sel, or 0 when sel is incomplete.
func UnitPrice(sel Selection, t PriceTable) int64 {
	switch sel.Family {
	case Playzone:
		switch sel.Package {
		case PlayzoneOneHour:
			return t.Playzone1hrCents
		case PlayzoneUnlimited:
			return t.PlayzoneUnlimitedCents
		}
	case Skatepark:
		var base int64
		switch sel.Package {
		case SkateparkHalfHour:
			base = t.Skatepark30minCents
		case SkateparkOneHour:
			base = t.Skatepark1hrCents
		default:
			return 0
		}
		extra := int64(sel.ExtraHours)
		if extra < 0 {
			extra = 0
		}
		return base + extra*t.SkateparkExtraHourCents
	}
	return 0
}

// Compute returns the booking total: unit price times persons. Incomplete
// selections and persons < 1 price at 0 so partially filled forms can be
// quoted on every change.
func Compute(sel Selection, persons int, t PriceTable) int64 {
	if persons < 1 {
		return 0
	}
	return UnitPrice(sel, t) * int64(persons)
}

// FormatRupees renders paisa as "Rs. 800.00".
func FormatRupees(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sRs. %d.%02d", sign, cents/100, cents%100)
}
