package nepcal

import (
	"errors"
	"fmt"
	"time"
)

// Confidence tells consumers how a Date was produced.
type Confidence string

const (
	// Exact means every month walked was read from the table.
	Exact Confidence = "exact"
	// Estimated means at least one walked year was missing and 30-day months were assumed.
	Estimated Confidence = "estimated"
	// Approximate means the constant-offset fallback was used.
	Approximate Confidence = "approximate"
)

// maxWalkDays bounds the month walk to roughly two hundred BS years either
// side of the epoch.
const maxWalkDays = 200 * 366

var (
	errZeroTime   = errors.New("nepcal: zero time")
	errOutOfRange = errors.New("nepcal: date too far from epoch")
	errBadMonth   = errors.New("nepcal: non-positive month length")
)

// Date is a Bikram Sambat calendar date. Month is 0-based.
type Date struct {
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Day        int        `json:"day"`
	Confidence Confidence `json:"confidence"`
}

// MonthName returns the Nepali name of d's month.
func (d Date) MonthName() string {
	return MonthNames[d.Month]
}

// String formats d as "<year> <monthName> <day>".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d", d.Year, d.MonthName(), d.Day)
}

type Converter struct {
	table Table
}

func NewConverter(table Table) *Converter {
	if table == nil {
		table = DefaultTable
	}
	return &Converter{table: table}
}

var defaultConverter = NewConverter(DefaultTable)

// ToNepaliDate converts a Gregorian date using DefaultTable.
func ToNepaliDate(t time.Time) string {
	return defaultConverter.ToNepaliDate(t)
}

// Convert converts a Gregorian date using DefaultTable.
func Convert(t time.Time) Date {
	return defaultConverter.Convert(t)
}

func (c *Converter) ToNepaliDate(t time.Time) string {
	return c.Convert(t).String()
}

// Convert maps the civil date of t to Bikram Sambat. It never fails: when the
// table walk cannot be completed the result falls back to the +57 year offset
// approximation and is marked Approximate.
func (c *Converter) Convert(t time.Time) Date {
	d, err := c.walk(t)
	if err != nil {
		return approximate(t)
	}
	return d
}

func (c *Converter) walk(t time.Time) (Date, error) {
	if t.IsZero() {
		return Date{}, errZeroTime
	}

	diffDays := daysBetween(Epoch, civil(t))
	if diffDays > maxWalkDays || diffDays < -maxWalkDays {
		return Date{}, errOutOfRange
	}

	year, month, day := epochYear, epochMonth, epochDay+diffDays
	exact := true

	for day <= 0 {
		month--
		if month < 0 {
			month = 11
			year--
		}
		n, ok := c.table.MonthDays(year, month)
		if n <= 0 {
			return Date{}, errBadMonth
		}
		exact = exact && ok
		day += n
	}

	for {
		n, ok := c.table.MonthDays(year, month)
		if n <= 0 {
			return Date{}, errBadMonth
		}
		exact = exact && ok
		if day <= n {
			break
		}
		day -= n
		month++
		if month > 11 {
			month = 0
			year++
		}
	}

	conf := Exact
	if !exact {
		conf = Estimated
	}
	return Date{Year: year, Month: month, Day: day, Confidence: conf}, nil
}

func approximate(t time.Time) Date {
	return Date{
		Year:       t.Year() + offsetYears,
		Month:      int(t.Month()) - 1,
		Day:        t.Day(),
		Confidence: Approximate,
	}
}

// civil drops the clock and zone of t, keeping its calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
