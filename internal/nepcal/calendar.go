package nepcal

import "time"

// Table maps a Bikram Sambat year to the length of each of its twelve months.
type Table map[int][12]int

// DefaultTable holds the month lengths the venue has verified so far.
// Years outside it are walked with 30-day months and reported as Estimated.
var DefaultTable = Table{
	2080: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2081: {31, 31, 32, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2082: {30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2083: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2084: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2085: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
}

// MonthNames are the Nepali month names, Baisakh first.
var MonthNames = [12]string{
	"बैशाख",
	"जेठ",
	"आषाढ",
	"श्रावण",
	"भाद्र",
	"आश्विन",
	"कार्तिक",
	"मंसिर",
	"पौष",
	"माघ",
	"फाल्गुन",
	"चैत्र",
}

const defaultMonthDays = 30

// Epoch is Gregorian 2024-04-13, which is 1 Baisakh 2081.
var Epoch = time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC)

const (
	epochYear  = 2081
	epochMonth = 0
	epochDay   = 1

	// offsetYears is the rough Gregorian→BS year distance used by the fallback.
	offsetYears = 57
)

// MonthDays returns the length of month (0-based) in year and whether the
// value came from the table.
func (t Table) MonthDays(year, month int) (int, bool) {
	months, ok := t[year]
	if !ok {
		return defaultMonthDays, false
	}
	return months[month], true
}

// Covers reports whether year has an entry in the table.
func (t Table) Covers(year int) bool {
	_, ok := t[year]
	return ok
}
