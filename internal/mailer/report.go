package mailer

import "sashambhu/internal/domain/bookings"

// DailyReport is the data behind DailyReportTemplate.
type DailyReport struct {
	Name              string
	Date              string
	NepaliDate        string
	Stats             bookings.Stats
	MonthRevenueCents int64
}
