package bookings

import (
	"fmt"
	"strings"
	"time"

	"sashambhu/internal/pricing"
)

// ViewFilter narrows a booking list. Empty fields, and "all", match everything.
type ViewFilter struct {
	Date   string `json:"date,omitempty"`
	Game   string `json:"game,omitempty"`
	Status string `json:"status,omitempty"`
	Token  string `json:"token,omitempty"`
	Search string `json:"search,omitempty"`
}

func active(v string) bool {
	return v != "" && v != "all"
}

// DeriveView returns the bookings of list matching f, in their original order.
// It never modifies list; call it again whenever the list or filter changes.
func DeriveView(list []Booking, f ViewFilter) []Booking {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	tok := strings.ToLower(strings.TrimSpace(f.Token))

	out := make([]Booking, 0, len(list))
	for _, b := range list {
		if active(f.Date) && b.DateEnglish != f.Date {
			continue
		}
		if active(f.Game) && string(b.GameType) != f.Game {
			continue
		}
		if active(f.Status) && string(b.Status) != f.Status {
			continue
		}
		if tok != "" && !strings.Contains(strings.ToLower(b.TokenNumber), tok) {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b Booking, term string) bool {
	for _, field := range []string{b.Name, b.TokenNumber, b.Address, b.PhoneNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Stats summarizes a set of bookings for the counter dashboard.
type Stats struct {
	TotalBookings      int     `json:"total_bookings"`
	PendingBookings    int     `json:"pending_bookings"`
	ConfirmedBookings  int     `json:"confirmed_bookings"`
	CompletedBookings  int     `json:"completed_bookings"`
	RevenueCents       int64   `json:"revenue_cents"`
	AverageSessionMins float64 `json:"average_session_minutes"`
	PeakHour           string  `json:"peak_hour"`
	ConversionRate     float64 `json:"conversion_rate"`
	PlayzoneBookings   int     `json:"playzone_bookings"`
	SkateparkBookings  int     `json:"skatepark_bookings"`
}

// Summarize computes Stats over list. Creation hours are read in loc.
func Summarize(list []Booking, loc *time.Location) Stats {
	var s Stats
	var sessionMins, sessions int
	hourCounts := make(map[int]int)

	for _, b := range list {
		s.TotalBookings++
		switch b.Status {
		case StatusPending:
			s.PendingBookings++
		case StatusConfirmed:
			s.ConfirmedBookings++
		case StatusCompleted:
			s.CompletedBookings++
			s.RevenueCents += b.PriceCents
			if b.ActualDurationMinutes != nil && *b.ActualDurationMinutes > 0 {
				sessionMins += *b.ActualDurationMinutes
				sessions++
			}
		}
		switch b.GameType {
		case pricing.Playzone:
			s.PlayzoneBookings++
		case pricing.Skatepark:
			s.SkateparkBookings++
		}
		if !b.CreatedAt.IsZero() {
			hourCounts[b.CreatedAt.In(loc).Hour()]++
		}
	}

	if sessions > 0 {
		s.AverageSessionMins = float64(sessionMins) / float64(sessions)
	}
	if s.TotalBookings > 0 {
		s.ConversionRate = float64(s.CompletedBookings) / float64(s.TotalBookings) * 100
	}
	s.PeakHour = peakHour(hourCounts)
	return s
}

// peakHour picks the busiest hour; ties go to the earliest hour.
func peakHour(counts map[int]int) string {
	best, bestCount := -1, 0
	for h := 0; h < 24; h++ {
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	if best < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d:00", best)
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAll     Period = "all"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAll:
		return true
	}
	return false
}

// PeriodStart returns the first instant of the period containing now, in
// now's location. Weeks start on Sunday.
func PeriodStart(p Period, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case PeriodWeekly:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
	case PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	return time.Time{}
}

// Revenue sums the price of Completed bookings created within the period
// ending at now.
func Revenue(list []Booking, p Period, now time.Time) int64 {
	start := PeriodStart(p, now)
	var total int64
	for _, b := range list {
		if b.Status != StatusCompleted || b.PriceCents <= 0 {
			continue
		}
		if b.CreatedAt.Before(start) || b.CreatedAt.After(now) {
			continue
		}
		total += b.PriceCents
	}
	return total
}
