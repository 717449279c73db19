package bookings

import (
	"testing"
	"time"

	"sashambhu/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ktm = time.FixedZone("NPT", 5*3600+45*60)

func intPtr(v int) *int { return &v }

func sample() []Booking {
	return []Booking{
		{ID: 1, TokenNumber: "12", Name: "Aarav Shrestha", PhoneNumber: "9841000001", Address: "Baneshwor",
			DateEnglish: "2025-06-01", GameType: pricing.Playzone, Status: StatusPending, PriceCents: 200_00,
			CreatedAt: time.Date(2025, 6, 1, 10, 15, 0, 0, ktm)},
		{ID: 2, TokenNumber: "13", Name: "Sita Gurung", PhoneNumber: "9841000002", Address: "Lalitpur",
			DateEnglish: "2025-06-01", GameType: pricing.Skatepark, Status: StatusCompleted, PriceCents: 800_00,
			ActualDurationMinutes: intPtr(50), CreatedAt: time.Date(2025, 6, 1, 10, 45, 0, 0, ktm)},
		{ID: 3, TokenNumber: "114", Name: "Bikash Tamang", Address: "Swayambhu",
			DateEnglish: "2025-06-02", GameType: pricing.Skatepark, Status: StatusConfirmed, PriceCents: 150_00,
			CreatedAt: time.Date(2025, 6, 2, 14, 5, 0, 0, ktm)},
		{ID: 4, TokenNumber: "115", Name: "Nima Sherpa", Address: "Boudha",
			DateEnglish: "2025-06-02", GameType: pricing.Playzone, Status: StatusCompleted, PriceCents: 350_00,
			ActualDurationMinutes: intPtr(70), CreatedAt: time.Date(2025, 6, 2, 14, 30, 0, 0, ktm)},
	}
}

func ids(list []Booking) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestDeriveView(t *testing.T) {
	tests := []struct {
		name   string
		filter ViewFilter
		want   []int64
	}{
		{"no filter", ViewFilter{}, []int64{1, 2, 3, 4}},
		{"all is no filter", ViewFilter{Game: "all", Status: "all"}, []int64{1, 2, 3, 4}},
		{"date", ViewFilter{Date: "2025-06-02"}, []int64{3, 4}},
		{"game", ViewFilter{Game: "Skatepark"}, []int64{2, 3}},
		{"status", ViewFilter{Status: "Completed"}, []int64{2, 4}},
		{"token substring", ViewFilter{Token: "11"}, []int64{3, 4}},
		{"search name case-insensitive", ViewFilter{Search: "sherpa"}, []int64{4}},
		{"search phone", ViewFilter{Search: "000002"}, []int64{2}},
		{"search address", ViewFilter{Search: "lalit"}, []int64{2}},
		{"combined", ViewFilter{Date: "2025-06-01", Status: "Pending", Search: "aarav"}, []int64{1}},
		{"nothing matches", ViewFilter{Token: "999"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(DeriveView(sample(), tt.filter)))
		})
	}
}

func TestDeriveView_DoesNotModifyInput(t *testing.T) {
	list := sample()
	_ = DeriveView(list, ViewFilter{Status: "Pending"})
	assert.Equal(t, sample(), list)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample(), ktm)

	assert.Equal(t, 4, s.TotalBookings)
	assert.Equal(t, 1, s.PendingBookings)
	assert.Equal(t, 1, s.ConfirmedBookings)
	assert.Equal(t, 2, s.CompletedBookings)
	assert.Equal(t, int64(1150_00), s.RevenueCents)
	assert.InDelta(t, 60.0, s.AverageSessionMins, 0.001)
	assert.InDelta(t, 50.0, s.ConversionRate, 0.001)
	assert.Equal(t, "10:00", s.PeakHour)
	assert.Equal(t, 2, s.PlayzoneBookings)
	assert.Equal(t, 2, s.SkateparkBookings)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, ktm)
	assert.Equal(t, "N/A", s.PeakHour)
	assert.Zero(t, s.ConversionRate)
	assert.Zero(t, s.AverageSessionMins)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 4, 16, 0, 0, 0, ktm) // Wednesday

	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, ktm), PeriodStart(PeriodDaily, now))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, ktm), PeriodStart(PeriodWeekly, now))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, ktm), PeriodStart(PeriodMonthly, now))
	assert.True(t, PeriodStart(PeriodAll, now).IsZero())
}

func TestRevenue(t *testing.T) {
	now := time.Date(2025, 6, 2, 20, 0, 0, 0, ktm)

	assert.Equal(t, int64(350_00), Revenue(sample(), PeriodDaily, now))
	assert.Equal(t, int64(1150_00), Revenue(sample(), PeriodWeekly, now))
	assert.Equal(t, int64(1150_00), Revenue(sample(), PeriodAll, now))

	before := time.Date(2025, 6, 1, 10, 50, 0, 0, ktm)
	assert.Equal(t, int64(800_00), Revenue(sample(), PeriodAll, before))
}

func TestPeriod_Valid(t *testing.T) {
	require.True(t, PeriodMonthly.Valid())
	require.False(t, Period("yearly").Valid())
}

func TestSummarize_PeakHourIsNotZeroPadded(t *testing.T) {
	list := []Booking{{CreatedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, ktm)}}
	assert.Equal(t, "9:00", Summarize(list, ktm).PeakHour)
}
