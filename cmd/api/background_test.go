package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/users"
	"sashambhu/internal/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	template string
	email    string
	report   mailer.DailyReport
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail map[string]bool
}

func (m *recordingMailer) Send(templateFile, _, email string, data any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[email] {
		return -1, errors.New("smtp unavailable")
	}
	report, _ := data.(mailer.DailyReport)
	m.sent = append(m.sent, sentMail{template: templateFile, email: email, report: report})
	return 200, nil
}

func TestNextReportTime(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{"later today", time.Date(2025, 6, 1, 10, 0, 0, 0, ktm), 21, time.Date(2025, 6, 1, 21, 0, 0, 0, ktm)},
		{"already passed", time.Date(2025, 6, 1, 22, 0, 0, 0, ktm), 21, time.Date(2025, 6, 2, 21, 0, 0, 0, ktm)},
		{"exactly now", time.Date(2025, 6, 1, 21, 0, 0, 0, ktm), 21, time.Date(2025, 6, 2, 21, 0, 0, 0, ktm)},
		{"utc input", time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC), 21, time.Date(2025, 6, 2, 21, 0, 0, 0, ktm)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextReportTime(tt.now, tt.hour, ktm)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestSendDailyReport_OnlyAdmins(t *testing.T) {
	env := newTestApplication(t)
	m := &recordingMailer{}
	env.app.mailer = m

	require.NoError(t, env.users.Create(context.Background(), &users.User{Email: "partner@sashambhu.test", Name: "Partner", Role: users.RoleAdmin}))

	done := createBooking(t, env, nil)
	createBooking(t, env, nil)
	_, err := env.bookings.Advance(context.Background(), done.ID, bookings.StatusConfirmed, fixedNow)
	require.NoError(t, err)
	_, err = env.bookings.Advance(context.Background(), done.ID, bookings.StatusCompleted, fixedNow)
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 21, 0, 0, 0, ktm)
	sent, err := env.app.sendDailyReport(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.Len(t, m.sent, 2)
	for _, mail := range m.sent {
		assert.NotEqual(t, counterEmail, mail.email)
		assert.Equal(t, mailer.DailyReportTemplate, mail.template)
		assert.Equal(t, "2025-06-01", mail.report.Date)
		assert.NotEmpty(t, mail.report.NepaliDate)
		assert.Equal(t, 2, mail.report.Stats.TotalBookings)
		assert.Equal(t, done.PriceCents, mail.report.Stats.RevenueCents)
		assert.Equal(t, done.PriceCents, mail.report.MonthRevenueCents)
	}
}

func TestSendDailyReport_SkipsFailedRecipients(t *testing.T) {
	env := newTestApplication(t)
	m := &recordingMailer{fail: map[string]bool{adminEmail: true}}
	env.app.mailer = m

	sent, err := env.app.sendDailyReport(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, m.sent)
}

func TestSendDailyReport_StoreError(t *testing.T) {
	env := newTestApplication(t)
	env.app.mailer = &recordingMailer{}
	env.bookings.err = errors.New("db down")

	_, err := env.app.sendDailyReport(context.Background(), fixedNow)
	assert.Error(t, err)
}
