package main

import (
	"context"
	"time"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/users"
	"sashambhu/internal/mailer"
	"sashambhu/internal/nepcal"
)

// nextReportTime is the next occurrence of hour:00 in loc strictly after now.
func nextReportTime(now time.Time, hour int, loc *time.Location) time.Time {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// sendDailyReportsAt mails the day's summary to every admin at the configured hour.
func (app *application) sendDailyReportsAt(ctx context.Context) {
	go func() {
		for {
			next := nextReportTime(app.now(), app.config.report.hour, app.location)
			app.logger.Infow("daily report scheduled", "at", next.Format(time.RFC1123))

			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			sent, err := app.sendDailyReport(ctx, next)
			if err != nil {
				app.logger.Errorw("daily report failed", "error", err.Error())
				continue
			}
			app.logger.Infow("daily report sent", "recipients", sent)
		}
	}()
}

// sendDailyReport summarizes the bookings of day and mails each admin,
// returning how many reports went out.
func (app *application) sendDailyReport(ctx context.Context, day time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	day = day.In(app.location)
	date := day.Format(nepcal.ISODate)

	todays, err := app.store.Bookings.ListByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	all, err := app.store.Bookings.List(ctx)
	if err != nil {
		return 0, err
	}
	staff, err := app.store.Users.List(ctx)
	if err != nil {
		return 0, err
	}

	report := mailer.DailyReport{
		Date:              date,
		NepaliDate:        app.calendar.ToNepaliDate(day),
		Stats:             bookings.Summarize(todays, app.location),
		MonthRevenueCents: bookings.Revenue(all, bookings.PeriodMonthly, day),
	}

	sent := 0
	for _, u := range staff {
		if u.Role != users.RoleAdmin {
			continue
		}
		report.Name = u.Name
		if _, err := app.mailer.Send(mailer.DailyReportTemplate, u.Name, u.Email, report); err != nil {
			app.logger.Errorw("daily report not delivered", "user_id", u.ID, "error", err.Error())
			continue
		}
		sent++
	}
	return sent, nil
}

// pruneStalePushTokensEvery removes device tokens that have not been
// refreshed for 60 days, once a day.
func (app *application) pruneStalePushTokensEvery(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			n, err := app.store.PushTokens.PruneStale(ctx, 60*24*time.Hour)
			if err != nil {
				app.logger.Errorw("pruning push tokens failed", "error", err.Error())
			} else if n > 0 {
				app.logger.Infow("stale push tokens pruned", "count", n)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
