package main

import (
	"errors"
	"net/http"
	"time"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/nepcal"
	"sashambhu/internal/params"
	"sashambhu/internal/pricing"
)

type BookingPage struct {
	Bookings   []bookings.Booking `json:"bookings"`
	Pagination params.Pagination  `json:"pagination"`
}

type UpdateStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=Confirmed Completed"`
}

type RevenueResponse struct {
	Period       bookings.Period `json:"period" swaggertype:"string"`
	Since        *time.Time      `json:"since,omitempty"`
	RevenueCents int64           `json:"revenue_cents"`
	Revenue      string          `json:"revenue"`
}

type Overview struct {
	AllTime      bookings.Stats `json:"all_time"`
	Today        bookings.Stats `json:"today"`
	DailyCents   int64          `json:"daily_revenue_cents"`
	WeeklyCents  int64          `json:"weekly_revenue_cents"`
	MonthlyCents int64          `json:"monthly_revenue_cents"`
}

// PricesPayload carries unit prices per person, in paisa, each at most
// pricing.MaxPriceCents.
type PricesPayload struct {
	Playzone1hrCents        *int64 `json:"playzone_1hr_cents" validate:"required,gte=0,lte=10000000"`
	PlayzoneUnlimitedCents  *int64 `json:"playzone_unlimited_cents" validate:"required,gte=0,lte=10000000"`
	Skatepark30minCents     *int64 `json:"skatepark_30min_cents" validate:"required,gte=0,lte=10000000"`
	Skatepark1hrCents       *int64 `json:"skatepark_1hr_cents" validate:"required,gte=0,lte=10000000"`
	SkateparkExtraHourCents *int64 `json:"skatepark_extra_hour_cents" validate:"required,gte=0,lte=10000000"`
}

func (p PricesPayload) table() pricing.PriceTable {
	return pricing.PriceTable{
		Playzone1hrCents:        *p.Playzone1hrCents,
		PlayzoneUnlimitedCents:  *p.PlayzoneUnlimitedCents,
		Skatepark30minCents:     *p.Skatepark30minCents,
		Skatepark1hrCents:       *p.Skatepark1hrCents,
		SkateparkExtraHourCents: *p.SkateparkExtraHourCents,
	}
}

// adminListBookingsHandler godoc
//
//	@Summary		Search all bookings
//	@Tags			Admin
//	@Produce		json
//	@Param			date	query		string	false	"English date (2006-01-02)"
//	@Param			game	query		string	false	"Playzone, Skatepark or all"
//	@Param			status	query		string	false	"Pending, Confirmed, Completed or all"
//	@Param			token	query		string	false	"Token number contains"
//	@Param			search	query		string	false	"Name, token, address or phone contains"
//	@Param			page	query		int		false	"Page (default 1)"
//	@Param			limit	query		int		false	"Page size (default 15, max 30)"
//	@Success		200		{object}	BookingPage
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings [get]
func (app *application) adminListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Bookings.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	q := r.URL.Query()
	view := bookings.DeriveView(list, bookings.ViewFilter{
		Date:   q.Get("date"),
		Game:   q.Get("game"),
		Status: q.Get("status"),
		Token:  q.Get("token"),
		Search: q.Get("search"),
	})

	p := params.ParsePagination(q)
	p.ComputeMeta(len(view))

	start, end := p.Window(len(view))
	page := view[start:end]

	app.jsonResponse(w, http.StatusOK, BookingPage{Bookings: page, Pagination: p})
}

// adminUpdateStatusHandler godoc
//
//	@Summary		Advance a booking's status
//	@Description	Bookings only move forward: Pending to Confirmed to Completed.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Booking ID"
//	@Param			payload	body		UpdateStatusPayload	true	"New status"
//	@Success		200		{object}	bookings.Booking
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/{id}/status [patch]
func (app *application) adminUpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	var payload UpdateStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.advanceBooking(w, r, bookings.Status(payload.Status))
}

// adminDeleteBookingHandler godoc
//
//	@Summary		Delete a booking
//	@Tags			Admin
//	@Param			id	path	int	true	"Booking ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/{id} [delete]
func (app *application) adminDeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Bookings.Delete(r.Context(), id); err != nil {
		app.bookingStoreError(w, r, err)
		return
	}

	app.logger.Infow("booking deleted", "id", id, "by", getUserFromContext(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

// autoApproveHandler godoc
//
//	@Summary		Confirm every pending booking
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	map[string]int64
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/auto-approve [post]
func (app *application) autoApproveHandler(w http.ResponseWriter, r *http.Request) {
	n, err := app.store.Bookings.ConfirmAllPending(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("pending bookings approved", "count", n, "by", getUserFromContext(r).ID)
	app.jsonResponse(w, http.StatusOK, map[string]int64{"approved": n})
}

// revenueHandler godoc
//
//	@Summary		Revenue of completed bookings
//	@Description	Weeks start on Sunday; periods end now (Asia/Kathmandu).
//	@Tags			Admin
//	@Produce		json
//	@Param			period	query		string	false	"daily, weekly, monthly or all (default)"
//	@Success		200		{object}	RevenueResponse
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/revenue [get]
func (app *application) revenueHandler(w http.ResponseWriter, r *http.Request) {
	period := bookings.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = bookings.PeriodAll
	}
	if !period.Valid() {
		app.badRequestResponse(w, r, errors.New("period must be daily, weekly, monthly or all"))
		return
	}

	list, err := app.store.Bookings.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	now := app.now().In(app.location)
	total := bookings.Revenue(list, period, now)

	resp := RevenueResponse{Period: period, RevenueCents: total, Revenue: pricing.FormatRupees(total)}
	if start := bookings.PeriodStart(period, now); !start.IsZero() {
		resp.Since = &start
	}
	app.jsonResponse(w, http.StatusOK, resp)
}

// overviewHandler godoc
//
//	@Summary		Admin dashboard
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	Overview
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/overview [get]
func (app *application) overviewHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Bookings.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	now := app.now().In(app.location)
	today := bookings.DeriveView(list, bookings.ViewFilter{Date: now.Format(nepcal.ISODate)})

	app.jsonResponse(w, http.StatusOK, Overview{
		AllTime:      bookings.Summarize(list, app.location),
		Today:        bookings.Summarize(today, app.location),
		DailyCents:   bookings.Revenue(list, bookings.PeriodDaily, now),
		WeeklyCents:  bookings.Revenue(list, bookings.PeriodWeekly, now),
		MonthlyCents: bookings.Revenue(list, bookings.PeriodMonthly, now),
	})
}

// getPricesHandler godoc
//
//	@Summary		Current unit prices
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	prices.Settings
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/prices [get]
func (app *application) getPricesHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := app.store.Prices.Current(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, settings)
}

// updatePricesHandler godoc
//
//	@Summary		Replace unit prices
//	@Description	New prices apply to bookings created afterwards; stored bookings keep their price.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		PricesPayload	true	"Prices in paisa"
//	@Success		200		{object}	prices.Settings
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/prices [put]
func (app *application) updatePricesHandler(w http.ResponseWriter, r *http.Request) {
	var payload PricesPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	settings, err := app.store.Prices.Save(r.Context(), payload.table(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrNegativePrice), errors.Is(err, pricing.ErrPriceTooHigh):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("prices updated", "by", user.ID)
	app.jsonResponse(w, http.StatusOK, settings)
}
