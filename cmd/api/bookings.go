package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/nepcal"
	"sashambhu/internal/notifications"
	"sashambhu/internal/pricing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// QuotePayload is the partially filled booking form. The price is
// recomputed on every change, so an incomplete selection quotes zero.
type QuotePayload struct {
	GameType        string `json:"game_type"`
	Package         string `json:"package"`
	ExtraHours      int    `json:"extra_hours" validate:"gte=0,lte=24"`
	NumberOfPersons int    `json:"number_of_persons" validate:"gte=0,lte=500"`
	DateEnglish     string `json:"date_english" validate:"omitempty,isodate"`
}

type QuoteResponse struct {
	PriceCents     int64             `json:"price_cents"`
	Price          string            `json:"price"`
	UnitPriceCents int64             `json:"unit_price_cents"`
	Package        string            `json:"package"`
	DateEnglish    string            `json:"date_english"`
	DateNepali     string            `json:"date_nepali"`
	DateConfidence nepcal.Confidence `json:"date_confidence"`
}

// CreateBookingPayload is the counter's booking form.
type CreateBookingPayload struct {
	ClientRef       *uuid.UUID `json:"client_ref" swaggertype:"string"`
	TokenNumber     string     `json:"token_number" validate:"omitempty,max=20"`
	Name            string     `json:"name" validate:"required,max=100"`
	PhoneNumber     string     `json:"phone_number" validate:"required,nepaliphone"`
	Gender          string     `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Age             int        `json:"age" validate:"required,gte=1,lte=120"`
	Address         string     `json:"address" validate:"required,max=255"`
	NumberOfPersons int        `json:"number_of_persons" validate:"required,gte=1,lte=500"`
	DateEnglish     string     `json:"date_english" validate:"omitempty,isodate"`
	GameType        string     `json:"game_type" validate:"required,oneof=Playzone Skatepark"`
	Package         string     `json:"package" validate:"required"`
	ExtraHours      int        `json:"extra_hours" validate:"gte=0,lte=24"`
}

func (p CreateBookingPayload) selection() pricing.Selection {
	sel := pricing.Selection{Family: pricing.Family(p.GameType), Package: p.Package}
	if sel.Family == pricing.Skatepark {
		sel.ExtraHours = p.ExtraHours
	}
	return sel
}

// bookingDate resolves the English booking date, defaulting to today in
// Kathmandu, and converts it once.
func (app *application) bookingDate(dateEnglish string) (string, nepcal.Date, error) {
	if dateEnglish == "" {
		dateEnglish = app.today()
	}
	t, err := nepcal.ParseGregorian(dateEnglish)
	if err != nil {
		return "", nepcal.Date{}, err
	}
	nd := app.calendar.Convert(t)
	if nd.Confidence != nepcal.Exact {
		app.logger.Warnw("nepali date is not exact", "date_english", dateEnglish, "date_nepali", nd.String(), "confidence", nd.Confidence)
	}
	return dateEnglish, nd, nil
}

// priceTable loads the current prices. A failed read falls back to the
// default table so the counter can keep booking.
func (app *application) priceTable(ctx context.Context) pricing.PriceTable {
	settings, err := app.store.Prices.Current(ctx)
	if err != nil {
		app.logger.Warnw("price settings unavailable, using defaults", "error", err.Error())
		return pricing.DefaultTable()
	}
	return settings.PriceTable
}

func (app *application) today() string {
	return app.now().In(app.location).Format(nepcal.ISODate)
}

// quoteBookingHandler godoc
//
//	@Summary		Preview price and Nepali date
//	@Description	Prices a partially filled booking form; incomplete selections quote zero.
//	@Tags			Bookings
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		QuotePayload	true	"Form state"
//	@Success		200		{object}	QuoteResponse
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/quote [post]
func (app *application) quoteBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload QuotePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	dateEnglish, nd, err := app.bookingDate(payload.DateEnglish)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sel := pricing.Selection{Family: pricing.Family(payload.GameType), Package: payload.Package, ExtraHours: payload.ExtraHours}
	table := app.priceTable(r.Context())
	price := pricing.Compute(sel, payload.NumberOfPersons, table)

	app.jsonResponse(w, http.StatusOK, QuoteResponse{
		PriceCents:     price,
		Price:          pricing.FormatRupees(price),
		UnitPriceCents: pricing.UnitPrice(sel, table),
		Package:        sel.Describe(),
		DateEnglish:    dateEnglish,
		DateNepali:     nd.String(),
		DateConfidence: nd.Confidence,
	})
}

// createBookingHandler godoc
//
//	@Summary		Create a booking
//	@Description	Assigns the next token number (unless one is given), stamps the Nepali date and price, and stores the booking as Pending. Resubmitting the same client_ref returns the stored booking.
//	@Tags			Counter
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateBookingPayload	true	"Booking form"
//	@Success		201		{object}	bookings.Booking
//	@Success		200		{object}	bookings.Booking	"Already stored under this client_ref"
//	@Failure		400		{object}	error
//	@Failure		409		{object}	error	"Token number already used"
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/counter/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateBookingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sel := payload.selection()
	if !sel.Complete() {
		app.badRequestResponse(w, r, fmt.Errorf("unknown %s package %q", sel.Family, sel.Package))
		return
	}

	dateEnglish, nd, err := app.bookingDate(payload.DateEnglish)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	b := &bookings.Booking{
		TokenNumber:     strings.TrimSpace(payload.TokenNumber),
		Name:            strings.TrimSpace(payload.Name),
		PhoneNumber:     payload.PhoneNumber,
		Gender:          payload.Gender,
		Age:             payload.Age,
		Address:         strings.TrimSpace(payload.Address),
		NumberOfPersons: payload.NumberOfPersons,
		DateEnglish:     dateEnglish,
		DateNepali:      nd.String(),
		DateConfidence:  nd.Confidence,
		PriceCents:      pricing.Compute(sel, payload.NumberOfPersons, app.priceTable(ctx)),
		Status:          bookings.StatusPending,
		CreatedBy:       &user.ID,
	}
	b.SetSelection(sel)
	if payload.ClientRef != nil {
		b.ClientRef = *payload.ClientRef
	}

	created, err := app.store.Bookings.Create(ctx, b)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrDuplicateToken):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	if !created {
		// retried submit; staff were alerted the first time
		app.jsonResponse(w, http.StatusOK, b)
		return
	}

	app.logger.Infow("booking created", "id", b.ID, "token", b.TokenNumber, "price_cents", b.PriceCents, "by", user.ID)
	app.notifyStaff(notifications.BookingCreated, b)

	app.jsonResponse(w, http.StatusCreated, b)
}

// notifyStaff alerts staff devices in the background; failures are only logged.
func (app *application) notifyStaff(event notifications.BookingEvent, b *bookings.Booking) {
	if app.push == nil {
		return
	}
	booking := *b
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := notifications.NotifyStaff(ctx, app.push, app.store, event, &booking)
		if err != nil && !errors.Is(err, notifications.ErrNoPushTokens) {
			app.logger.Errorw("staff notification failed", "booking_id", booking.ID, "event", event, "error", err.Error())
		}
	})
}

// listTodayBookingsHandler godoc
//
//	@Summary		Today's bookings
//	@Description	Bookings for today (Kathmandu), newest first, narrowed by the optional filters.
//	@Tags			Counter
//	@Produce		json
//	@Param			search	query		string	false	"Name, token, address or phone contains"
//	@Param			status	query		string	false	"Pending, Confirmed, Completed or all"
//	@Param			game	query		string	false	"Playzone, Skatepark or all"
//	@Success		200		{array}		bookings.Booking
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/counter/bookings/today [get]
func (app *application) listTodayBookingsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Bookings.ListByDate(r.Context(), app.today())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	q := r.URL.Query()
	view := bookings.DeriveView(list, bookings.ViewFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Game:   q.Get("game"),
		Token:  q.Get("token"),
	})
	app.jsonResponse(w, http.StatusOK, view)
}

// todayStatsHandler godoc
//
//	@Summary		Counter dashboard numbers for today
//	@Tags			Counter
//	@Produce		json
//	@Success		200	{object}	bookings.Stats
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/counter/stats/today [get]
func (app *application) todayStatsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Bookings.ListByDate(r.Context(), app.today())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, bookings.Summarize(list, app.location))
}

// getBookingHandler godoc
//
//	@Summary		Fetch a booking
//	@Tags			Counter
//	@Produce		json
//	@Param			id	path		int	true	"Booking ID"
//	@Success		200	{object}	bookings.Booking
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/counter/bookings/{id} [get]
func (app *application) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	b, err := app.store.Bookings.GetByID(r.Context(), id)
	if err != nil {
		app.bookingStoreError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, b)
}

// getReceiptHandler godoc
//
//	@Summary		Look up a booking by receipt reference
//	@Tags			Bookings
//	@Produce		json
//	@Param			reference	path		string	true	"Receipt reference"
//	@Success		200			{object}	bookings.Booking
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/receipt/{reference} [get]
func (app *application) getReceiptHandler(w http.ResponseWriter, r *http.Request) {
	ref := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "reference")))
	id, err := app.refs.Decode(ref)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	b, err := app.store.Bookings.GetByID(r.Context(), id)
	if err != nil {
		app.bookingStoreError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, b)
}

// confirmBookingHandler godoc
//
//	@Summary		Start a session
//	@Description	Moves a Pending booking to Confirmed and records when play started.
//	@Tags			Counter
//	@Produce		json
//	@Param			id	path		int	true	"Booking ID"
//	@Success		200	{object}	bookings.Booking
//	@Failure		404	{object}	error
//	@Failure		409	{object}	error	"Booking is not Pending"
//	@Security		ApiKeyAuth
//	@Router			/counter/bookings/{id}/confirm [post]
func (app *application) confirmBookingHandler(w http.ResponseWriter, r *http.Request) {
	app.advanceBooking(w, r, bookings.StatusConfirmed)
}

// completeBookingHandler godoc
//
//	@Summary		End a session
//	@Description	Moves a Confirmed booking to Completed and records how long it ran.
//	@Tags			Counter
//	@Produce		json
//	@Param			id	path		int	true	"Booking ID"
//	@Success		200	{object}	bookings.Booking
//	@Failure		404	{object}	error
//	@Failure		409	{object}	error	"Booking is not Confirmed"
//	@Security		ApiKeyAuth
//	@Router			/counter/bookings/{id}/complete [post]
func (app *application) completeBookingHandler(w http.ResponseWriter, r *http.Request) {
	app.advanceBooking(w, r, bookings.StatusCompleted)
}

func (app *application) advanceBooking(w http.ResponseWriter, r *http.Request, status bookings.Status) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	b, err := app.store.Bookings.Advance(r.Context(), id, status, app.now())
	if err != nil {
		app.bookingStoreError(w, r, err)
		return
	}

	app.logger.Infow("booking status changed", "id", b.ID, "token", b.TokenNumber, "status", b.Status)
	switch b.Status {
	case bookings.StatusConfirmed:
		app.notifyStaff(notifications.BookingConfirmed, b)
	case bookings.StatusCompleted:
		app.notifyStaff(notifications.BookingCompleted, b)
	}
	app.jsonResponse(w, http.StatusOK, b)
}

// customerHistoryHandler godoc
//
//	@Summary		Past visits of a customer
//	@Description	Bookings whose name or phone number equals term exactly.
//	@Tags			Counter
//	@Produce		json
//	@Param			term	query		string	true	"Customer name or phone"
//	@Success		200		{array}		bookings.CustomerVisit
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/counter/customers/history [get]
func (app *application) customerHistoryHandler(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		app.badRequestResponse(w, r, errors.New("term is required"))
		return
	}

	visits, err := app.store.Bookings.SearchHistory(r.Context(), term)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, visits)
}

func (app *application) bookingStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bookings.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, bookings.ErrInvalidTransition):
		app.conflictResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
