package bookings

import (
	"context"
	"errors"
	"time"

	"sashambhu/internal/nepcal"
	"sashambhu/internal/pricing"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("booking not found")
	ErrDuplicateToken    = errors.New("a booking with that token number already exists")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	QueryTimeoutDuration = time.Second * 5
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// next is the only status each status may move to.
var next = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusCompleted,
}

// CanTransition reports whether a booking may move from one status to
// another. Bookings only ever advance one step.
func CanTransition(from, to Status) bool {
	n, ok := next[from]
	return ok && n == to
}

// Booking represents a booking record.
type Booking struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	ClientRef uuid.UUID `json:"client_ref"`

	TokenNumber string `json:"token_number"`

	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Age             int    `json:"age"`
	Address         string `json:"address"`
	NumberOfPersons int    `json:"number_of_persons"`

	DateEnglish    string            `json:"date_english"`
	DateNepali     string            `json:"date_nepali"`
	DateConfidence nepcal.Confidence `json:"date_confidence"`

	GameType             pricing.Family `json:"game_type"`
	PlayzonePackage      *string        `json:"playzone_package,omitempty" swaggertype:"string"`
	SkateparkBasePackage *string        `json:"skatepark_base_package,omitempty" swaggertype:"string"`
	SkateparkExtraHours  *int           `json:"skatepark_extra_hours,omitempty" swaggertype:"integer"`

	PriceCents int64  `json:"price_cents"`
	Status     Status `json:"status"`
	CreatedBy  *int64 `json:"created_by,omitempty" swaggertype:"integer"`

	CreatedAt             time.Time  `json:"created_at"`
	StartedAt             *time.Time `json:"started_at,omitempty"`
	EndedAt               *time.Time `json:"ended_at,omitempty"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes,omitempty" swaggertype:"integer"`
}

// Selection rebuilds the product selection stored on b.
func (b *Booking) Selection() pricing.Selection {
	sel := pricing.Selection{Family: b.GameType}
	switch b.GameType {
	case pricing.Playzone:
		if b.PlayzonePackage != nil {
			sel.Package = *b.PlayzonePackage
		}
	case pricing.Skatepark:
		if b.SkateparkBasePackage != nil {
			sel.Package = *b.SkateparkBasePackage
		}
		if b.SkateparkExtraHours != nil {
			sel.ExtraHours = *b.SkateparkExtraHours
		}
	}
	return sel
}

// SetSelection stores sel on b, keeping the fields of the other family empty.
func (b *Booking) SetSelection(sel pricing.Selection) {
	b.GameType = sel.Family
	b.PlayzonePackage, b.SkateparkBasePackage, b.SkateparkExtraHours = nil, nil, nil
	switch sel.Family {
	case pricing.Playzone:
		pkg := sel.Package
		b.PlayzonePackage = &pkg
	case pricing.Skatepark:
		pkg, extra := sel.Package, sel.ExtraHours
		if extra < 0 {
			extra = 0
		}
		b.SkateparkBasePackage = &pkg
		b.SkateparkExtraHours = &extra
	}
}

// sessionStart is when play began: confirmation time, else creation time.
func (b *Booking) sessionStart() time.Time {
	if b.StartedAt != nil {
		return *b.StartedAt
	}
	return b.CreatedAt
}

// Advance moves b to status at the given time. Confirming starts the
// session; completing ends it and records how long it ran.
func (b *Booking) Advance(status Status, at time.Time) error {
	if !CanTransition(b.Status, status) {
		return ErrInvalidTransition
	}
	switch status {
	case StatusConfirmed:
		b.StartedAt = &at
	case StatusCompleted:
		mins := DurationMinutes(b.sessionStart(), at)
		b.EndedAt = &at
		b.ActualDurationMinutes = &mins
	}
	b.Status = status
	return nil
}

// DurationMinutes rounds the time between session start and end to minutes.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// CustomerVisit is one past booking shown when searching a customer's history.
type CustomerVisit struct {
	ID                   int64          `json:"id"`
	Name                 string         `json:"name"`
	PhoneNumber          string         `json:"phone_number,omitempty"`
	Gender               string         `json:"gender,omitempty"`
	NumberOfPersons      int            `json:"number_of_persons"`
	DateEnglish          string         `json:"date_english"`
	Status               Status         `json:"status"`
	GameType             pricing.Family `json:"game_type"`
	PlayzonePackage      *string        `json:"playzone_package,omitempty" swaggertype:"string"`
	SkateparkBasePackage *string        `json:"skatepark_base_package,omitempty" swaggertype:"string"`
	SkateparkExtraHours  *int           `json:"skatepark_extra_hours,omitempty" swaggertype:"integer"`
}

type Store interface {
	// Create assigns the next token number (unless b.TokenNumber is set) and
	// inserts b. A repeated ClientRef fills b with the booking already stored
	// and reports created as false.
	Create(ctx context.Context, b *Booking) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ListByDate(ctx context.Context, dateEnglish string) ([]Booking, error)
	ListTokens(ctx context.Context) ([]string, error)
	SearchHistory(ctx context.Context, term string) ([]CustomerVisit, error)
	// Advance moves a booking to status, stamping session times on the way.
	Advance(ctx context.Context, id int64, status Status, at time.Time) (*Booking, error)
	ConfirmAllPending(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
