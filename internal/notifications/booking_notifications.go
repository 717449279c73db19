package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/storage"
	"sashambhu/internal/pricing"

	"github.com/9ssi7/exponent"
)

var ErrNoPushTokens = errors.New("no push tokens")

type BookingEvent string

const (
	BookingCreated   BookingEvent = "CREATED"
	BookingConfirmed BookingEvent = "CONFIRMED"
	BookingCompleted BookingEvent = "COMPLETED"
)

func bookingMessage(event BookingEvent, b *bookings.Booking) (title, body string) {
	switch event {
	case BookingCreated:
		title = fmt.Sprintf("New booking #%s", b.TokenNumber)
		body = fmt.Sprintf("%s, %d person(s), %s %s, %s",
			b.Name, b.NumberOfPersons, b.GameType, b.Selection().Describe(), pricing.FormatRupees(b.PriceCents))
	case BookingConfirmed:
		title = fmt.Sprintf("Token #%s started", b.TokenNumber)
		body = fmt.Sprintf("%s is now playing", b.Name)
	case BookingCompleted:
		title = fmt.Sprintf("Token #%s finished", b.TokenNumber)
		body = fmt.Sprintf("%s has left the %s", b.Name, b.GameType)
	default:
		title = "Booking update"
		body = fmt.Sprintf("Token #%s has an update", b.TokenNumber)
	}
	return title, body
}

// NotifyStaff pushes a booking event to every registered staff device.
func NotifyStaff(ctx context.Context, push PushSender, store *storage.Container, event BookingEvent, b *bookings.Booking) error {
	ids, err := store.Users.ListIDs(ctx)
	if err != nil {
		return err
	}

	tokensMap, err := store.PushTokens.TokensByUser(ctx, ids)
	if err != nil {
		return err
	}

	var all []string
	for _, t := range tokensMap {
		all = append(all, t...)
	}
	tokens := dedupe(all)
	if len(tokens) == 0 {
		return ErrNoPushTokens
	}

	title, body := bookingMessage(event, b)
	bookingID := strconv.FormatInt(b.ID, 10)

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			// the app opens data.screen when the notification is tapped
			Data: map[string]string{
				"type":      "booking",
				"event":     string(event),
				"bookingId": bookingID,
				"token":     b.TokenNumber,
				"screen":    "bookings/" + bookingID,
			},
		})
	}

	_, err = push.Publish(ctx, msgs)
	return err
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
