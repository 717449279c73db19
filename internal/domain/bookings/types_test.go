package bookings

import (
	"testing"
	"time"

	"sashambhu/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))

	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusConfirmed))
	assert.False(t, CanTransition(StatusCompleted, StatusCompleted))
	assert.False(t, CanTransition(StatusPending, Status("Cancelled")))
}

func TestBooking_AdvanceStampsSession(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{Status: StatusPending, CreatedAt: created}

	started := created.Add(5 * time.Minute)
	require.NoError(t, b.Advance(StatusConfirmed, started))
	assert.Equal(t, StatusConfirmed, b.Status)
	require.NotNil(t, b.StartedAt)
	assert.Equal(t, started, *b.StartedAt)

	ended := started.Add(47*time.Minute + 40*time.Second)
	require.NoError(t, b.Advance(StatusCompleted, ended))
	assert.Equal(t, StatusCompleted, b.Status)
	require.NotNil(t, b.ActualDurationMinutes)
	assert.Equal(t, 48, *b.ActualDurationMinutes)
	assert.Equal(t, ended, *b.EndedAt)
}

func TestBooking_AdvanceWithoutStartUsesCreatedAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{Status: StatusConfirmed, CreatedAt: created}

	require.NoError(t, b.Advance(StatusCompleted, created.Add(90*time.Minute)))
	assert.Equal(t, 90, *b.ActualDurationMinutes)
}

func TestBooking_AdvanceRejectsBackTransition(t *testing.T) {
	b := &Booking{Status: StatusCompleted}
	assert.ErrorIs(t, b.Advance(StatusPending, time.Now()), ErrInvalidTransition)
	assert.Equal(t, StatusCompleted, b.Status)
}

func TestBooking_SelectionRoundTrip(t *testing.T) {
	var b Booking

	b.SetSelection(pricing.Selection{Family: pricing.Skatepark, Package: pricing.SkateparkHalfHour, ExtraHours: 2})
	assert.Nil(t, b.PlayzonePackage)
	assert.Equal(t, pricing.Selection{Family: pricing.Skatepark, Package: pricing.SkateparkHalfHour, ExtraHours: 2}, b.Selection())

	b.SetSelection(pricing.Selection{Family: pricing.Playzone, Package: pricing.PlayzoneUnlimited, ExtraHours: 3})
	assert.Nil(t, b.SkateparkBasePackage)
	assert.Nil(t, b.SkateparkExtraHours)
	assert.Equal(t, pricing.Selection{Family: pricing.Playzone, Package: pricing.PlayzoneUnlimited}, b.Selection())
}

func TestReferenceCodec(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	require.NoError(t, err)

	ref := codec.Encode(42)
	assert.GreaterOrEqual(t, len(ref), 6)

	id, err := codec.Decode(ref)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	other, err := NewReferenceCodec("other-salt")
	require.NoError(t, err)
	assert.NotEqual(t, ref, other.Encode(42))

	_, err = codec.Decode("!!")
	assert.ErrorIs(t, err, ErrInvalidReference)
}
