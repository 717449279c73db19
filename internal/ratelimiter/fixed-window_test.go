package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowRateLimiter(t *testing.T) {
	rl := NewFixedWindowLimiter(2, 50*time.Millisecond)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 50*time.Millisecond, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "other clients have their own window")

	assert.Eventually(t, func() bool {
		ok, _ := rl.Allow("10.0.0.1")
		return ok
	}, time.Second, 10*time.Millisecond)
}
