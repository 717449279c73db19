package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter allows limit requests per client IP in each window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
	}
}

// Allow counts a request from ip. When the window is full it returns false
// and how long the client should wait.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	count, exists := rl.clients[ip]
	if exists && count >= rl.limit {
		return false, rl.window
	}

	if !exists {
		time.AfterFunc(rl.window, func() { rl.reset(ip) })
	}
	rl.clients[ip]++
	return true, 0
}

func (rl *FixedWindowRateLimiter) reset(ip string) {
	rl.Lock()
	delete(rl.clients, ip)
	rl.Unlock()
}
