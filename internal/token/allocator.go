package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Fallback is handed out when the existing tokens could not be read.
// It is only correct for an empty store; callers must keep a uniqueness
// check (the bookings table has a unique index) behind it.
const Fallback = "1"

var ErrStoreUnavailable = errors.New("token store unavailable")

// Source lists every token number currently on record.
type Source interface {
	ListTokens(ctx context.Context) ([]string, error)
}

// Allocate returns max(existing)+1 as a plain decimal string. Each token is
// reduced to its digits before parsing; tokens without digits or that
// overflow int64 are ignored.
func Allocate(existing []string) string {
	var max int64
	for _, tok := range existing {
		n, ok := parse(tok)
		if ok && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

func parse(tok string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, tok)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 || n == 1<<63-1 {
		return 0, false
	}
	return n, true
}

// Allocator reads the full token population at call time; it keeps no counter.
//
// Two allocators reading the same population return the same token. Run Next
// and the insert that uses its result under one lock.
type Allocator struct {
	src Source
}

func NewAllocator(src Source) *Allocator {
	return &Allocator{src: src}
}

// Next returns the next token. If the source read fails it returns Fallback
// together with an error wrapping ErrStoreUnavailable.
func (a *Allocator) Next(ctx context.Context) (string, error) {
	tokens, err := a.src.ListTokens(ctx)
	if err != nil {
		return Fallback, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return Allocate(tokens), nil
}
