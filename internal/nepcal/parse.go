package nepcal

import (
	"fmt"
	"time"
)

// ISODate is the layout of English booking dates.
const ISODate = "2006-01-02"

// ParseGregorian parses an ISO calendar date ("2024-04-13") as a UTC civil date.
func ParseGregorian(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid english date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current civil date in loc formatted as ISODate.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(ISODate)
}
