// Package clock supplies the reference "now" for date resolution. Callers
// depend on the Clock interface so tests can pin the date.
package clock

import (
	"fmt"
	"time"
)

// DefaultZone is the civil timezone reference dates are taken in.
const DefaultZone = "Europe/Moscow"

// Clock abstracts time.Now.
type Clock interface {
	Now() time.Time
}

// Zoned reports the current time in a fixed location.
type Zoned struct {
	loc *time.Location
}

// NewZoned creates a clock for loc (UTC when loc is nil).
func NewZoned(loc *time.Location) Zoned {
	if loc == nil {
		loc = time.UTC
	}
	return Zoned{loc: loc}
}

func (z Zoned) Now() time.Time {
	return time.Now().In(z.loc)
}

// Location returns the clock's timezone.
func (z Zoned) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// LoadLocation resolves an IANA zone name. Moscow has had no DST since 2014,
// so a fixed UTC+3 zone stands in when the tz database is missing.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == DefaultZone {
		return time.FixedZone("MSK", 3*60*60), nil
	}
	return nil, fmt.Errorf("load timezone %q: %w", name, err)
}
