// Package dateinput turns a user's reply into a date: it handles the relative
// day words the engine deliberately does not know and supplies the reference
// date from a clock.
package dateinput

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"datebot/internal/clock"
	"datebot/internal/dateparse"
)

// ErrInvalidReference is returned for a reference date that is not a real date.
var ErrInvalidReference = errors.New("invalid reference date")

// Source tells how a date was obtained.
type Source string

const (
	SourceKeyword Source = "keyword"
	SourceText    Source = "text"
)

// Result is a resolved date.
type Result struct {
	Date   dateparse.CalendarDate
	Source Source
	Rule   string
}

// relativeDays maps relative day words to offsets from the reference date.
var relativeDays = map[string]int{
	"сегодня":     0,
	"вчера":       -1,
	"завтра":      1,
	"позавчера":   -2,
	"послезавтра": 2,
	"today":       0,
	"yesterday":   -1,
	"tomorrow":    1,
}

// Resolver resolves user text against the current date of its clock.
type Resolver struct {
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a resolver. A nil logger falls back to slog.Default.
func New(c clock.Clock, logger *slog.Logger) *Resolver {
	if c == nil {
		c = clock.NewZoned(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{clock: c, logger: logger}
}

// Today is the reference date for the resolver's clock.
func (r *Resolver) Today() dateparse.Reference {
	return dateparse.ReferenceFrom(r.clock.Now())
}

// Resolve resolves text against today's date.
func (r *Resolver) Resolve(text string) (Result, error) {
	return r.ResolveAt(text, r.Today())
}

// ResolveAt resolves text against ref.
func (r *Resolver) ResolveAt(text string, ref dateparse.Reference) (Result, error) {
	today, ok := ref.Date()
	if !ok {
		return Result{}, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidReference, ref.Year, ref.Month, ref.Day)
	}

	if offset, ok := relativeDays[keyword(text)]; ok {
		date, ok := today.AddDays(offset)
		if !ok {
			return Result{}, dateparse.ErrUnrecognized
		}
		return Result{Date: date, Source: SourceKeyword, Rule: "keyword"}, nil
	}

	m, err := dateparse.ParseMatch(text, ref)
	if err != nil {
		r.logger.Debug("date_unrecognized", "input", text, "reference", today.String())
		return Result{}, err
	}
	return Result{Date: m.Date, Source: SourceText, Rule: m.Rule}, nil
}

func keyword(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "ё", "е")
	return strings.TrimRight(s, ".!?, ")
}
