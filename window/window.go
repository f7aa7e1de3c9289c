// Package window implements weekly scheduling window arithmetic.
//
// A window is seven consecutive calendar days starting on a configured
// weekday. Sign-ups, schedules and published records are keyed by the
// start date of their window.
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// KeyLayout formats a window start as YYYY-MM-DD.
const KeyLayout = "2006-01-02"

// Length is the number of days in a window.
const Length = 7

// ErrInvalidWindow is returned when a window string or weekday name cannot be parsed.
var ErrInvalidWindow = errors.New("invalid window")

// Window is a seven-day scheduling window.
type Window struct {
	// Start is midnight of the first day, in the location the window was built in.
	Start time.Time
}

// Next returns the window that begins on the next start weekday at or after now.
//
// A window starting today counts, so on a Wednesday with a Wednesday start
// the window beginning that day is returned.
//
// Parameters:
//   - now: Reference time; its location is kept
//   - start: First weekday of every window
//
// Returns:
//   - Window: The upcoming window
//
// Example:
//
//	w := window.Next(time.Now(), time.Wednesday)
//	fmt.Println(w) // 2024-01-03 ~ 2024-01-09
func Next(now time.Time, start time.Weekday) Window {
	diff := (int(start) - int(now.Weekday()) + Length) % Length

	return Window{Start: midnight(now).AddDate(0, 0, diff)}
}

// Of returns the window containing t.
func Of(t time.Time, start time.Weekday) Window {
	back := (int(t.Weekday()) - int(start) + Length) % Length

	return Window{Start: midnight(t).AddDate(0, 0, -back)}
}

// End returns midnight of the last day of the window.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, 0, Length-1)
}

// Shift returns the window the given number of weeks later (or earlier when negative).
func (w Window) Shift(weeks int) Window {
	return Window{Start: w.Start.AddDate(0, 0, weeks*Length)}
}

// Previous returns the window one week earlier.
func (w Window) Previous() Window {
	return w.Shift(-1)
}

// Contains reports whether t falls on one of the window's days.
func (w Window) Contains(t time.Time) bool {
	day := midnight(t.In(w.Start.Location()))

	return !day.Before(w.Start) && !day.After(w.End())
}

// Key returns the start date formatted as YYYY-MM-DD.
func (w Window) Key() string {
	return w.Start.Format(KeyLayout)
}

// String returns the window as "start ~ end".
func (w Window) String() string {
	return w.Key() + " ~ " + w.End().Format(KeyLayout)
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Start.IsZero()
}

// ParseStart parses a window from either a "start ~ end" range or a bare start date.
//
// Only the start date is read; the end is always derived from it.
//
// Parameters:
//   - s: Range or date string, e.g. "2024-01-03 ~ 2024-01-09"
//   - loc: Location of the returned window (time.Local if nil)
//
// Returns:
//   - Window: Parsed window
//   - error: ErrInvalidWindow if the start date is malformed
func ParseStart(s string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}

	startPart, _, _ := strings.Cut(s, "~")
	start, err := time.ParseInLocation(KeyLayout, strings.TrimSpace(startPart), loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %w", ErrInvalidWindow, s, err)
	}

	return Window{Start: start}, nil
}

// ParseWeekday parses an English weekday name such as "wednesday" or "Wed".
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if n == full || n == full[:3] {
				return d, nil
			}
		}
	}

	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", ErrInvalidWindow, name)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
