package window

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

var (
	// ErrTooManyDays is returned when a day string is longer than a week.
	ErrTooManyDays = errors.New("too many days")

	// ErrDuplicateDay is returned when a day appears twice in a day string.
	ErrDuplicateDay = errors.New("duplicate day")
)

// DefaultDayNames are the single-character day names accepted in sign-ups,
// ordered from the first day of a Wednesday-start window. 日, 天 and 七 are
// alternative spellings of Sunday.
var DefaultDayNames = []string{"三", "四", "五", "六", "日", "天", "七", "一", "二"}

// DayTable recognizes day names inside free-form availability strings.
type DayTable struct {
	names map[rune]bool
	order []string
}

// DefaultDayTable returns a table over DefaultDayNames.
func DefaultDayTable() *DayTable {
	t, _ := NewDayTable(DefaultDayNames)

	return t
}

// NewDayTable builds a table from single-character day names.
//
// Parameters:
//   - names: Day names, one character each
//
// Returns:
//   - *DayTable: The table
//   - error: If a name is not exactly one character or repeats
func NewDayTable(names []string) (*DayTable, error) {
	t := &DayTable{names: make(map[rune]bool, len(names))}
	for _, name := range names {
		if utf8.RuneCountInString(name) != 1 {
			return nil, fmt.Errorf("day name %q must be a single character", name)
		}

		r, _ := utf8.DecodeRuneInString(name)
		if t.names[r] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDay, name)
		}
		t.names[r] = true
		t.order = append(t.order, name)
	}

	return t, nil
}

// Names returns the day names in table order.
func (t *DayTable) Names() []string {
	return slices.Clone(t.order)
}

// ParseDays extracts the declared days from an availability string.
//
// Characters that are not day names are ignored. Strings longer than seven
// characters and strings naming a day twice are rejected.
//
// Parameters:
//   - s: Availability string, e.g. "三四六"
//
// Returns:
//   - map[string]bool: Declared days (empty when none match)
//   - error: ErrTooManyDays or ErrDuplicateDay
//
// Example:
//
//	days, err := window.DefaultDayTable().ParseDays("周三四") // {"三": true, "四": true}
func (t *DayTable) ParseDays(s string) (map[string]bool, error) {
	if utf8.RuneCountInString(s) > Length {
		return nil, fmt.Errorf("%w: %q", ErrTooManyDays, s)
	}

	days := make(map[string]bool)
	for _, r := range s {
		if !t.names[r] {
			continue
		}

		day := string(r)
		if days[day] {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateDay, day, s)
		}
		days[day] = true
	}

	return days, nil
}
