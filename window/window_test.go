package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "monday rolls forward to wednesday", now: date(2024, 1, 1, 9), want: "2024-01-03 ~ 2024-01-09"},
		{name: "wednesday counts as the start", now: date(2024, 1, 3, 23), want: "2024-01-03 ~ 2024-01-09"},
		{name: "thursday rolls to the following week", now: date(2024, 1, 4, 0), want: "2024-01-10 ~ 2024-01-16"},
		{name: "sunday crosses the month", now: date(2024, 1, 28, 12), want: "2024-01-31 ~ 2024-02-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Next(tt.now, time.Wednesday)

			require.Equal(t, tt.want, w.String())
			require.Equal(t, time.Wednesday, w.Start.Weekday())
			require.Equal(t, 0, w.Start.Hour())
		})
	}
}

func TestOf(t *testing.T) {
	require.Equal(t, "2024-01-03", Of(date(2024, 1, 9, 20), time.Wednesday).Key())
	require.Equal(t, "2024-01-03", Of(date(2024, 1, 3, 1), time.Wednesday).Key())
	require.Equal(t, "2023-12-27", Of(date(2024, 1, 2, 1), time.Wednesday).Key())
}

func TestWindow_Shift(t *testing.T) {
	w := Next(date(2024, 1, 1, 9), time.Wednesday)

	require.Equal(t, "2023-12-27", w.Previous().Key())
	require.Equal(t, "2024-01-17", w.Shift(2).Key())
	require.Equal(t, w, w.Shift(1).Previous())
}

func TestWindow_Contains(t *testing.T) {
	w := Next(date(2024, 1, 1, 9), time.Wednesday)

	require.True(t, w.Contains(date(2024, 1, 3, 0)))
	require.True(t, w.Contains(date(2024, 1, 9, 23)))
	require.False(t, w.Contains(date(2024, 1, 10, 0)))
	require.False(t, w.Contains(date(2024, 1, 2, 23)))
}

func TestParseStart(t *testing.T) {
	t.Run("reads the start of a range", func(t *testing.T) {
		w, err := ParseStart("2024-01-03 ~ 2024-01-16", time.UTC)
		require.NoError(t, err)
		require.Equal(t, "2024-01-03", w.Key())
		require.Equal(t, "2024-01-09", w.End().Format(KeyLayout))
	})

	t.Run("accepts a bare date", func(t *testing.T) {
		w, err := ParseStart(" 2024-01-03 ", nil)
		require.NoError(t, err)
		require.Equal(t, "2024-01-03", w.Key())
		require.Equal(t, time.Local, w.Start.Location())
	})

	t.Run("round trips String", func(t *testing.T) {
		w := Next(date(2024, 1, 1, 9), time.Wednesday)

		parsed, err := ParseStart(w.String(), time.UTC)
		require.NoError(t, err)
		require.True(t, w.Start.Equal(parsed.Start))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParseStart("next week", time.UTC)
		require.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestParseWeekday(t *testing.T) {
	for _, name := range []string{"wednesday", "Wednesday", "WED", " wed "} {
		d, err := ParseWeekday(name)
		require.NoError(t, err, name)
		require.Equal(t, time.Wednesday, d)
	}

	d, err := ParseWeekday("sun")
	require.NoError(t, err)
	require.Equal(t, time.Sunday, d)

	for _, name := range []string{"", "we", "someday"} {
		_, err := ParseWeekday(name)
		require.ErrorIs(t, err, ErrInvalidWindow, name)
	}
}

func TestWindow_IsZero(t *testing.T) {
	require.True(t, Window{}.IsZero())
	require.False(t, Next(date(2024, 1, 1, 9), time.Wednesday).IsZero())
}
