package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayRange(t *testing.T) {
	t.Parallel()

	start, end := dayRange(time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRange(t *testing.T) {
	t.Parallel()

	t.Run("regular month", func(t *testing.T) {
		start, end := monthRange(2024, time.June)
		require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
		require.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		start, end := monthRange(2024, time.December)
		require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
		require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("months tile the year without gaps", func(t *testing.T) {
		for m := time.January; m < time.December; m++ {
			_, end := monthRange(2024, m)
			nextStart, _ := monthRange(2024, m+1)
			require.Equal(t, nextStart, end)
		}
	})
}

func TestYearRange(t *testing.T) {
	t.Parallel()

	start, end := yearRange(2024)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDateParam(t *testing.T) {
	t.Parallel()

	t.Run("parses explicit date", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?date=2024-06-01", nil)
		day, err := dateParam(r)
		require.NoError(t, err)
		require.Equal(t, 2024, day.Year())
		require.Equal(t, time.June, day.Month())
		require.Equal(t, 1, day.Day())
	})

	t.Run("defaults to today", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		day, err := dateParam(r)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().UTC(), day, time.Minute)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?date=06-01-2024", nil)
		_, err := dateParam(r)
		require.Error(t, err)
	})
}

func TestYearMonthParams(t *testing.T) {
	t.Parallel()

	t.Run("parses explicit year and month", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?year=2024&month=6", nil)
		year, month, err := yearMonthParams(r)
		require.NoError(t, err)
		require.Equal(t, 2024, year)
		require.Equal(t, time.June, month)
	})

	t.Run("rejects out-of-range month", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?year=2024&month=13", nil)
		_, _, err := yearMonthParams(r)
		require.Error(t, err)
	})

	t.Run("rejects non-numeric year", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?year=twenty", nil)
		_, _, err := yearMonthParams(r)
		require.Error(t, err)
	})
}

func TestPeriodRange(t *testing.T) {
	t.Parallel()

	t.Run("daily", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?period=daily&date=2024-06-01", nil)
		start, end, label, err := periodRange(r)
		require.NoError(t, err)
		require.Equal(t, "2024-06-01", label)
		require.Equal(t, 24*time.Hour, end.Sub(start))
	})

	t.Run("monthly is the default", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?year=2024&month=6", nil)
		start, end, label, err := periodRange(r)
		require.NoError(t, err)
		require.Equal(t, "2024-06", label)
		require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
		require.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("yearly", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?period=yearly&year=2024", nil)
		_, _, label, err := periodRange(r)
		require.NoError(t, err)
		require.Equal(t, "2024", label)
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?period=weekly", nil)
		_, _, _, err := periodRange(r)
		require.Error(t, err)
	})
}
