package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// dayRange returns the half-open [start, end) range covering one calendar
// day. Half-open ranges keep adjacent periods from overlapping, so a day's
// totals always add up to the month's, and months to the year's.
func dayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// monthRange returns the half-open range covering one calendar month.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// yearRange returns the half-open range covering one calendar year.
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// dateParam parses the "date" query parameter, defaulting to today.
func dateParam(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", v)
	}
	return day, nil
}

// yearMonthParams parses the "year" and "month" query parameters,
// defaulting to the current month.
func yearMonthParams(r *http.Request) (int, time.Month, error) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return 0, 0, fmt.Errorf("invalid year %q", v)
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", v)
		}
		month = time.Month(m)
	}
	return year, month, nil
}

// periodRange resolves the "period" query parameter (daily, monthly — the
// default — or yearly) and its date selectors into a half-open range plus
// a display label for the response.
func periodRange(r *http.Request) (time.Time, time.Time, string, error) {
	switch p := r.URL.Query().Get("period"); p {
	case "daily":
		day, err := dateParam(r)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		start, end := dayRange(day)
		return start, end, start.Format(dateLayout), nil
	case "", "monthly":
		year, month, err := yearMonthParams(r)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		start, end := monthRange(year, month)
		return start, end, start.Format("2006-01"), nil
	case "yearly":
		year, err := yearParam(r)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		start, end := yearRange(year)
		return start, end, start.Format("2006"), nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid period %q, want daily, monthly or yearly", p)
	}
}

// yearParam parses the "year" query parameter, defaulting to the current
// year.
func yearParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("invalid year %q", v)
	}
	return year, nil
}
