package weather

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "Monday 02 January 2006"
)

// timestampLayouts are the ISO 8601 timestamp forms accepted after a plain
// date, with or without an offset and with 'T' or a space as separator.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ToCelsius converts Fahrenheit to Celsius rounded to one decimal place.
// Halves of the scaled decimal value round to even, so -30.19 gives -34.6.
func ToCelsius(f float64) float64 {
	c := (f - 32) * 5 / 9
	return math.RoundToEven(c*10) / 10
}

// FormatTemperature renders t followed by DegreeSymbol, e.g. "20.0°C".
func FormatTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + DegreeSymbol
}

// FormatDate renders an ISO date as "Tuesday 06 July 2021".
// ISO 8601 timestamps are accepted too; their local wall-clock date is used.
func FormatDate(iso string) (string, error) {
	t, err := ParseDate(iso)
	if err != nil {
		return "", err
	}
	return t.Format(displayDateLayout), nil
}

// ParseDate parses YYYY-MM-DD or an ISO 8601 timestamp. Timestamps without
// an offset are read as UTC.
func ParseDate(iso string) (time.Time, error) {
	s := strings.TrimSpace(iso)
	t, err := time.Parse(isoDateLayout, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range timestampLayouts {
		if ts, tsErr := time.Parse(layout, s); tsErr == nil {
			return ts, nil
		}
	}
	return time.Time{}, &FormatError{Value: iso, Err: err}
}

// celsiusLabel converts a Fahrenheit reading and renders it.
func celsiusLabel(f float64) string {
	return FormatTemperature(ToCelsius(f))
}
