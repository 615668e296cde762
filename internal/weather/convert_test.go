package weather

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCelsius(t *testing.T) {
	tests := []struct {
		name       string
		fahrenheit float64
		expected   float64
	}{
		{name: "freezing point", fahrenheit: 32, expected: 0.0},
		{name: "boiling point", fahrenheit: 212, expected: 100.0},
		{name: "body temperature", fahrenheit: 98.6, expected: 37.0},
		{name: "rounds down to one decimal", fahrenheit: 49, expected: 9.4},
		{name: "rounds up to one decimal", fahrenheit: 57, expected: 13.9},
		{name: "scales meet", fahrenheit: -40, expected: -40.0},
		{name: "below zero", fahrenheit: 0, expected: -17.8},
		{name: "fractional input", fahrenheit: 67.5, expected: 19.7},
		{name: "decimal half rounds to even", fahrenheit: -30.19, expected: -34.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ToCelsius(tt.fahrenheit), 1e-9)
		})
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{input: 20.0, expected: "20.0°C"},
		{input: 9.4, expected: "9.4°C"},
		{input: -1.5, expected: "-1.5°C"},
		{input: 0, expected: "0.0°C"},
		{input: 100, expected: "100.0°C"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTemperature(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain date", input: "2021-07-06", expected: "Tuesday 06 July 2021"},
		{name: "single digit day is padded", input: "2021-07-05", expected: "Monday 05 July 2021"},
		{name: "leap day", input: "2020-02-29", expected: "Saturday 29 February 2020"},
		{name: "timestamp keeps its local date", input: "2021-07-02T07:00:00+08:00", expected: "Friday 02 July 2021"},
		{name: "surrounding whitespace", input: " 2021-07-06 ", expected: "Tuesday 06 July 2021"},
		{name: "timestamp without offset", input: "2021-07-02T07:00:00", expected: "Friday 02 July 2021"},
		{name: "space separated timestamp", input: "2021-07-02 07:00:00+08:00", expected: "Friday 02 July 2021"},
		{name: "timestamp without seconds", input: "2021-07-02T07:00", expected: "Friday 02 July 2021"},
		{name: "fractional seconds", input: "2021-07-02T23:59:59.5", expected: "Friday 02 July 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatDateRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "06/07/2021", "2021-13-01", "2021-02-30", "yesterday", "2021-07-02T25:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := FormatDate(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, input, fe.Value)
		})
	}
}
