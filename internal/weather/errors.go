package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("malformed row")
	// ErrFormat is wrapped by every FormatError.
	ErrFormat = errors.New("invalid date")
	// ErrNoData is returned when the input has a header but no data rows.
	ErrNoData = errors.New("no data rows")
	// ErrEmptyInput is returned by Mean for an empty slice.
	ErrEmptyInput = errors.New("empty input")
	// ErrEmptyDataset is returned when a summary is requested for zero days.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrUnknownSource is returned for a source name that is not configured.
	ErrUnknownSource = errors.New("unknown source")
)

// ParseError describes a row that could not be loaded.
type ParseError struct {
	Line int // 1-based line in the input
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap lets errors.Is match both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// FormatError describes a date string that is not ISO-8601.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%q is not an ISO-8601 date: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}
