package weather

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const fieldsPerRow = 3

type loadOptions struct {
	comma rune
}

// LoadOption customises how delimited text is parsed.
type LoadOption func(*loadOptions)

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) LoadOption {
	return func(o *loadOptions) {
		if r != 0 {
			o.comma = r
		}
	}
}

// LoadFile reads the delimited file at path into a Dataset.
func LoadFile(path string, opts ...LoadOption) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// Load opens src, parses it and always closes it.
func Load(ctx context.Context, src Source, opts ...LoadOption) (Dataset, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("open source %s: %w", src.Name(), err)
	}
	defer rc.Close()

	ds, err := Parse(rc, opts...)
	if err != nil {
		return Dataset{}, fmt.Errorf("source %s: %w", src.Name(), err)
	}
	return ds, nil
}

// Parse reads a header row followed by (date, min, max) rows.
// Empty lines are skipped and the first row is always treated as the header.
func Parse(r io.Reader, opts ...LoadOption) (Dataset, error) {
	o := loadOptions{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.comma
	reader.FieldsPerRecord = -1 // column count is checked per row below

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, ErrNoData
		}
		return Dataset{}, csvParseError(err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, csvParseError(err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row)
		if err != nil {
			return Dataset{}, &ParseError{Line: line, Err: err}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return Dataset{}, ErrNoData
	}
	return Dataset{records: records}, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) != fieldsPerRow {
		return Record{}, fmt.Errorf("expected %d fields, got %d", fieldsPerRow, len(row))
	}

	minTemp, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Record{}, fmt.Errorf("min temperature %q is not an integer", row[1])
	}
	maxTemp, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return Record{}, fmt.Errorf("max temperature %q is not an integer", row[2])
	}

	rec := Record{
		Date:    strings.TrimSpace(row[0]),
		MinTemp: minTemp,
		MaxTemp: maxTemp,
	}
	if err := validate.Struct(rec); err != nil {
		return Record{}, fmt.Errorf("date is required: %w", err)
	}
	return rec, nil
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("read input: %w", err)
}
