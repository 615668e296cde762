package weather

import (
	"time"
)

// DegreeSymbol is appended to every rendered temperature.
const DegreeSymbol = "°C"

// Record is one day of the input: an ISO date with its low and high in Fahrenheit.
type Record struct {
	Date    string `json:"date" validate:"required"`
	MinTemp int    `json:"minTempF"`
	MaxTemp int    `json:"maxTempF"`
}

// Dataset is an ordered, read-only sequence of records in file order.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []Record) Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return Dataset{records: cp}
}

// Len returns the number of days in the dataset.
func (d Dataset) Len() int {
	return len(d.records)
}

// At returns the record at position i.
func (d Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of the records.
func (d Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Dates returns the date column.
func (d Dataset) Dates() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Date
	}
	return out
}

// MinTemps returns the daily low column in Fahrenheit.
func (d Dataset) MinTemps() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = float64(r.MinTemp)
	}
	return out
}

// MaxTemps returns the daily high column in Fahrenheit.
func (d Dataset) MaxTemps() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = float64(r.MaxTemp)
	}
	return out
}

// Snapshot is a dataset as loaded from a source at a point in time.
type Snapshot struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"` // always UTC
	Records  []Record  `json:"records"`
}

// Dataset rebuilds the read-only view of the snapshot's records.
func (s Snapshot) Dataset() Dataset {
	return NewDataset(s.Records)
}
