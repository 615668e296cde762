package weather

import (
	"fmt"
	"strings"
)

// Summary renders the multi-day overview: extremes with their dates and the
// average low and high. Extremes and means are computed in Fahrenheit and
// converted afterwards.
func Summary(d Dataset) (string, error) {
	if d.Len() == 0 {
		return "", ErrEmptyDataset
	}

	mins := d.MinTemps()
	maxs := d.MaxTemps()

	lowest, _ := FindMin(mins)
	highest, _ := FindMax(maxs)

	lowestDate, err := FormatDate(d.At(lowest.Index).Date)
	if err != nil {
		return "", err
	}
	highestDate, err := FormatDate(d.At(highest.Index).Date)
	if err != nil {
		return "", err
	}

	avgLow, err := Mean(mins)
	if err != nil {
		return "", err
	}
	avgHigh, err := Mean(maxs)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d Day Overview\n", d.Len())
	fmt.Fprintf(&b, "  The lowest temperature will be %s, and will occur on %s.\n", celsiusLabel(lowest.Value), lowestDate)
	fmt.Fprintf(&b, "  The highest temperature will be %s, and will occur on %s.\n", celsiusLabel(highest.Value), highestDate)
	fmt.Fprintf(&b, "  The average low this week is %s.\n", celsiusLabel(avgLow))
	fmt.Fprintf(&b, "  The average high this week is %s.\n", celsiusLabel(avgHigh))
	return b.String(), nil
}

// DailySummary renders one block per day in dataset order, each followed by a blank line.
func DailySummary(d Dataset) (string, error) {
	var b strings.Builder
	for _, rec := range d.records {
		date, err := FormatDate(rec.Date)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "---- %s ----\n", date)
		fmt.Fprintf(&b, "  Minimum Temperature: %s\n", celsiusLabel(float64(rec.MinTemp)))
		fmt.Fprintf(&b, "  Maximum Temperature: %s\n", celsiusLabel(float64(rec.MaxTemp)))
		b.WriteString("\n")
	}
	return b.String(), nil
}
