// Package series turns the collector's daily aggregates into chart data.
package series

import (
	"sort"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
)

type Range string

const (
	RangeWeek        Range = "7d"
	RangeMonth       Range = "1m"
	RangeThreeMonths Range = "3m"
	RangeYear        Range = "1y"
)

var knownRanges = []Range{RangeWeek, RangeMonth, RangeThreeMonths, RangeYear}

func KnownRanges() []Range {
	return append([]Range(nil), knownRanges...)
}

// Cutoff returns the earliest instant kept for rng, and false when rng has
// no lower bound.
func (rng Range) Cutoff(now time.Time) (time.Time, bool) {
	switch rng {
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeThreeMonths:
		return now.AddDate(0, -3, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// ParseDate reads an ISO date as midnight UTC.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(common.DateLayout, date, time.UTC)
}

// FilterByRange keeps the dates on or after the range cutoff, in input order.
// An unknown range keeps everything; with a known range, dates that do not
// parse are dropped.
func FilterByRange(dates []string, rng Range, now time.Time) []string {
	cutoff, bounded := rng.Cutoff(now)
	if !bounded {
		return append([]string{}, dates...)
	}

	return common.Filter(dates, func(date string) bool {
		t, err := ParseDate(date)
		return err == nil && !t.Before(cutoff)
	})
}

// AverageSeries emits total_<metric>/count for every date with a positive
// count. Days without data are skipped, not zero-filled.
func AverageSeries(records map[string]models.DailyAggregate, dates []string, metric string) []float64 {
	averages := make([]float64, 0, len(dates))
	for _, date := range dates {
		record, ok := records[date]
		if !ok || record.Count <= 0 {
			continue
		}
		averages = append(averages, record.Total(metric)/float64(record.Count))
	}
	return averages
}

// SortedDates returns the record keys in ascending order. ISO dates sort
// lexically.
func SortedDates(records map[string]models.DailyAggregate) []string {
	dates := make([]string, 0, len(records))
	for date := range records {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// BuildHistory assembles the chart view-model for one device.
func BuildHistory(
	deviceID string,
	records map[string]models.DailyAggregate,
	rng Range,
	metrics []string,
	now time.Time,
) models.HistorySeries {
	inRange := FilterByRange(SortedDates(records), rng, now)
	labels := common.Filter(inRange, func(date string) bool {
		return records[date].Count > 0
	})

	history := models.HistorySeries{
		DeviceID: deviceID,
		Range:    string(rng),
		Labels:   labels,
		Series:   make(map[string][]float64, len(metrics)),
	}
	for _, metric := range metrics {
		history.Series[metric] = AverageSeries(records, labels, metric)
	}
	return history
}
