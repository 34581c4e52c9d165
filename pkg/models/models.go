package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DeviceStatus string

const (
	DeviceStatusConnected    DeviceStatus = "Connected"
	DeviceStatusDisconnected DeviceStatus = "Disconnected"
)

// Device is one registered turbine. The registry persists the whole list as
// a JSON array, so the json tags are the storage format.
type Device struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Status DeviceStatus `json:"status"`
}

func NewDevice(id string) Device {
	return Device{
		ID:     id,
		Name:   fmt.Sprintf("Turbine %s", id),
		Status: DeviceStatusConnected,
	}
}

// KVEntry backs the local durable string key-value store.
type KVEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

const totalFieldPrefix = "total_"

// DailyAggregate is the collector's running sum and count for one day.
type DailyAggregate struct {
	Count  int64
	Totals map[string]float64
}

func TotalField(metric string) string {
	return totalFieldPrefix + metric
}

func (d *DailyAggregate) Total(metric string) float64 {
	if d.Totals == nil {
		return 0
	}
	return d.Totals[metric]
}

// UnmarshalJSON reads count and every total_<metric> field; other fields in
// the same record (live readings) are ignored.
func (d *DailyAggregate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Count = 0
	d.Totals = map[string]float64{}

	for key, value := range raw {
		switch {
		case key == "count":
			var count float64
			if err := json.Unmarshal(value, &count); err != nil {
				return fmt.Errorf("count: %w", err)
			}
			d.Count = int64(count)
		case strings.HasPrefix(key, totalFieldPrefix):
			var total float64
			if err := json.Unmarshal(value, &total); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			d.Totals[strings.TrimPrefix(key, totalFieldPrefix)] = total
		}
	}

	return nil
}

func (d DailyAggregate) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Totals)+1)
	out["count"] = d.Count
	for metric, total := range d.Totals {
		out[TotalField(metric)] = total
	}
	return json.Marshal(out)
}

// Indicator is one labelled live reading shown on the home screen.
type Indicator struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// HistorySeries is the chart view-model: labels are the in-range dates that
// carry data and every series is aligned with them.
type HistorySeries struct {
	DeviceID string               `json:"device_id"`
	Range    string               `json:"range"`
	Labels   []string             `json:"labels"`
	Series   map[string][]float64 `json:"series"`
}
