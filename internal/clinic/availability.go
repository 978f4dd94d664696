package clinic

import (
	"encoding/json"
	"fmt"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// TimeRange is one bookable window within a day, e.g. 09:00 to 12:30.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability is the structured in-memory form of a doctor's schedule. It is
// serialized to JSON text only at the storage boundary; everything above the
// repository works with the typed value.
type Availability struct {
	Days  []Weekday
	Slots []TimeRange
}

func encodeDays(days []Weekday) (string, error) {
	if len(days) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("encode available days: %w", err)
	}
	return string(b), nil
}

func decodeDays(raw string) ([]Weekday, error) {
	if raw == "" {
		return nil, nil
	}
	var days []Weekday
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("decode available days: %w", err)
	}
	return days, nil
}

func encodeSlots(slots []TimeRange) (string, error) {
	if len(slots) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("encode time slots: %w", err)
	}
	return string(b), nil
}

func decodeSlots(raw string) ([]TimeRange, error) {
	if raw == "" {
		return nil, nil
	}
	var slots []TimeRange
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("decode time slots: %w", err)
	}
	return slots, nil
}
