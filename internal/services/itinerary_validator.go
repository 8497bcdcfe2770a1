package services

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"travelguide/pkg/utils"
)

// flexNumber accepts JSON numbers, numeric strings and null. Anything else reads as absent.
type flexNumber struct {
	Value *float64
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	n.Value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.Value = &f
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			n.Value = &parsed
		}
	}
	return nil
}

func (n flexNumber) Int() (int, bool) {
	if n.Value == nil {
		return 0, false
	}
	return int(*n.Value), true
}

// flexBool accepts booleans and "true"/"false" strings.
type flexBool struct {
	Value *bool
}

func (v *flexBool) UnmarshalJSON(b []byte) error {
	v.Value = nil
	var parsed bool
	if err := json.Unmarshal(b, &parsed); err == nil {
		v.Value = &parsed
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			v.Value = &parsed
		}
	}
	return nil
}

// flexString accepts strings, numbers and null.
type flexString struct {
	Value *string
}

func (v *flexString) UnmarshalJSON(b []byte) error {
	v.Value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.Value = &s
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		s = num.String()
		v.Value = &s
	}
	return nil
}

func (v flexString) String() string {
	if v.Value == nil {
		return ""
	}
	return strings.TrimSpace(*v.Value)
}

type DraftItem struct {
	Time            flexString `json:"time"`
	Type            flexString `json:"type"`
	Title           flexString `json:"title"`
	Description     flexString `json:"description"`
	Location        flexString `json:"location"`
	Duration        flexNumber `json:"duration"`
	Price           flexNumber `json:"price"`
	BookingRequired flexBool   `json:"bookingRequired"`
}

type DraftDay struct {
	DayNumber int
	Date      string
	Theme     string
	Items     []DraftItem
}

type draftDayJSON struct {
	DayNumber flexNumber      `json:"dayNumber"`
	Date      flexString      `json:"date"`
	Theme     flexString      `json:"theme"`
	Items     json.RawMessage `json:"items"`
}

type QualityWarning struct {
	DayNumber int
	Title     string
}

func (w QualityWarning) String() string {
	return fmt.Sprintf("day %d: generic title %q", w.DayNumber, w.Title)
}

type ValidatedItinerary struct {
	Days     []DraftDay
	Warnings []QualityWarning
}

var genericTitles = []string{"morning activity", "afternoon exploration", "lunch", "dinner", "breakfast"}

var locationMarkers = []string{" at ", "visit ", "explore "}

// ValidateItinerary checks an extracted LLM reply against the requested number of days.
func ValidateItinerary(raw string, expectedDays int) (*ValidatedItinerary, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", utils.ErrInvalidStructure)
	}

	if msg, ok := top["error"]; ok && string(bytes.TrimSpace(msg)) != "null" {
		return nil, fmt.Errorf("%w: %s", utils.ErrAIReportedError, strings.Trim(string(msg), `"`))
	}

	daysRaw, ok := top["days"]
	if !ok {
		return nil, fmt.Errorf("%w: missing days array", utils.ErrInvalidStructure)
	}
	var days []draftDayJSON
	if err := json.Unmarshal(daysRaw, &days); err != nil || days == nil {
		return nil, fmt.Errorf("%w: days is not an array", utils.ErrInvalidStructure)
	}

	if len(days) == 0 {
		return nil, utils.ErrEmptyItinerary
	}
	if len(days) != expectedDays {
		return nil, &utils.DurationMismatchError{Expected: expectedDays, Actual: len(days)}
	}

	out := &ValidatedItinerary{Days: make([]DraftDay, 0, len(days))}
	seen := make(map[int]bool, len(days))

	for i, d := range days {
		number, ok := d.DayNumber.Int()
		if !ok || number == 0 {
			number = i + 1
		}
		if number < 1 || number > expectedDays {
			return nil, fmt.Errorf("%w: day number %d outside 1..%d", utils.ErrInvalidStructure, number, expectedDays)
		}
		if seen[number] {
			return nil, fmt.Errorf("%w: day number %d appears twice", utils.ErrInvalidStructure, number)
		}
		seen[number] = true

		var items []DraftItem
		if len(d.Items) > 0 {
			if err := json.Unmarshal(d.Items, &items); err != nil {
				return nil, fmt.Errorf("%w: items of day %d are not an array", utils.ErrInvalidStructure, number)
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: day %d has no items", utils.ErrInvalidStructure, number)
		}

		for _, item := range items {
			if w, bad := checkTitle(number, item.Title); bad {
				out.Warnings = append(out.Warnings, w)
			}
		}

		out.Days = append(out.Days, DraftDay{
			DayNumber: number,
			Date:      d.Date.String(),
			Theme:     d.Theme.String(),
			Items:     items,
		})
	}

	// Item ids are assigned in day order, so the slice must follow day numbers.
	slices.SortStableFunc(out.Days, func(a, b DraftDay) int { return cmp.Compare(a.DayNumber, b.DayNumber) })
	slices.SortStableFunc(out.Warnings, func(a, b QualityWarning) int { return cmp.Compare(a.DayNumber, b.DayNumber) })

	return out, nil
}

func checkTitle(day int, title flexString) (QualityWarning, bool) {
	t := title.String()
	if t == "" {
		return QualityWarning{DayNumber: day, Title: "(no title)"}, true
	}

	normalized := strings.ToLower(t)
	isGeneric := lo.Contains(genericTitles, normalized)
	hasLocation := lo.SomeBy(locationMarkers, func(m string) bool {
		return strings.Contains(normalized, m)
	})
	if isGeneric && !hasLocation {
		return QualityWarning{DayNumber: day, Title: t}, true
	}
	return QualityWarning{}, false
}
