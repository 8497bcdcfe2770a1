package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	"travelguide/internal/models/db_models"
)

const (
	defaultItemTime     = "09:00"
	defaultItemTitle    = "Activity"
	defaultItemDuration = 120
)

type AssembleParams struct {
	TripID         uuid.UUID
	TravelersCount int
	Feedback       string
}

// AssembleItinerary flattens validated days into items with ids and defaults applied.
// The returned itinerary is a version 1 draft; the store assigns the real version.
func AssembleItinerary(v *ValidatedItinerary, p AssembleParams) *db_models.Itinerary {
	travelers := p.TravelersCount
	if travelers < 1 {
		travelers = 1
	}

	seq := 0
	items := lo.FlatMap(v.Days, func(day DraftDay, _ int) []db_models.ItineraryItem {
		return lo.Map(day.Items, func(raw DraftItem, _ int) db_models.ItineraryItem {
			seq++
			return assembleItem(raw, day.DayNumber, fmt.Sprintf("item-%s-%d", p.TripID, seq))
		})
	})

	suggestions := db_models.AISuggestions{
		Warnings: lo.Map(v.Warnings, func(w QualityWarning, _ int) string { return w.String() }),
		Feedback: strings.TrimSpace(p.Feedback),
	}
	if themes := dayThemes(v.Days); len(themes) > 0 {
		suggestions.Tips = themes
	}

	return &db_models.Itinerary{
		TripID:        p.TripID,
		Version:       1,
		Status:        db_models.ItineraryStatusDraft,
		Items:         items,
		TotalCost:     db_models.TotalFor(items, travelers),
		AISuggestions: datatypes.NewJSONType(suggestions),
	}
}

func assembleItem(raw DraftItem, dayNumber int, id string) db_models.ItineraryItem {
	item := db_models.ItineraryItem{
		ID:              id,
		DayNumber:       dayNumber,
		Time:            normalizeTime(raw.Time.String()),
		Type:            db_models.ItemTypeActivity,
		Title:           raw.Title.String(),
		Description:     raw.Description.String(),
		BookingRequired: raw.BookingRequired.Value != nil && *raw.BookingRequired.Value,
	}

	if t := db_models.ItemType(strings.ToLower(raw.Type.String())); t.Valid() {
		item.Type = t
	}
	if item.Title == "" {
		item.Title = defaultItemTitle
	}
	if loc := raw.Location.String(); loc != "" {
		item.Location = &loc
	}

	duration := defaultItemDuration
	if d, ok := raw.Duration.Int(); ok && d > 0 {
		duration = d
	}
	item.Duration = &duration

	if raw.Price.Value != nil && *raw.Price.Value >= 0 {
		price := *raw.Price.Value
		item.Price = &price
	}

	if item.BookingRequired {
		status := db_models.BookingStatusPending
		item.BookingStatus = &status
	}

	return item
}

// itemTimeLayouts are the clock formats models return; all are stored as HH:MM.
var itemTimeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM"}

func normalizeTime(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultItemTime
	}
	for _, layout := range itemTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return defaultItemTime
}

func dayThemes(days []DraftDay) map[string]string {
	themes := make(map[string]string)
	for _, d := range days {
		if d.Theme != "" {
			themes[fmt.Sprintf("day%d", d.DayNumber)] = d.Theme
		}
	}
	return themes
}
