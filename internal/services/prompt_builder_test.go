package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"travelguide/internal/models/db_models"
)

func TestBuildItineraryPrompts_EchoesTripData(t *testing.T) {
	p := BuildItineraryPrompts(ItineraryPromptParams{
		Destination:       "Lisbon",
		Destinations:      []db_models.Destination{{Name: "Lisbon", Country: "Portugal"}},
		DurationDays:      5,
		TravelersCount:    3,
		Interests:         []string{"food", "history"},
		AccommodationType: db_models.AccommodationLuxury,
		TravelStyle:       db_models.TravelStylePacked,
		OriginalRequest:   "5 days in Lisbon for 3 people",
	})

	for _, s := range []string{p.System, p.User} {
		assert.Contains(t, s, "Lisbon")
		assert.Contains(t, s, "EXACTLY 5")
		assert.GreaterOrEqual(t, strings.Count(s, "5 day"), 1)
	}

	assert.Contains(t, p.System, `"days"`)
	for _, field := range []string{"dayNumber", "date", "theme", "items", "time", "type", "title", "description", "location", "duration", "price", "bookingRequired"} {
		assert.Contains(t, p.System, `"`+field+`"`)
	}
	assert.GreaterOrEqual(t, strings.Count(p.System, "EXACTLY 5"), 2)
	assert.GreaterOrEqual(t, strings.Count(p.User, "EXACTLY 5"), 2)

	assert.Contains(t, p.User, "Travelers: 3 people")
	assert.Contains(t, p.User, `["food","history"]`)
	assert.Contains(t, p.User, "Accommodation: luxury")
	assert.Contains(t, p.User, "Travel Style: packed")
	assert.Contains(t, p.User, "5 days in Lisbon for 3 people")
	assert.Contains(t, p.System, "Morning Activity")
	assert.Contains(t, p.System, "6-8")
}

func TestBuildItineraryPrompts_Defaults(t *testing.T) {
	p := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Kyoto"})

	assert.Contains(t, p.User, "Duration: 3 days")
	assert.Contains(t, p.User, "Travelers: 1 people")
	assert.Contains(t, p.User, "Accommodation: mid-range")
	assert.Contains(t, p.User, "Travel Style: moderate")
	assert.Contains(t, p.User, "Start Date: Not specified")
	assert.Contains(t, p.User, "Interests: []")
	assert.Contains(t, p.System, "a different number of days")
}

func TestBuildItineraryPrompts_NeverForbidsRequestedLength(t *testing.T) {
	for _, days := range []int{1, 2, 3, 5, 7} {
		p := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Porto", DurationDays: days})
		forbidden := fmt.Sprintf("not %d days", days)
		for _, s := range []string{p.System, p.User} {
			assert.NotContains(t, strings.ToLower(s), forbidden, "days=%d", days)
			assert.NotContains(t, s, fmt.Sprintf("default to %d days", days), "days=%d", days)
			assert.Contains(t, s, fmt.Sprintf("EXACTLY %d", days))
		}
	}

	three := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Porto", DurationDays: 3})
	assert.Contains(t, three.System, "Not 2 days, not 5 days: EXACTLY 3")
	assert.Contains(t, three.User, "Do NOT return any other number of days!")

	five := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Porto", DurationDays: 5})
	assert.Contains(t, five.System, "Not 3 days, not 2 days: EXACTLY 5")
	assert.Contains(t, five.User, "Do NOT default to 3 days, use 5 days!")
}

func TestBuildItineraryPrompts_Feedback(t *testing.T) {
	without := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Rome", DurationDays: 2})
	assert.NotContains(t, without.User, "asked for these changes")

	with := BuildItineraryPrompts(ItineraryPromptParams{Destination: "Rome", DurationDays: 2, Feedback: "  more museums  "})
	assert.Contains(t, with.User, "asked for these changes")
	assert.Contains(t, with.User, "more museums")
}

func TestBuildTripParsePrompt(t *testing.T) {
	p := BuildTripParsePrompt()
	for _, field := range []string{"destinations", "duration_days", "travelers_count", "interests", "accommodation_preference"} {
		assert.Contains(t, p, field)
	}
}
