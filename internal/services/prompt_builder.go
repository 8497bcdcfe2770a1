package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"travelguide/internal/models/db_models"
)

type ItineraryPromptParams struct {
	Destination       string
	Destinations      []db_models.Destination
	DurationDays      int
	TravelersCount    int
	Interests         []string
	AccommodationType db_models.AccommodationType
	TravelStyle       db_models.TravelStyle
	StartDate         string
	EndDate           string
	OriginalRequest   string
	Feedback          string
}

type PromptPair struct {
	System string
	User   string
}

const itinerarySchema = `{
  "days": [
    {
      "dayNumber": 1,
      "date": "YYYY-MM-DD",
      "theme": "Area or neighbourhood name (e.g. 'Historic Quarter')",
      "items": [
        {
          "time": "08:00",
          "type": "meal",
          "title": "Breakfast at [RESTAURANT NAME]",
          "description": "Detailed description",
          "location": "Full address in the destination city",
          "duration": 60,
          "price": 15,
          "bookingRequired": false
        },
        {
          "time": "09:30",
          "type": "activity",
          "title": "Visit [SPECIFIC ATTRACTION NAME]",
          "description": "Detailed description",
          "location": "Full address in the destination city",
          "duration": 120,
          "price": 25,
          "bookingRequired": true
        }
      ]
    }
  ]
}`

// BuildItineraryPrompts renders the system and user instructions for one generation call.
func BuildItineraryPrompts(p ItineraryPromptParams) PromptPair {
	days := p.DurationDays
	if days < 1 {
		days = defaultDurationDays
	}
	travelers := p.TravelersCount
	if travelers < 1 {
		travelers = 1
	}
	accommodation := p.AccommodationType
	if accommodation == "" {
		accommodation = db_models.AccommodationMidRange
	}
	style := p.TravelStyle
	if style == "" {
		style = db_models.TravelStyleModerate
	}

	wrong := wrongDayCounts(days)
	notDays := lo.Map(wrong, func(n int, _ int) string { return fmt.Sprintf("not %d days", n) })
	notDays[0] = "N" + notDays[0][1:]
	wrongCount := "3"
	if days == 3 {
		wrongCount = "a different number of"
	}
	finalWarning := fmt.Sprintf("Do NOT default to 3 days, use %d days!", days)
	if days == 3 {
		finalWarning = "Do NOT return any other number of days!"
	}

	var sys strings.Builder
	sys.WriteString("You are an expert travel itinerary planner. You MUST respond with ONLY valid JSON. No explanations, no text before or after the JSON.\n\n")
	sys.WriteString("CRITICAL RULES:\n")
	sys.WriteString("1. Respond with ONLY valid JSON, no text before or after it\n")
	fmt.Fprintf(&sys, "2. You MUST use the EXACT destination provided (%s) and never default to another city\n", p.Destination)
	fmt.Fprintf(&sys, "3. YOU MUST generate EXACTLY %d day(s). %s: EXACTLY %d. Any other number of days will be REJECTED\n", days, strings.Join(notDays, ", "), days)
	sys.WriteString("4. NEVER use generic titles like 'Morning Activity', 'Afternoon Exploration', 'Lunch', 'Dinner' or 'Breakfast'\n")
	sys.WriteString("5. ALWAYS use SPECIFIC place names, landmarks, museums, parks and restaurants FROM THE DESTINATION\n")
	sys.WriteString("6. For meals include the restaurant name (e.g. 'Lunch at [Restaurant Name]')\n")
	sys.WriteString("7. For activities include the attraction name (e.g. 'Visit [Museum Name]', 'Explore [Park Name]')\n")
	sys.WriteString("8. GROUP ACTIVITIES BY LOCATION: places in the same neighbourhood belong on the same day\n")
	sys.WriteString("9. MINIMUM 6-8 items per day: breakfast, lunch, dinner and several attractions\n")
	sys.WriteString("10. \"type\" is one of flight, hotel, activity, meal, transportation, free-time; \"price\" is per person, a number or null\n\n")
	sys.WriteString("REQUIRED JSON FORMAT:\n")
	sys.WriteString(itinerarySchema)
	sys.WriteString("\n\n")
	fmt.Fprintf(&sys, "The \"days\" array MUST contain EXACTLY %d element(s), numbered 1 to %d. If you generate %s days the response will be REJECTED.\n\n", days, days, wrongCount)
	sys.WriteString("FORBIDDEN:\n")
	sys.WriteString("- Generic titles such as 'Morning Activity', 'Afternoon Exploration', 'Lunch', 'Dinner'\n")
	sys.WriteString("- Any text before or after the JSON\n")
	sys.WriteString("- Attractions from a different city than the destination\n")
	sys.WriteString("- An empty days array\n")
	fmt.Fprintf(&sys, "- Fewer than %d days\n", days)
	fmt.Fprintf(&sys, "- More than %d days\n\n", days)
	sys.WriteString("Respond with ONLY the JSON object, nothing else.")

	destinationsJSON, _ := json.Marshal(p.Destinations)
	interestsJSON, _ := json.Marshal(nonNilStrings(p.Interests))

	var usr strings.Builder
	usr.WriteString("Create a DETAILED, SPECIFIC itinerary for this trip with REAL locations and attractions.\n\n")
	fmt.Fprintf(&usr, "THE DESTINATION IS: %s\n", p.Destination)
	fmt.Fprintf(&usr, "YOU MUST CREATE AN ITINERARY FOR: %s\n", p.Destination)
	usr.WriteString("Do NOT use any default city, use ONLY the destination provided above.\n\n")
	usr.WriteString("TRIP DETAILS:\n")
	fmt.Fprintf(&usr, "Destination: %s\n", p.Destination)
	fmt.Fprintf(&usr, "All destinations: %s\n", destinationsJSON)
	fmt.Fprintf(&usr, "Duration: %d days\n", days)
	fmt.Fprintf(&usr, "Start Date: %s\n", orDefault(p.StartDate, "Not specified"))
	fmt.Fprintf(&usr, "End Date: %s\n", orDefault(p.EndDate, "Not specified"))
	fmt.Fprintf(&usr, "Travelers: %d people\n", travelers)
	fmt.Fprintf(&usr, "Interests: %s\n", interestsJSON)
	fmt.Fprintf(&usr, "Accommodation: %s\n", accommodation)
	fmt.Fprintf(&usr, "Travel Style: %s\n", style)
	fmt.Fprintf(&usr, "Original Request: %s\n\n", p.OriginalRequest)

	if strings.TrimSpace(p.Feedback) != "" {
		usr.WriteString("The traveller reviewed a previous version and asked for these changes:\n")
		usr.WriteString(strings.TrimSpace(p.Feedback))
		usr.WriteString("\n\n")
	}

	usr.WriteString("CRITICAL INSTRUCTIONS:\n")
	fmt.Fprintf(&usr, "1. Research REAL attractions, museums, parks, restaurants and landmarks in %s\n", p.Destination)
	fmt.Fprintf(&usr, "2. Generate EXACTLY %d day(s), not %d days and not any other number\n", days, wrong[0])
	usr.WriteString("3. Each day needs 6-8 items: breakfast, morning activity, lunch, afternoon activities, dinner, evening activity\n")
	usr.WriteString("4. GROUP BY LOCATION: give each day one area and pick nearby restaurants and attractions\n")
	fmt.Fprintf(&usr, "5. Continue this pattern for all %d days\n\n", days)
	fmt.Fprintf(&usr, "FINAL INSTRUCTION: the \"days\" array MUST have EXACTLY %d element(s). Do NOT return {\"days\":[]}. %s", days, finalWarning)

	return PromptPair{System: sys.String(), User: usr.String()}
}

// BuildTripParsePrompt is the system prompt for turning a free-text request into trip fields.
func BuildTripParsePrompt() string {
	return `You are a travel planning assistant. Parse the user's trip request and extract structured information.

Extract the following details from the request:
- destinations (array of cities/countries)
- start_date (ISO format YYYY-MM-DD if mentioned)
- end_date (ISO format YYYY-MM-DD if mentioned)
- duration_days (number)
- travelers_count (number)
- budget_range (object with min/max)
- interests (array of keywords like 'food', 'culture', 'adventure')
- accommodation_preference (budget/mid-range/luxury)
- special_requirements (any specific needs mentioned)

Respond ONLY with a valid JSON object containing these fields. If a field is not mentioned, use null.

Example response:
{
  "destinations": ["Tokyo"],
  "duration_days": 5,
  "travelers_count": 2,
  "interests": ["food", "culture"],
  "accommodation_preference": "mid-range"
}`
}

// commonDayCounts are the lengths models fall back to when they ignore the requested duration.
var commonDayCounts = []int{3, 2, 5}

// wrongDayCounts lists the common fallback lengths other than the requested one.
func wrongDayCounts(days int) []int {
	return lo.Filter(commonDayCounts, func(n int, _ int) bool { return n != days })
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
