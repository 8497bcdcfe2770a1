package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"travelguide/internal/models/db_models"
	"travelguide/pkg/utils"
)

// TripFields is what a free-text trip request resolves to. Zero values mean "not mentioned".
type TripFields struct {
	Destinations        []db_models.Destination
	StartDate           *time.Time
	EndDate             *time.Time
	DurationDays        int
	TravelersCount      int
	Budget              *db_models.Budget
	Interests           []string
	AccommodationType   db_models.AccommodationType
	SpecialRequirements string
}

type TripRequestParser interface {
	ParseTripRequest(ctx context.Context, text string) (TripFields, error)
}

// LLMTripParser asks the model to extract trip fields.
type LLMTripParser struct {
	client   utils.LLMClientInterface
	settings LLMSettings
}

func NewLLMTripParser(client utils.LLMClientInterface, settings LLMSettings) *LLMTripParser {
	return &LLMTripParser{client: client, settings: settings}
}

type parsedTripJSON struct {
	Destinations []db_models.Destination `json:"destinations"`
	StartDate    flexString              `json:"start_date"`
	EndDate      flexString              `json:"end_date"`
	DurationDays flexNumber              `json:"duration_days"`
	Travelers    flexNumber              `json:"travelers_count"`
	Budget       *struct {
		Min flexNumber `json:"min"`
		Max flexNumber `json:"max"`
	} `json:"budget_range"`
	Interests           []string   `json:"interests"`
	Accommodation       flexString `json:"accommodation_preference"`
	SpecialRequirements flexString `json:"special_requirements"`
}

func (p *LLMTripParser) ParseTripRequest(ctx context.Context, text string) (TripFields, error) {
	content, err := p.client.Complete(ctx, utils.ChatRequest{
		System:      BuildTripParsePrompt(),
		User:        text,
		Model:       p.settings.Model,
		Temperature: p.settings.Temperature,
		MaxTokens:   p.settings.ParseMaxTokens,
	})
	if err != nil {
		return TripFields{}, err
	}

	var parsed parsedTripJSON
	if err := utils.DecodeJSON(content, &parsed); err != nil {
		return TripFields{}, err
	}

	fields := TripFields{
		Destinations: lo.Filter(parsed.Destinations, func(d db_models.Destination, _ int) bool {
			return d.Name != ""
		}),
		Interests:           normalizeInterests(parsed.Interests),
		SpecialRequirements: parsed.SpecialRequirements.String(),
	}
	if n, ok := parsed.DurationDays.Int(); ok && n > 0 {
		fields.DurationDays = n
	}
	if n, ok := parsed.Travelers.Int(); ok && n > 0 {
		fields.TravelersCount = n
	}
	if a := db_models.AccommodationType(strings.ToLower(parsed.Accommodation.String())); a.Valid() {
		fields.AccommodationType = a
	}
	if d, err := utils.ParseDate(parsed.StartDate.String()); err == nil {
		fields.StartDate = &d
	}
	if d, err := utils.ParseDate(parsed.EndDate.String()); err == nil {
		fields.EndDate = &d
	}
	if parsed.Budget != nil && parsed.Budget.Min.Value != nil && parsed.Budget.Max.Value != nil {
		fields.Budget = &db_models.Budget{Min: *parsed.Budget.Min.Value, Max: *parsed.Budget.Max.Value}
	}

	return fields, nil
}

var (
	durationRe    = regexp.MustCompile(`(?i)(\d+)\s*-?\s*days?\b`)
	weeksRe       = regexp.MustCompile(`(?i)\b(\d+|a|one|two|three|four)\s*-?\s*weeks?\b`)
	wordDaysRe    = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen)\s*-?\s*days?\b`)
	travelersRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:person|persons|people|travell?ers?|adults?|guests?)\b`)
	destinationRe = regexp.MustCompile(`\b(?i:to|in|at)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
)

var writtenNumbers = map[string]int{
	"a": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
	"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
}

// Capitalised words after "in"/"at" that are not places.
var calendarWords = []string{
	"january", "february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december", "spring", "summer", "autumn", "winter",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// PatternTripParser extracts what it can with regular expressions. It never fails.
type PatternTripParser struct{}

func NewPatternTripParser() *PatternTripParser { return &PatternTripParser{} }

func (PatternTripParser) ParseTripRequest(_ context.Context, text string) (TripFields, error) {
	var fields TripFields

	fields.DurationDays = extractDuration(text)

	if m := travelersRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			fields.TravelersCount = n
		}
	}

	names := lo.Map(destinationRe.FindAllStringSubmatch(text, -1), func(m []string, _ int) string {
		return m[1]
	})
	names = lo.Reject(lo.Uniq(names), func(name string, _ int) bool {
		return lo.Contains(calendarWords, strings.ToLower(name))
	})
	fields.Destinations = lo.Map(names, func(name string, _ int) db_models.Destination {
		return db_models.Destination{Name: name}
	})

	dates := lo.FilterMap(isoDateRe.FindAllString(text, 2), func(s string, _ int) (time.Time, bool) {
		d, err := utils.ParseDate(s)
		return d, err == nil
	})
	if len(dates) > 0 {
		fields.StartDate = &dates[0]
	}
	if len(dates) > 1 {
		fields.EndDate = &dates[1]
	}

	lower := strings.ToLower(text)
	for _, a := range []db_models.AccommodationType{db_models.AccommodationLuxury, db_models.AccommodationBudget, db_models.AccommodationMidRange} {
		if strings.Contains(lower, string(a)) {
			fields.AccommodationType = a
			break
		}
	}

	return fields, nil
}

func extractDuration(text string) int {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if m := wordDaysRe.FindStringSubmatch(text); m != nil {
		return writtenNumbers[strings.ToLower(m[1])]
	}
	if m := weeksRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			n = writtenNumbers[strings.ToLower(m[1])]
		}
		if n > 0 {
			return n * 7
		}
	}
	return 0
}

// FallbackTripParser tries Primary and fills anything it missed from Secondary.
type FallbackTripParser struct {
	Primary   TripRequestParser
	Secondary TripRequestParser
	Logger    *zap.Logger
}

func (f *FallbackTripParser) ParseTripRequest(ctx context.Context, text string) (TripFields, error) {
	backup, err := f.Secondary.ParseTripRequest(ctx, text)
	if err != nil {
		f.Logger.Warn("Secondary trip parser failed", zap.Error(err))
		backup = TripFields{}
	}

	fields, err := f.Primary.ParseTripRequest(ctx, text)
	if err != nil {
		f.Logger.Warn("Primary trip parser failed, using pattern extraction", zap.Error(err))
		return backup, nil
	}

	if fields.DurationDays < 1 {
		fields.DurationDays = backup.DurationDays
	}
	if fields.TravelersCount < 1 {
		fields.TravelersCount = backup.TravelersCount
	}
	if len(fields.Destinations) == 0 {
		fields.Destinations = backup.Destinations
	}
	if fields.StartDate == nil {
		fields.StartDate = backup.StartDate
	}
	if fields.EndDate == nil {
		fields.EndDate = backup.EndDate
	}
	return fields, nil
}

func normalizeInterests(in []string) []string {
	cleaned := lo.FilterMap(in, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	return lo.Uniq(cleaned)
}

func (t TripFields) String() string {
	return fmt.Sprintf("destinations=%d duration=%d travelers=%d", len(t.Destinations), t.DurationDays, t.TravelersCount)
}
