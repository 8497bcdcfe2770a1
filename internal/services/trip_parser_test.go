package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travelguide/internal/models/db_models"
	"travelguide/pkg/utils"
)

func TestPatternTripParser(t *testing.T) {
	cases := []struct {
		text         string
		duration     int
		travelers    int
		destinations []string
	}{
		{"A 4-day trip to Lisbon for 3 people", 4, 3, []string{"Lisbon"}},
		{"I want to go to New York City in June, 2 travellers, 5 days", 5, 2, []string{"New York City"}},
		{"two weeks in Tokyo and Kyoto", 14, 0, []string{"Tokyo"}},
		{"five days at Lake Como", 5, 0, []string{"Lake Como"}},
		{"surprise me", 0, 0, nil},
	}

	p := NewPatternTripParser()
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := p.ParseTripRequest(context.Background(), tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.duration, got.DurationDays)
			assert.Equal(t, tc.travelers, got.TravelersCount)
			names := make([]string, 0, len(got.Destinations))
			for _, d := range got.Destinations {
				names = append(names, d.Name)
			}
			if tc.destinations == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tc.destinations, names)
			}
		})
	}
}

func TestPatternTripParser_DatesAndTier(t *testing.T) {
	got, err := NewPatternTripParser().ParseTripRequest(context.Background(),
		"Luxury escape to Paris from 2025-06-01 to 2025-06-04")
	require.NoError(t, err)

	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2025-06-01", got.StartDate.Format(utils.DateLayout))
	assert.Equal(t, "2025-06-04", got.EndDate.Format(utils.DateLayout))
	assert.Equal(t, db_models.AccommodationLuxury, got.AccommodationType)
}

func TestLLMTripParser(t *testing.T) {
	llm := &fakeLLM{replies: []string{"```json\n" + `{
		"destinations": ["Lisbon", {"name": "Porto", "country": "Portugal"}],
		"duration_days": "4",
		"travelers_count": 2,
		"interests": ["Food", "food", " history "],
		"accommodation_preference": "luxury",
		"start_date": "2025-06-01",
		"end_date": null,
		"budget_range": {"min": 1000, "max": 2000},
		"special_requirements": "wheelchair access",
	}` + "\n```"}}

	p := NewLLMTripParser(llm, LLMSettings{Model: "m", ParseMaxTokens: 1000, Temperature: 0.3})
	got, err := p.ParseTripRequest(context.Background(), "Lisbon and Porto")
	require.NoError(t, err)

	require.Len(t, got.Destinations, 2)
	assert.Equal(t, "Lisbon", got.Destinations[0].Name)
	assert.Equal(t, "Portugal", got.Destinations[1].Country)
	assert.Equal(t, 4, got.DurationDays)
	assert.Equal(t, 2, got.TravelersCount)
	assert.Equal(t, []string{"food", "history"}, got.Interests)
	assert.Equal(t, db_models.AccommodationLuxury, got.AccommodationType)
	require.NotNil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	require.NotNil(t, got.Budget)
	assert.Equal(t, 2000.0, got.Budget.Max)
	assert.Equal(t, "wheelchair access", got.SpecialRequirements)

	require.Len(t, llm.requests, 1)
	assert.Equal(t, 1000, llm.requests[0].MaxTokens)
	assert.Equal(t, "Lisbon and Porto", llm.requests[0].User)
}

func TestLLMTripParser_Malformed(t *testing.T) {
	p := NewLLMTripParser(&fakeLLM{replies: []string{"sorry, I can't"}}, LLMSettings{})
	_, err := p.ParseTripRequest(context.Background(), "anything")
	assert.ErrorIs(t, err, utils.ErrMalformedResponse)
}

func TestFallbackTripParser_PrimaryFails(t *testing.T) {
	f := &FallbackTripParser{
		Primary:   NewLLMTripParser(&fakeLLM{err: utils.ErrUpstreamUnavailable}, LLMSettings{}),
		Secondary: NewPatternTripParser(),
		Logger:    zap.NewNop(),
	}

	got, err := f.ParseTripRequest(context.Background(), "3 days in Rome for 2 people")
	require.NoError(t, err)
	assert.Equal(t, 3, got.DurationDays)
	assert.Equal(t, 2, got.TravelersCount)
	require.Len(t, got.Destinations, 1)
	assert.Equal(t, "Rome", got.Destinations[0].Name)
}

func TestFallbackTripParser_FillsMissingDuration(t *testing.T) {
	f := &FallbackTripParser{
		Primary:   NewLLMTripParser(&fakeLLM{replies: []string{`{"destinations":["Rome"],"duration_days":null}`}}, LLMSettings{}),
		Secondary: NewPatternTripParser(),
		Logger:    zap.NewNop(),
	}

	got, err := f.ParseTripRequest(context.Background(), "6 days in Rome")
	require.NoError(t, err)
	assert.Equal(t, 6, got.DurationDays)
	assert.Equal(t, "Rome", got.Destinations[0].Name)
}

func TestFallbackTripParser_KeepsPrimaryValues(t *testing.T) {
	f := &FallbackTripParser{
		Primary:   NewLLMTripParser(&fakeLLM{replies: []string{`{"destinations":["Roma"],"duration_days":2,"travelers_count":4}`}}, LLMSettings{}),
		Secondary: NewPatternTripParser(),
		Logger:    zap.NewNop(),
	}

	got, err := f.ParseTripRequest(context.Background(), "6 days in Rome for 1 person")
	require.NoError(t, err)
	assert.Equal(t, 2, got.DurationDays)
	assert.Equal(t, 4, got.TravelersCount)
	assert.Equal(t, "Roma", got.Destinations[0].Name)
}
