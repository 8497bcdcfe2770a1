package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelguide/pkg/utils"
)

func TestValidateItinerary_StructureErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"missing days", `{"plan":[]}`, utils.ErrInvalidStructure},
		{"days not array", `{"days":{"dayNumber":1}}`, utils.ErrInvalidStructure},
		{"days null", `{"days":null}`, utils.ErrInvalidStructure},
		{"not an object", `[1,2]`, utils.ErrInvalidStructure},
		{"empty days", `{"days":[]}`, utils.ErrEmptyItinerary},
		{"model error", `{"error":"cannot plan this"}`, utils.ErrAIReportedError},
		{"day without items", `{"days":[{"dayNumber":1,"items":[]}]}`, utils.ErrInvalidStructure},
		{"items not array", `{"days":[{"dayNumber":1,"items":"lots"}]}`, utils.ErrInvalidStructure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateItinerary(tc.raw, 1)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateItinerary_DurationMismatch(t *testing.T) {
	raw := `{"days":[
		{"dayNumber":1,"items":[{"title":"Visit A"}]},
		{"dayNumber":2,"items":[{"title":"Visit B"}]},
		{"dayNumber":3,"items":[{"title":"Visit C"}]}]}`

	_, err := ValidateItinerary(raw, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrDurationMismatch)

	var mismatch *utils.DurationMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 5, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Actual)
}

func TestValidateItinerary_DayNumbers(t *testing.T) {
	t.Run("missing numbers take their position", func(t *testing.T) {
		v, err := ValidateItinerary(`{"days":[{"items":[{"title":"Visit A"}]},{"dayNumber":"2","items":[{"title":"Visit B"}]}]}`, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, v.Days[0].DayNumber)
		assert.Equal(t, 2, v.Days[1].DayNumber)
	})

	t.Run("days are ordered by number", func(t *testing.T) {
		v, err := ValidateItinerary(`{"days":[
			{"dayNumber":3,"items":[{"title":"Visit C"}]},
			{"dayNumber":1,"items":[{"title":"Lunch"}]},
			{"dayNumber":2,"items":[{"title":"Dinner"}]}]}`, 3)
		require.NoError(t, err)
		require.Len(t, v.Days, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{v.Days[0].DayNumber, v.Days[1].DayNumber, v.Days[2].DayNumber})
		assert.Equal(t, "Visit C", v.Days[2].Items[0].Title.String())
		require.Len(t, v.Warnings, 2)
		assert.Equal(t, 1, v.Warnings[0].DayNumber)
		assert.Equal(t, 2, v.Warnings[1].DayNumber)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := ValidateItinerary(`{"days":[{"dayNumber":1,"items":[{"title":"x"}]},{"dayNumber":1,"items":[{"title":"y"}]}]}`, 2)
		assert.ErrorIs(t, err, utils.ErrInvalidStructure)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ValidateItinerary(`{"days":[{"dayNumber":1,"items":[{"title":"x"}]},{"dayNumber":7,"items":[{"title":"y"}]}]}`, 2)
		assert.ErrorIs(t, err, utils.ErrInvalidStructure)
	})
}

func TestValidateItinerary_QualityWarnings(t *testing.T) {
	raw := `{"days":[{"dayNumber":1,"items":[
		{"title":"Lunch"},
		{"title":"  Morning Activity "},
		{"title":"Lunch at Time Out Market"},
		{"title":"Visit Belem Tower"},
		{"description":"no title at all"},
		{"title":"Dinner party"}
	]}]}`

	v, err := ValidateItinerary(raw, 1)
	require.NoError(t, err)
	require.Len(t, v.Warnings, 3)
	assert.Equal(t, "Lunch", v.Warnings[0].Title)
	assert.Equal(t, "Morning Activity", v.Warnings[1].Title)
	assert.Equal(t, "(no title)", v.Warnings[2].Title)
	assert.Equal(t, 1, v.Warnings[0].DayNumber)
}

func TestValidateItinerary_FlexibleFieldTypes(t *testing.T) {
	raw := `{"days":[{"dayNumber":1.0,"date":"2025-06-01","theme":"Alfama","items":[
		{"time":"8:30","title":"Visit Castle","price":"12.5","duration":"90","bookingRequired":"true"},
		{"time":"10:00","title":"Explore Alfama","price":"free","duration":null,"bookingRequired":false}
	]}]}`

	v, err := ValidateItinerary(raw, 1)
	require.NoError(t, err)
	items := v.Days[0].Items
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Price.Value)
	assert.InDelta(t, 12.5, *items[0].Price.Value, 0.0001)
	d, ok := items[0].Duration.Int()
	assert.True(t, ok)
	assert.Equal(t, 90, d)
	assert.True(t, *items[0].BookingRequired.Value)

	assert.Nil(t, items[1].Price.Value)
	assert.Equal(t, "Alfama", v.Days[0].Theme)
	assert.Equal(t, "2025-06-01", v.Days[0].Date)
}
