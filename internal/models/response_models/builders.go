package response_models

import (
	"travelguide/internal/models/db_models"
	"travelguide/pkg/utils"
)

func BuildUserResponse(u *db_models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CreatedAt: utils.FormatUnixRFC3339(u.CreatedAt),
	}
}

func BuildTripResponse(t *db_models.Trip) TripResponse {
	destinations := []db_models.Destination(t.Destinations)
	if destinations == nil {
		destinations = []db_models.Destination{}
	}
	prefs := t.Preferences.Data()
	if prefs.Interests == nil {
		prefs.Interests = []string{}
	}

	return TripResponse{
		ID:                  t.ID.String(),
		UserID:              t.UserID.String(),
		Title:               t.Title,
		Description:         t.Description,
		OriginalRequest:     t.OriginalRequest,
		Status:              string(t.Status),
		StartDate:           utils.FormatDate(t.StartDate),
		EndDate:             utils.FormatDate(t.EndDate),
		DurationDays:        t.DurationDays,
		Destinations:        destinations,
		TravelersCount:      t.TravelersCount,
		Preferences:         prefs,
		SpecialRequirements: t.SpecialRequirements,
		CreatedAt:           utils.FormatUnixRFC3339(t.CreatedAt),
		UpdatedAt:           utils.FormatUnixRFC3339(t.UpdatedAt),
	}
}

func BuildItineraryResponse(it *db_models.Itinerary) *ItineraryResponse {
	items := []db_models.ItineraryItem(it.Items)
	if items == nil {
		items = []db_models.ItineraryItem{}
	}

	out := &ItineraryResponse{
		ID:        it.ID.String(),
		TripID:    it.TripID.String(),
		Version:   it.Version,
		Status:    string(it.Status),
		Items:     items,
		TotalCost: it.TotalCost,
		CreatedAt: utils.FormatUnixRFC3339(it.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(it.UpdatedAt),
	}
	if s := it.AISuggestions.Data(); len(s.Tips) > 0 || len(s.Warnings) > 0 || s.Feedback != "" {
		out.AISuggestions = &s
	}
	return out
}
