package response_models

import "travelguide/internal/models/db_models"

type TripResponse struct {
	ID                  string                    `json:"id"`
	UserID              string                    `json:"userId"`
	Title               string                    `json:"title"`
	Description         string                    `json:"description,omitempty"`
	OriginalRequest     string                    `json:"originalRequest"`
	Status              string                    `json:"status"`
	StartDate           *string                   `json:"startDate,omitempty"`
	EndDate             *string                   `json:"endDate,omitempty"`
	DurationDays        int                       `json:"durationDays"`
	Destinations        []db_models.Destination   `json:"destinations"`
	TravelersCount      int                       `json:"travelersCount"`
	Preferences         db_models.TripPreferences `json:"preferences"`
	SpecialRequirements *string                   `json:"specialRequirements,omitempty"`
	CreatedAt           string                    `json:"createdAt"`
	UpdatedAt           string                    `json:"updatedAt"`
}

type CreateTripResponse struct {
	TripID      string       `json:"tripId"`
	Message     string       `json:"message"`
	Suggestions []string     `json:"suggestions"`
	Trip        TripResponse `json:"trip"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
