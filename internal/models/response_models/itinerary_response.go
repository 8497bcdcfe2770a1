package response_models

import "travelguide/internal/models/db_models"

type ItineraryResponse struct {
	ID            string                    `json:"id"`
	TripID        string                    `json:"tripId"`
	Version       int                       `json:"version"`
	Status        string                    `json:"status"`
	Items         []db_models.ItineraryItem `json:"items"`
	TotalCost     float64                   `json:"totalCost"`
	AISuggestions *db_models.AISuggestions  `json:"aiSuggestions,omitempty"`
	CreatedAt     string                    `json:"createdAt"`
	UpdatedAt     string                    `json:"updatedAt"`
}

type GenerationStatusResponse struct {
	TripID    string `json:"tripId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
