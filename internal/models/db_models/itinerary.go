package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ItineraryItem struct {
	ID              string         `json:"id"`
	DayNumber       int            `json:"dayNumber"`
	Time            string         `json:"time"`
	Type            ItemType       `json:"type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Location        *string        `json:"location"`
	Duration        *int           `json:"duration"`
	Price           *float64       `json:"price"`
	BookingRequired bool           `json:"bookingRequired"`
	BookingStatus   *BookingStatus `json:"bookingStatus"`
}

// AISuggestions holds free-form tips plus the quality warnings recorded while generating.
type AISuggestions struct {
	Tips     map[string]string `json:"tips,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Feedback string            `json:"feedback,omitempty"`
}

type Itinerary struct {
	BaseModel
	TripID        uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_itineraries_trip_version"`
	Version       int                                `gorm:"not null;uniqueIndex:idx_itineraries_trip_version"`
	Status        ItineraryStatus                    `gorm:"type:varchar(20);default:draft"`
	Items         datatypes.JSONSlice[ItineraryItem] `gorm:"type:jsonb"`
	TotalCost     float64                            `gorm:"column:total_cost"`
	AISuggestions datatypes.JSONType[AISuggestions]  `gorm:"column:ai_suggestions;type:jsonb"`
}

func (Itinerary) TableName() string { return "itineraries" }

// TotalFor sums item prices (null counts as 0) multiplied by travelers.
func TotalFor(items []ItineraryItem, travelers int) float64 {
	var sum float64
	for _, it := range items {
		if it.Price != nil {
			sum += *it.Price
		}
	}
	return sum * float64(travelers)
}
