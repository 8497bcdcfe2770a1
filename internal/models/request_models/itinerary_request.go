package request_models

type RegenerateItineraryRequest struct {
	Feedback string `json:"feedback" binding:"max=2000"`
}

// UpdateItineraryItemRequest only touches the fields that are present.
type UpdateItineraryItemRequest struct {
	Time            *string  `json:"time"`
	Type            *string  `json:"type" binding:"omitempty,oneof=flight hotel activity meal transportation free-time"`
	Title           *string  `json:"title" binding:"omitempty,min=1"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
	Duration        *int     `json:"duration" binding:"omitempty,min=0"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	BookingRequired *bool    `json:"bookingRequired"`
	BookingStatus   *string  `json:"bookingStatus" binding:"omitempty,oneof=pending booked confirmed"`
}
