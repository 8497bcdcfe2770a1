package request_models

type BudgetInput struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type TripPreferencesInput struct {
	TravelersCount    int          `json:"travelersCount" binding:"omitempty,min=1"`
	Interests         []string     `json:"interests"`
	AccommodationType string       `json:"accommodationType" binding:"omitempty,oneof=budget mid-range luxury"`
	TravelStyle       string       `json:"travelStyle" binding:"omitempty,oneof=relaxed moderate packed"`
	Budget            *BudgetInput `json:"budget"`
}

type CreateTripRequest struct {
	Request     string                `json:"request" binding:"required"`
	Preferences *TripPreferencesInput `json:"preferences"`
}

// UpdateTripRequest dates use YYYY-MM-DD.
type UpdateTripRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=200"`
	Status    *string `json:"status" binding:"omitempty,oneof=planning booked completed cancelled"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}
