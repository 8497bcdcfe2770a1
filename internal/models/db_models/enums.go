package db_models

import "github.com/samber/lo"

type TripStatus string

const (
	TripStatusPlanning  TripStatus = "planning"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

func (s TripStatus) Valid() bool {
	return lo.Contains([]TripStatus{TripStatusPlanning, TripStatusBooked, TripStatusCompleted, TripStatusCancelled}, s)
}

type ItineraryStatus string

const (
	ItineraryStatusDraft     ItineraryStatus = "draft"
	ItineraryStatusConfirmed ItineraryStatus = "confirmed"
	ItineraryStatusModified  ItineraryStatus = "modified"
)

type ItemType string

const (
	ItemTypeFlight         ItemType = "flight"
	ItemTypeHotel          ItemType = "hotel"
	ItemTypeActivity       ItemType = "activity"
	ItemTypeMeal           ItemType = "meal"
	ItemTypeTransportation ItemType = "transportation"
	ItemTypeFreeTime       ItemType = "free-time"
)

var itemTypes = []ItemType{
	ItemTypeFlight, ItemTypeHotel, ItemTypeActivity,
	ItemTypeMeal, ItemTypeTransportation, ItemTypeFreeTime,
}

func (t ItemType) Valid() bool { return lo.Contains(itemTypes, t) }

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

func (s BookingStatus) Valid() bool {
	return lo.Contains([]BookingStatus{BookingStatusPending, BookingStatusBooked, BookingStatusConfirmed}, s)
}

type AccommodationType string

const (
	AccommodationBudget   AccommodationType = "budget"
	AccommodationMidRange AccommodationType = "mid-range"
	AccommodationLuxury   AccommodationType = "luxury"
)

func (a AccommodationType) Valid() bool {
	return lo.Contains([]AccommodationType{AccommodationBudget, AccommodationMidRange, AccommodationLuxury}, a)
}

type TravelStyle string

const (
	TravelStyleRelaxed  TravelStyle = "relaxed"
	TravelStyleModerate TravelStyle = "moderate"
	TravelStylePacked   TravelStyle = "packed"
)

func (s TravelStyle) Valid() bool {
	return lo.Contains([]TravelStyle{TravelStyleRelaxed, TravelStyleModerate, TravelStylePacked}, s)
}
