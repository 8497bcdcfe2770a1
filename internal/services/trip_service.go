package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"travelguide/internal/models/db_models"
	"travelguide/internal/models/request_models"
	"travelguide/internal/models/response_models"
	"travelguide/internal/repositories"
	mem "travelguide/pkg/memcache"
	"travelguide/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*response_models.CreateTripResponse, error)
	ListTrips(ctx context.Context, userID uuid.UUID) ([]response_models.TripResponse, error)
	GetTrip(ctx context.Context, userID, tripID uuid.UUID) (*response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, userID, tripID uuid.UUID) error
}

type TripService struct {
	tripRepo repositories.TripRepository
	parser   TripRequestParser
	queue    GenerationQueue
	tracker  mem.GenerationTracker
	cache    mem.ItineraryCache
	logger   *zap.Logger
}

func NewTripService(
	tripRepo repositories.TripRepository,
	parser TripRequestParser,
	queue GenerationQueue,
	tracker mem.GenerationTracker,
	cache mem.ItineraryCache,
	logger *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo: tripRepo,
		parser:   parser,
		queue:    queue,
		tracker:  tracker,
		cache:    cache,
		logger:   logger,
	}
}

func (s *TripService) CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*response_models.CreateTripResponse, error) {
	text := strings.TrimSpace(req.Request)
	if text == "" {
		return nil, fmt.Errorf("%w: trip request is required", utils.ErrInvalidInput)
	}

	parsed, err := s.parser.ParseTripRequest(ctx, text)
	if err != nil {
		s.logger.Warn("Trip request parsing failed", zap.Error(err))
		parsed = TripFields{}
	}
	s.logger.Debug("Parsed trip request", zap.Stringer("fields", parsed))

	trip := mergeTrip(userID, text, parsed, req.Preferences)
	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if _, err := s.queue.Enqueue(GenerationJob{TripID: trip.ID, UserID: userID}); err != nil {
		s.logger.Warn("Could not queue itinerary generation",
			zap.String("trip_id", trip.ID.String()), zap.Error(err))
		s.tracker.MarkFailed(trip.ID.String(), err)
	}

	destination := trip.PrimaryDestination()
	return &response_models.CreateTripResponse{
		TripID:      trip.ID.String(),
		Message:     creationMessage(destination, trip.DurationDays),
		Suggestions: creationSuggestions(destination),
		Trip:        response_models.BuildTripResponse(trip),
	}, nil
}

func (s *TripService) ListTrips(ctx context.Context, userID uuid.UUID) ([]response_models.TripResponse, error) {
	trips, err := s.tripRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return lo.Map(trips, func(t db_models.Trip, _ int) response_models.TripResponse {
		return response_models.BuildTripResponse(&t)
	}), nil
}

func (s *TripService) GetTrip(ctx context.Context, userID, tripID uuid.UUID) (*response_models.TripResponse, error) {
	trip, err := s.find(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	out := response_models.BuildTripResponse(trip)
	return &out, nil
}

func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	trip, err := s.find(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", utils.ErrInvalidInput)
		}
		trip.Title = title
	}
	if req.Status != nil {
		status := db_models.TripStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown trip status %q", utils.ErrInvalidInput, *req.Status)
		}
		trip.Status = status
	}
	if req.StartDate != nil {
		d, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		trip.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		trip.EndDate = &d
	}
	if trip.StartDate != nil && trip.EndDate != nil {
		if trip.EndDate.Before(*trip.StartDate) {
			return nil, fmt.Errorf("%w: end date is before start date", utils.ErrInvalidInput)
		}
		if req.StartDate != nil || req.EndDate != nil {
			trip.DurationDays = utils.DaysBetween(*trip.StartDate, *trip.EndDate)
		}
	}

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := response_models.BuildTripResponse(trip)
	return &out, nil
}

func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID uuid.UUID) error {
	found, err := s.tripRepo.DeleteWithItineraries(ctx, tripID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !found {
		return utils.ErrTripNotFound
	}
	s.cache.Invalidate(tripID.String())
	return nil
}

func (s *TripService) find(ctx context.Context, userID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.tripRepo.FindByIdAndUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

// mergeTrip combines parsed fields with the caller's stated preferences.
// Parsed values win for travelers and accommodation; the caller's travel style wins.
func mergeTrip(userID uuid.UUID, text string, parsed TripFields, prefs *request_models.TripPreferencesInput) *db_models.Trip {
	if prefs == nil {
		prefs = &request_models.TripPreferencesInput{}
	}

	travelers := lo.CoalesceOrEmpty(parsed.TravelersCount, prefs.TravelersCount, 1)

	accommodation := parsed.AccommodationType
	if !accommodation.Valid() {
		accommodation = db_models.AccommodationType(prefs.AccommodationType)
	}
	if !accommodation.Valid() {
		accommodation = db_models.AccommodationMidRange
	}

	style := db_models.TravelStyle(prefs.TravelStyle)
	if !style.Valid() {
		style = db_models.TravelStyleModerate
	}

	duration := parsed.DurationDays
	if duration < 1 {
		duration = extractDuration(text)
	}
	if duration < 1 && parsed.StartDate != nil && parsed.EndDate != nil && !parsed.EndDate.Before(*parsed.StartDate) {
		duration = utils.DaysBetween(*parsed.StartDate, *parsed.EndDate)
	}
	if duration < 1 {
		duration = defaultDurationDays
	}

	budget := parsed.Budget
	if prefs.Budget != nil {
		budget = &db_models.Budget{Min: prefs.Budget.Min, Max: prefs.Budget.Max, Currency: prefs.Budget.Currency}
	}

	title := "New Trip"
	if len(parsed.Destinations) > 0 {
		title = parsed.Destinations[0].Name + " Trip"
	}

	trip := &db_models.Trip{
		UserID:          userID,
		Title:           title,
		Description:     title,
		OriginalRequest: text,
		Status:          db_models.TripStatusPlanning,
		StartDate:       parsed.StartDate,
		EndDate:         parsed.EndDate,
		DurationDays:    duration,
		Destinations:    parsed.Destinations,
		TravelersCount:  travelers,
		Preferences: datatypes.NewJSONType(db_models.TripPreferences{
			Interests:         normalizeInterests(append(append([]string{}, parsed.Interests...), prefs.Interests...)),
			AccommodationType: accommodation,
			TravelStyle:       style,
			Budget:            budget,
		}),
	}
	if parsed.SpecialRequirements != "" {
		req := parsed.SpecialRequirements
		trip.SpecialRequirements = &req
	}
	if trip.Destinations == nil {
		trip.Destinations = []db_models.Destination{}
	}
	return trip
}

func creationMessage(destination string, days int) string {
	if destination == "" {
		destination = "your destination"
	}
	return fmt.Sprintf("Great! I've analyzed your trip request for %s. "+
		"I'm creating a detailed %d-day itinerary with specific attractions, restaurants, and activities.",
		destination, days)
}

func creationSuggestions(destination string) []string {
	season := "the destination's"
	if destination != "" {
		season = destination + "'s"
	}
	return []string{
		fmt.Sprintf("Consider visiting during %s best season", season),
		"Book accommodations in central locations for easy access to attractions",
		"Try local cuisine at highly-rated restaurants",
	}
}
