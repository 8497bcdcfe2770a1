package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travelguide/internal/models/db_models"
	"travelguide/internal/models/request_models"
	"travelguide/internal/models/response_models"
	"travelguide/internal/repositories"
	mem "travelguide/pkg/memcache"
	"travelguide/pkg/utils"
)

const defaultDurationDays = 3

const GenerationNotStarted = "not_started"

// LLMSettings carries the model parameters for both itinerary and trip-parse calls.
type LLMSettings struct {
	Model              string
	Temperature        float32
	ItineraryMaxTokens int
	ParseMaxTokens     int
}

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, userID, tripID uuid.UUID, feedback string) (*response_models.ItineraryResponse, error)
	GetLatestItinerary(ctx context.Context, userID, tripID uuid.UUID) (*response_models.ItineraryResponse, error)
	GetGenerationStatus(ctx context.Context, userID, tripID uuid.UUID) (*response_models.GenerationStatusResponse, error)
	UpdateItineraryItem(ctx context.Context, userID, tripID uuid.UUID, itemID string, req request_models.UpdateItineraryItemRequest) (*response_models.ItineraryResponse, error)
	ConfirmItinerary(ctx context.Context, userID, tripID uuid.UUID) (*response_models.ItineraryResponse, error)
}

type ItineraryService struct {
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	llm           utils.LLMClientInterface
	tracker       mem.GenerationTracker
	cache         mem.ItineraryCache
	settings      LLMSettings
	logger        *zap.Logger
}

func NewItineraryService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	llm utils.LLMClientInterface,
	tracker mem.GenerationTracker,
	cache mem.ItineraryCache,
	settings LLMSettings,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		llm:           llm,
		tracker:       tracker,
		cache:         cache,
		settings:      settings,
		logger:        logger,
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, userID, tripID uuid.UUID, feedback string) (resp *response_models.ItineraryResponse, err error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	key := tripID.String()
	if !s.tracker.TryBegin(key) {
		return nil, utils.ErrGenerationInProgress
	}
	defer func() {
		if r := recover(); r != nil {
			s.tracker.Finish(key, fmt.Errorf("generation panicked: %v", r))
			panic(r)
		}
		s.tracker.Finish(key, err)
	}()

	destination := trip.PrimaryDestination()
	if destination == "" {
		destination = trip.OriginalRequest
	}
	duration := trip.DurationDays
	if duration < 1 {
		duration = defaultDurationDays
	}
	prefs := trip.Preferences.Data()

	log := s.logger.With(
		zap.String("trip_id", key),
		zap.String("destination", destination),
		zap.Int("expected_days", duration),
	)
	start := time.Now()

	prompts := BuildItineraryPrompts(ItineraryPromptParams{
		Destination:       destination,
		Destinations:      trip.Destinations,
		DurationDays:      duration,
		TravelersCount:    trip.TravelersCount,
		Interests:         prefs.Interests,
		AccommodationType: prefs.AccommodationType,
		TravelStyle:       prefs.TravelStyle,
		StartDate:         derefString(utils.FormatDate(trip.StartDate)),
		EndDate:           derefString(utils.FormatDate(trip.EndDate)),
		OriginalRequest:   trip.OriginalRequest,
		Feedback:          feedback,
	})

	content, err := s.llm.Complete(ctx, utils.ChatRequest{
		System:      prompts.System,
		User:        prompts.User,
		Model:       s.settings.Model,
		Temperature: s.settings.Temperature,
		MaxTokens:   s.settings.ItineraryMaxTokens,
	})
	if err != nil {
		log.Error("LLM call failed", zap.Error(err))
		return nil, err
	}

	extracted, err := utils.ExtractJSON(content)
	if err != nil {
		var malformed *utils.MalformedResponseError
		if errors.As(err, &malformed) {
			log.Error("Unparsable itinerary reply", zap.String("snippet", malformed.Snippet), zap.Error(err))
		}
		return nil, err
	}

	validated, err := ValidateItinerary(extracted, duration)
	if err != nil {
		var mismatch *utils.DurationMismatchError
		if errors.As(err, &mismatch) {
			log.Error("Itinerary duration mismatch", zap.Int("actual_days", mismatch.Actual))
		} else {
			log.Error("Itinerary validation failed", zap.Error(err))
		}
		return nil, err
	}
	if len(validated.Warnings) > 0 {
		log.Warn("Generic itinerary items", zap.Stringers("warnings", validated.Warnings))
	}

	itinerary := AssembleItinerary(validated, AssembleParams{
		TripID:         trip.ID,
		TravelersCount: trip.TravelersCount,
		Feedback:       feedback,
	})

	if err := s.itineraryRepo.CreateNextVersion(ctx, itinerary); err != nil {
		log.Error("Failed to persist itinerary", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.cache.Invalidate(key)

	log.Info("Itinerary generated",
		zap.Int("version", itinerary.Version),
		zap.Int("items", len(itinerary.Items)),
		zap.Duration("took", time.Since(start)))

	return response_models.BuildItineraryResponse(itinerary), nil
}

func (s *ItineraryService) GetLatestItinerary(ctx context.Context, userID, tripID uuid.UUID) (*response_models.ItineraryResponse, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	key := tripID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	epoch := s.cache.Epoch(key)
	itinerary, err := s.latest(ctx, tripID)
	if err != nil {
		return nil, err
	}

	out := response_models.BuildItineraryResponse(itinerary)
	s.cache.Set(key, epoch, out)
	return out, nil
}

func (s *ItineraryService) GetGenerationStatus(ctx context.Context, userID, tripID uuid.UUID) (*response_models.GenerationStatusResponse, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	out := &response_models.GenerationStatusResponse{TripID: tripID.String()}
	if st, ok := s.tracker.Status(tripID.String()); ok {
		out.Status = string(st.State)
		out.Error = st.Error
		out.UpdatedAt = st.UpdatedAt.UTC().Format(time.RFC3339)
		return out, nil
	}

	// No record in memory: fall back to what the database says.
	itinerary, err := s.itineraryRepo.FindLatestByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if itinerary == nil {
		out.Status = GenerationNotStarted
		return out, nil
	}
	out.Status = string(mem.GenerationSucceeded)
	out.UpdatedAt = utils.FormatUnixRFC3339(itinerary.UpdatedAt)
	return out, nil
}

func (s *ItineraryService) UpdateItineraryItem(ctx context.Context, userID, tripID uuid.UUID, itemID string, req request_models.UpdateItineraryItemRequest) (*response_models.ItineraryResponse, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.latest(ctx, tripID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range itinerary.Items {
		if itinerary.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, utils.ErrItemNotFound
	}

	if err := applyItemUpdate(&itinerary.Items[idx], req); err != nil {
		return nil, err
	}

	itinerary.TotalCost = db_models.TotalFor(itinerary.Items, max(trip.TravelersCount, 1))
	itinerary.Status = db_models.ItineraryStatusModified

	if err := s.itineraryRepo.Save(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.cache.Invalidate(tripID.String())

	return response_models.BuildItineraryResponse(itinerary), nil
}

func (s *ItineraryService) ConfirmItinerary(ctx context.Context, userID, tripID uuid.UUID) (*response_models.ItineraryResponse, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	itinerary, err := s.latest(ctx, tripID)
	if err != nil {
		return nil, err
	}

	itinerary.Status = db_models.ItineraryStatusConfirmed
	if err := s.itineraryRepo.Save(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.cache.Invalidate(tripID.String())

	return response_models.BuildItineraryResponse(itinerary), nil
}

func (s *ItineraryService) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.tripRepo.FindByIdAndUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (s *ItineraryService) latest(ctx context.Context, tripID uuid.UUID) (*db_models.Itinerary, error) {
	itinerary, err := s.itineraryRepo.FindLatestByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return itinerary, nil
}

func applyItemUpdate(item *db_models.ItineraryItem, req request_models.UpdateItineraryItemRequest) error {
	if req.Time != nil {
		t, err := time.Parse("15:04", *req.Time)
		if err != nil {
			return fmt.Errorf("%w: time must be HH:MM", utils.ErrInvalidInput)
		}
		item.Time = t.Format("15:04")
	}
	if req.Type != nil {
		t := db_models.ItemType(*req.Type)
		if !t.Valid() {
			return fmt.Errorf("%w: unknown item type %q", utils.ErrInvalidInput, *req.Type)
		}
		item.Type = t
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	if req.Duration != nil {
		item.Duration = req.Duration
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", utils.ErrInvalidInput)
		}
		item.Price = req.Price
	}
	if req.BookingRequired != nil {
		item.BookingRequired = *req.BookingRequired
		switch {
		case !item.BookingRequired:
			item.BookingStatus = nil
		case item.BookingStatus == nil:
			pending := db_models.BookingStatusPending
			item.BookingStatus = &pending
		}
	}
	if req.BookingStatus != nil {
		status := db_models.BookingStatus(*req.BookingStatus)
		if !status.Valid() {
			return fmt.Errorf("%w: unknown booking status %q", utils.ErrInvalidInput, *req.BookingStatus)
		}
		item.BookingStatus = &status
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
