package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDatabaseError      = errors.New("database error")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrItemNotFound       = errors.New("itinerary item not found")

	ErrGenerationInProgress = errors.New("itinerary generation already in progress")
	ErrQueueFull            = errors.New("generation queue is full")
	ErrWorkerStopped        = errors.New("generation worker stopped")

	ErrUpstreamUnavailable   = errors.New("llm service unavailable")
	ErrUpstreamAuth          = errors.New("llm service rejected credentials")
	ErrUpstreamEmptyResponse = errors.New("llm service returned no content")

	ErrMalformedResponse = errors.New("malformed llm response")
	ErrInvalidStructure  = errors.New("invalid itinerary structure")
	ErrEmptyItinerary    = errors.New("llm returned an empty days array")
	ErrDurationMismatch  = errors.New("itinerary day count does not match trip duration")
	ErrAIReportedError   = errors.New("llm reported an error")
)

// MalformedResponseError keeps the start of the unparsable text for diagnostics.
type MalformedResponseError struct {
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse AI response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

type DurationMismatchError struct {
	Expected int
	Actual   int
}

func (e *DurationMismatchError) Error() string {
	return fmt.Sprintf("AI generated %d days but %d days were requested", e.Actual, e.Expected)
}

func (e *DurationMismatchError) Is(target error) bool { return target == ErrDurationMismatch }
