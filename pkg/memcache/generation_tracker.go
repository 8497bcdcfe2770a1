package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type GenerationState string

const (
	GenerationPending   GenerationState = "pending"
	GenerationSucceeded GenerationState = "succeeded"
	GenerationFailed    GenerationState = "failed"
)

type GenerationStatus struct {
	State     GenerationState
	Error     string
	UpdatedAt time.Time
}

type GenerationTracker interface {
	// TryBegin marks tripID pending and reports false when a generation is already running.
	TryBegin(tripID string) bool

	// Finish releases the trip and records the outcome. A nil err means success.
	Finish(tripID string, err error)

	// MarkFailed records a failure for a trip that never started generating.
	MarkFailed(tripID string, err error)

	Status(tripID string) (GenerationStatus, bool)
}

type generationTracker struct {
	locks    *cache.Cache
	statuses *cache.Cache
	ttl      time.Duration
}

// NewGenerationTracker keeps statuses for ttl. Locks expire after ttl too, so a
// crashed job cannot pin a trip forever.
func NewGenerationTracker(ttl time.Duration) GenerationTracker {
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &generationTracker{
		locks:    cache.New(ttl, cleanup),
		statuses: cache.New(ttl, cleanup),
		ttl:      ttl,
	}
}

func (t *generationTracker) TryBegin(tripID string) bool {
	if err := t.locks.Add(tripID, struct{}{}, t.ttl); err != nil {
		return false
	}
	t.statuses.Set(tripID, GenerationStatus{State: GenerationPending, UpdatedAt: time.Now()}, cache.DefaultExpiration)
	return true
}

func (t *generationTracker) Finish(tripID string, err error) {
	t.record(tripID, err)
	t.locks.Delete(tripID)
}

func (t *generationTracker) MarkFailed(tripID string, err error) {
	t.record(tripID, err)
}

func (t *generationTracker) record(tripID string, err error) {
	status := GenerationStatus{State: GenerationSucceeded, UpdatedAt: time.Now()}
	if err != nil {
		status.State = GenerationFailed
		status.Error = err.Error()
	}
	t.statuses.Set(tripID, status, cache.DefaultExpiration)
}

func (t *generationTracker) Status(tripID string) (GenerationStatus, bool) {
	v, ok := t.statuses.Get(tripID)
	if !ok {
		return GenerationStatus{}, false
	}
	return v.(GenerationStatus), true
}
