package mem

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"travelguide/internal/models/response_models"
)

// epochTTL outlives any single read so an expired counter cannot reset under a reader.
const epochTTL = 24 * time.Hour

// ItineraryCache holds the latest itinerary per trip for polling clients.
//
// Readers take an Epoch before loading from the database and hand it back to
// Set. An Invalidate in between bumps the epoch and the stale write is dropped.
type ItineraryCache interface {
	Get(tripID string) (*response_models.ItineraryResponse, bool)
	Epoch(tripID string) uint64
	Set(tripID string, epoch uint64, it *response_models.ItineraryResponse) bool
	Invalidate(tripID string)
}

type itineraryCache struct {
	mu     sync.Mutex
	c      *cache.Cache
	epochs *cache.Cache
}

func NewItineraryCache(ttl time.Duration) ItineraryCache {
	return &itineraryCache{
		c:      cache.New(ttl, 2*ttl),
		epochs: cache.New(epochTTL, time.Hour),
	}
}

func (i *itineraryCache) Get(tripID string) (*response_models.ItineraryResponse, bool) {
	v, ok := i.c.Get(tripID)
	if !ok {
		return nil, false
	}
	it := v.(response_models.ItineraryResponse)
	return &it, true
}

func (i *itineraryCache) Epoch(tripID string) uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.epochLocked(tripID)
}

func (i *itineraryCache) Set(tripID string, epoch uint64, it *response_models.ItineraryResponse) bool {
	if it == nil {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.epochLocked(tripID) != epoch {
		return false
	}
	i.c.Set(tripID, *it, cache.DefaultExpiration)
	return true
}

func (i *itineraryCache) Invalidate(tripID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.epochs.Set(tripID, i.epochLocked(tripID)+1, cache.DefaultExpiration)
	i.c.Delete(tripID)
}

func (i *itineraryCache) epochLocked(tripID string) uint64 {
	if v, ok := i.epochs.Get(tripID); ok {
		return v.(uint64)
	}
	return 0
}
