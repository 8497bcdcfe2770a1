package memcache_fx

import (
	"go.uber.org/fx"

	"travelguide/internal/config"
	mem "travelguide/pkg/memcache"
)

var Module = fx.Provide(provideGenerationTracker, provideItineraryCache)

func provideGenerationTracker(cfg *config.Config) mem.GenerationTracker {
	return mem.NewGenerationTracker(cfg.GenerationStatusTTL)
}

func provideItineraryCache(cfg *config.Config) mem.ItineraryCache {
	return mem.NewItineraryCache(cfg.ItineraryCacheTTL)
}
