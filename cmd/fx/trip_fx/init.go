package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"travelguide/internal/repositories"
	"travelguide/internal/services"
	mem "travelguide/pkg/memcache"
)

var Module = fx.Provide(provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	parser services.TripRequestParser,
	queue services.GenerationQueue,
	tracker mem.GenerationTracker,
	cache mem.ItineraryCache,
	logger *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, parser, queue, tracker, cache, logger.Named("trip"))
}
