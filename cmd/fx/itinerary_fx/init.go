package itinerary_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"travelguide/internal/config"
	"travelguide/internal/repositories"
	"travelguide/internal/services"
	mem "travelguide/pkg/memcache"
	"travelguide/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideItineraryService,
	provideGenerationWorker,
	provideGenerationQueue,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	llm utils.LLMClientInterface,
	tracker mem.GenerationTracker,
	cache mem.ItineraryCache,
	settings services.LLMSettings,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(tripRepo, itineraryRepo, llm, tracker, cache, settings, logger.Named("itinerary"))
}

func provideGenerationWorker(lc fx.Lifecycle, cfg *config.Config, svc services.ItineraryServiceInterface, logger *zap.Logger) *services.GenerationWorker {
	w := services.NewGenerationWorker(svc, cfg.GenerationWorkers, cfg.GenerationQueueSize, logger.Named("worker"))

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return w.Stop(ctx)
		},
	})

	return w
}

func provideGenerationQueue(w *services.GenerationWorker) services.GenerationQueue {
	return w
}
