package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"travelguide/cmd/fx/account_fx"
	"travelguide/cmd/fx/ai_fx"
	"travelguide/cmd/fx/config_fx"
	"travelguide/cmd/fx/controllers_fx"
	"travelguide/cmd/fx/db_fx"
	"travelguide/cmd/fx/itinerary_fx"
	"travelguide/cmd/fx/logger_fx"
	"travelguide/cmd/fx/memcache_fx"
	"travelguide/cmd/fx/trip_fx"
	"travelguide/internal/api/controllers"
	"travelguide/internal/config"
	"travelguide/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		ai_fx.Module,
		account_fx.Module,
		trip_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routerParams struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Validator middleware.TokenValidator

	Health    *controllers.HealthController
	Account   *controllers.AccountController
	Trip      *controllers.TripController
	Itinerary *controllers.ItineraryController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.Recovery(p.Logger))
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.ErrorDetails(!p.Config.IsProduction()))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/health", p.Health.Health)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", p.Account.Register)
	auth.POST("/login", p.Account.Login)
	auth.GET("/me", middleware.JWTAuthMiddleware(p.Validator), p.Account.Me)

	protected := api.Group("", middleware.JWTAuthMiddleware(p.Validator))

	trips := protected.Group("/trips")
	trips.GET("", p.Trip.ListTrips)
	trips.POST("", p.Trip.CreateTrip)
	trips.GET("/:id", p.Trip.GetTrip)
	trips.PUT("/:id", p.Trip.UpdateTrip)
	trips.DELETE("/:id", p.Trip.DeleteTrip)

	itinerary := protected.Group("/itinerary")
	itinerary.POST("/generate/:tripId", p.Itinerary.GenerateItinerary)
	itinerary.GET("/:tripId", p.Itinerary.GetItinerary)
	itinerary.GET("/:tripId/status", p.Itinerary.GetGenerationStatus)
	itinerary.POST("/:tripId/regenerate", p.Itinerary.RegenerateItinerary)
	itinerary.PUT("/:tripId/items/:itemId", p.Itinerary.UpdateItem)
	itinerary.POST("/:tripId/confirm", p.Itinerary.ConfirmItinerary)
}
