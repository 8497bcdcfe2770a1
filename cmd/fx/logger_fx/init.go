package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelguide/internal/config"
	"travelguide/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	l := logger.New(cfg)
	undo := zap.ReplaceGlobals(l)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			undo()
			_ = l.Sync()
			return nil
		},
	})

	return l
}
