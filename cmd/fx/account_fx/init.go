package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"travelguide/internal/config"
	"travelguide/internal/repositories"
	"travelguide/internal/services"
	"travelguide/pkg/middleware"
	"travelguide/pkg/utils"
)

var Module = fx.Provide(
	provideJWTManager,
	provideTokenIssuer,
	provideTokenValidator,
	provideAccountRepo,
	provideAccountService,
)

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry())
}

func provideTokenIssuer(m *utils.JWTManager) services.TokenIssuer {
	return m
}

func provideTokenValidator(m *utils.JWTManager) middleware.TokenValidator {
	return m
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens services.TokenIssuer, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, logger.Named("account"))
}
