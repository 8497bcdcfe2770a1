package ai_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelguide/internal/config"
	"travelguide/internal/services"
	"travelguide/pkg/utils"
)

const defaultGeminiModel = "gemini-2.0-flash"

var Module = fx.Provide(
	ProvideLLMClient,
	ProvideLLMSettings,
	ProvideTripRequestParser,
)

// ProvideLLMClient creates the chat client selected by LLM_PROVIDER.
func ProvideLLMClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.LLMClientInterface, error) {
	logger.Info("Initializing LLM client",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", modelFor(cfg)),
		zap.Bool("api_key_set", cfg.LLMAPIKey != ""))

	switch strings.ToLower(cfg.LLMProvider) {
	case "openai":
		return utils.NewOpenAIChatClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMTimeout), nil
	case "gemini":
		client, err := utils.NewGeminiChatClient(context.Background(), cfg.LLMAPIKey, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", cfg.LLMProvider)
	}
}

func ProvideLLMSettings(cfg *config.Config) services.LLMSettings {
	return services.LLMSettings{
		Model:              modelFor(cfg),
		Temperature:        cfg.LLMTemperature,
		ItineraryMaxTokens: cfg.LLMItineraryMaxTokens,
		ParseMaxTokens:     cfg.LLMParseMaxTokens,
	}
}

// ProvideTripRequestParser asks the model first and fills gaps from the pattern parser.
func ProvideTripRequestParser(client utils.LLMClientInterface, settings services.LLMSettings, logger *zap.Logger) services.TripRequestParser {
	return &services.FallbackTripParser{
		Primary:   services.NewLLMTripParser(client, settings),
		Secondary: services.NewPatternTripParser(),
		Logger:    logger,
	}
}

// Groq model names mean nothing to Gemini.
func modelFor(cfg *config.Config) string {
	if strings.EqualFold(cfg.LLMProvider, "gemini") && !strings.HasPrefix(cfg.LLMModel, "gemini") {
		return defaultGeminiModel
	}
	return cfg.LLMModel
}
