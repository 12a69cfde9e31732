// Package backend builds the concrete model for a resolved provider.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Cyclone1070/repoqa/internal/config"
	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/provider/anthropic"
	"github.com/Cyclone1070/repoqa/internal/provider/gemini"
	"github.com/Cyclone1070/repoqa/internal/provider/openai"
)

// New returns the model for cfg wrapped with retry and rate limiting.
func New(ctx context.Context, cfg *provider.Config, pc config.ProviderConfig) (provider.Model, error) {
	model, err := newModel(ctx, cfg, pc)
	if err != nil {
		return nil, err
	}
	return provider.NewRetryModel(
		model,
		pc.MaxRetries,
		time.Duration(pc.RetryBaseDelayMs)*time.Millisecond,
		pc.RequestsPerMinute,
	), nil
}

func newModel(ctx context.Context, cfg *provider.Config, pc config.ProviderConfig) (provider.Model, error) {
	client := &http.Client{Timeout: time.Duration(pc.RequestTimeoutSec) * time.Second}

	switch cfg.Provider() {
	case "openai":
		return openai.New(cfg.APIKey(), cfg.BaseURL(), cfg.Model(), pc.MaxOutputTokens, client), nil
	case "anthropic":
		return anthropic.New(cfg.APIKey(), cfg.BaseURL(), cfg.Model(), pc.MaxOutputTokens, client), nil
	case "gemini":
		gc, err := gemini.NewRealGeminiClient(ctx, cfg.APIKey())
		if err != nil {
			return nil, err
		}
		return gemini.New(gc, cfg.Model(), pc.MaxOutputTokens), nil
	default:
		return nil, &provider.ConfigurationError{
			Provider: cfg.Provider(),
			Reason:   fmt.Sprintf("no backend for provider %q", cfg.Provider()),
		}
	}
}
