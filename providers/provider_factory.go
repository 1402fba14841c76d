package providers

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/providers/contracts"
	"github.com/Shahfarzane/CursorFocus/providers/gemini"
	"github.com/Shahfarzane/CursorFocus/providers/models"
	"github.com/Shahfarzane/CursorFocus/providers/openai"
)

// BuildSummaryProvider constructs the configured summary provider. Without a
// credential, or with an unknown provider name, it returns a disabled no-op
// provider: the pipeline always has a provider to call.
func BuildSummaryProvider(cfg config.SummaryConfig) contracts.SummaryProvider {
	if cfg.ApiKey == "" {
		return disabledProvider{}
	}

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return gemini.NewGeminiSummaryProvider(&gemini.GeminiConfig{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			ApiKey:      cfg.ApiKey,
			Temperature: cfg.Temperature,
		})
	case "openai", "azure-openai", "ollama", "openrouter":
		return openai.NewOpenAISummaryProvider(&openai.OpenAIConfig{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			ApiKey:      cfg.ApiKey,
			Temperature: cfg.Temperature,
		})
	default:
		log.Printf("Warning: unknown summary provider %q, summaries disabled", cfg.Provider)
		return disabledProvider{}
	}
}

// disabledProvider satisfies the contract when no provider is configured.
type disabledProvider struct{}

func (disabledProvider) Summarize(context.Context, models.SummaryRequest) (string, error) {
	return "", nil
}

func (disabledProvider) GenerateRules(context.Context, models.SummaryRequest) (json.RawMessage, error) {
	return nil, nil
}

func (disabledProvider) Enabled() bool { return false }
