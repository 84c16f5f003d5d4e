package llm

import (
	"fmt"

	"github.com/firebase/genkit/go/genkit"

	"github.com/AgriGenie/plantcare/internal/config"
)

// ProviderType - тип провайдера
type ProviderType string

const (
	ProviderTypeGenkit  ProviderType = "genkit"
	ProviderTypeGeneric ProviderType = "generic"
)

// ProviderConfig - универсальная конфигурация для создания провайдера
type ProviderConfig struct {
	// Type - тип провайдера ("genkit" или "generic")
	Type ProviderType

	// --- Для Genkit ---
	GenkitApp *genkit.Genkit
	LLM       config.LLMConfig

	// --- Для Generic провайдера ---
	Name    string    // Название (для логирования)
	Model   string    // Название модели
	BaseURL string    // Базовый URL API
	APIKey  string    // API ключ (опционально)
	Format  APIFormat // Формат API ("openai", "ollama")
}

// NewProvider создаёт провайдер на основе конфигурации
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderTypeGenkit:
		if cfg.GenkitApp == nil {
			return nil, fmt.Errorf("genkit provider requires GenkitApp")
		}
		return NewGenkitProvider(cfg.GenkitApp, cfg.LLM)

	case ProviderTypeGeneric:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("generic provider requires BaseURL")
		}
		return NewGenericProvider(GenericConfig{
			Name:    cfg.Name,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Format:  cfg.Format,
		}), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// NewOllamaProvider - helper для создания Ollama провайдера
// Пример:
//
//	provider := llm.NewOllamaProvider("http://localhost:11434", "llama3.1:8b")
func NewOllamaProvider(baseURL, model string) Provider {
	name := fmt.Sprintf("ollama-%s", model)
	return NewGenericProvider(GenericConfig{
		Name:    name,
		Model:   model,
		BaseURL: baseURL,
		Format:  FormatOllama,
	})
}

// NewLMStudioProvider - helper для создания LM Studio провайдера
// Пример:
//
//	provider := llm.NewLMStudioProvider("http://localhost:1234", "llama-3.2-3b")
func NewLMStudioProvider(baseURL, model string) Provider {
	return NewGenericProvider(GenericConfig{
		Name:    "lm-studio",
		Model:   model,
		BaseURL: baseURL,
		Format:  FormatOpenAI,
	})
}
