package llm

import (
	"context"
	"fmt"

	"github.com/AgriGenie/plantcare/internal/config"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
)

// GenkitProvider - универсальный провайдер для всех LLM через Genkit
type GenkitProvider struct {
	genkitApp *genkit.Genkit
	modelName string
}

// NewGenkitProvider создает провайдер с уже инициализированным GenkitApp
func NewGenkitProvider(genkitApp *genkit.Genkit, cfg config.LLMConfig) (*GenkitProvider, error) {
	if genkitApp == nil {
		return nil, fmt.Errorf("genkitApp cannot be nil")
	}

	// Формируем универсальное имя модели
	modelName := cfg.Provider + "/" + cfg.Model

	return &GenkitProvider{
		genkitApp: genkitApp,
		modelName: modelName,
	}, nil
}

// InitGenkitApp создает и инициализирует Genkit с нужными плагинами
// Supports: gemini, openai, ollama, localai, lm-studio
func InitGenkitApp(ctx context.Context, cfg config.LLMConfig) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case "gemini":
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&googlegenai.GoogleAI{
					APIKey: cfg.ApiKey,
				},
			),
		), nil

	case "openai", "ollama", "localai", "lm-studio":
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&compat_oai.OpenAICompatible{
					Provider: cfg.Provider,
					APIKey:   cfg.ApiKey,
					BaseURL:  cfg.BaseURL,
				},
			),
		), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// getMiddlewares returns middleware for Genkit LLM calls
// Empty: assessment calls are never retried automatically,
// failure recovery is the fallback plan (see fallback.go)
func getMiddlewares() []ai.ModelMiddleware {
	return []ai.ModelMiddleware{}
}

// GenerateTreatmentPlan генерирует план лечения через Genkit
// Genkit автоматически валидирует JSON schema через generic type
func (p *GenkitProvider) GenerateTreatmentPlan(
	ctx context.Context,
	req *TreatmentPlanRequest,
) (*TreatmentPlanResponse, error) {
	prompt := BuildTreatmentPlanPrompt(req)

	result, _, err := genkit.GenerateData[TreatmentPlanResponse](
		ctx,
		p.genkitApp,
		ai.WithModelName(p.modelName),
		ai.WithPrompt(prompt),
		ai.WithMiddleware(getMiddlewares()...),
	)

	if err != nil {
		return nil, fmt.Errorf("treatment plan generation failed: %w", err)
	}

	return result, nil
}

// GenerateAdvice выполняет запрос сельскохозяйственного совета
func (p *GenkitProvider) GenerateAdvice(
	ctx context.Context,
	req *AdviceRequest,
) (*AdviceResponse, error) {
	prompt := BuildAdvicePrompt(req)

	result, _, err := genkit.GenerateData[AdviceResponse](
		ctx,
		p.genkitApp,
		ai.WithModelName(p.modelName),
		ai.WithPrompt(prompt),
		ai.WithMiddleware(getMiddlewares()...),
	)

	if err != nil {
		return nil, fmt.Errorf("advice generation failed: %w", err)
	}

	return result, nil
}

func (p *GenkitProvider) GetName() string {
	return "genkit"
}

func (p *GenkitProvider) GetModel() string {
	return p.modelName
}
