package llm

import "context"

// Provider - интерфейс для любого LLM провайдера
// Простая абстракция, позволяющая переключаться между моделями
type Provider interface {
	// GenerateTreatmentPlan - основной метод: план лечения по списку болезней
	// Принимает запрос, возвращает структурированный ответ
	GenerateTreatmentPlan(ctx context.Context, req *TreatmentPlanRequest) (*TreatmentPlanResponse, error)

	// GenerateAdvice - свободный сельскохозяйственный совет
	GenerateAdvice(ctx context.Context, req *AdviceRequest) (*AdviceResponse, error)

	// GetName возвращает название провайдера (для логирования)
	GetName() string

	// GetModel возвращает используемую модель
	GetModel() string
}
