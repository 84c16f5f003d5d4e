package llm

import "github.com/AgriGenie/plantcare/internal/models"

// Fallback план - единственная политика восстановления после ошибок в системе.
// Подставляется, когда генерация упала или вернула неполный ответ.
// Диагноз при этом остаётся валидным.

// FallbackPlan возвращает фиксированный план лечения
func FallbackPlan() models.TreatmentPlan {
	return models.TreatmentPlan{
		ImmediateSteps: []string{
			"Remove and destroy visibly infected leaves and stems",
			"Isolate the plant from healthy ones where possible",
			"Apply a broad-spectrum fungicide or pesticide appropriate for the crop",
			"Reduce leaf wetness: water at the base, in the morning",
		},
		LongTermPrevention: []string{
			"Inspect plants regularly for early symptoms",
			"Keep proper spacing between plants for air circulation",
			"Use disease-resistant varieties when replanting",
			"Maintain good soil health and rotate crops",
		},
		OrganicAlternatives: []string{
			"Spray neem oil solution weekly until symptoms subside",
			"Apply a baking soda solution (1 tsp per liter of water) to affected foliage",
			"Introduce beneficial insects to control pest vectors",
		},
		ChemicalSolutions: []string{
			"Apply a copper-based fungicide following label directions",
			"Use a systemic fungicide for persistent infections",
			"Always wear protective equipment and observe pre-harvest intervals",
		},
	}
}

// ResolveTreatmentPlan применяет политику подстановки:
// валидный полный ответ проходит как есть, всё остальное (ошибка сети,
// невалидный JSON, отсутствующее поле) заменяется fallback планом.
// Ошибка дальше не распространяется.
func ResolveTreatmentPlan(resp *TreatmentPlanResponse, err error) (models.TreatmentPlan, models.PlanSource) {
	if err != nil || !isCompletePlan(resp) {
		return FallbackPlan(), models.PlanSourceFallback
	}
	return resp.ToPlan(), models.PlanSourceModel
}

// isCompletePlan проверяет, что все четыре обязательных списка присутствуют
func isCompletePlan(resp *TreatmentPlanResponse) bool {
	if resp == nil {
		return false
	}
	return len(resp.ImmediateSteps) > 0 &&
		len(resp.LongTermPrevention) > 0 &&
		len(resp.OrganicAlternatives) > 0 &&
		len(resp.ChemicalSolutions) > 0
}
