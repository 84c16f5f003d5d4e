package models

import "time"

// AssessmentStatus - стадия жизненного цикла оценки
type AssessmentStatus string

const (
	// StatusAssessing - изображение принято, диагностика в процессе
	StatusAssessing AssessmentStatus = "assessing"

	// StatusDiseasesReady - диагностика завершена, план лечения генерируется
	StatusDiseasesReady AssessmentStatus = "diseases_ready"

	// StatusComplete - болезни и план лечения получены (план может быть fallback)
	StatusComplete AssessmentStatus = "complete"

	// StatusFailed - диагностика не удалась, частичный результат не показывается
	StatusFailed AssessmentStatus = "failed"
)

// PlanSource отмечает, откуда пришёл план лечения
type PlanSource string

const (
	PlanSourceModel    PlanSource = "model"
	PlanSourceFallback PlanSource = "fallback"
)

// Disease - кандидат болезни от диагностического сервиса.
// Consumed read-only: после диагностики поля не меняются.
type Disease struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"` // [0,1]
	Description string  `json:"description,omitempty"`
	Treatment   string  `json:"treatment,omitempty"`
}

// TreatmentPlan - четыре упорядоченных списка рекомендаций.
// Инвариант: либо все списки пустые (план ещё не получен),
// либо все заполнены (от сервиса генерации или fallback).
type TreatmentPlan struct {
	ImmediateSteps      []string `json:"immediate_steps"`
	LongTermPrevention  []string `json:"long_term_prevention"`
	OrganicAlternatives []string `json:"organic_alternatives"`
	ChemicalSolutions   []string `json:"chemical_solutions"`
}

// IsEmpty сообщает, что план ещё не заполнен
func (p TreatmentPlan) IsEmpty() bool {
	return len(p.ImmediateSteps) == 0 &&
		len(p.LongTermPrevention) == 0 &&
		len(p.OrganicAlternatives) == 0 &&
		len(p.ChemicalSolutions) == 0
}

// Assessment - агрегат одной оценки здоровья растения
type Assessment struct {
	ID           string           `json:"id"`
	SessionID    string           `json:"session_id"`
	CropName     string           `json:"crop_name,omitempty"`
	ImagePreview string           `json:"image_preview,omitempty"` // data URL загруженного изображения
	Diseases     []Disease        `json:"diseases"`
	Plan         TreatmentPlan    `json:"plan"`
	PlanSource   PlanSource       `json:"plan_source,omitempty"`
	Status       AssessmentStatus `json:"status"`
	Error        string           `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
