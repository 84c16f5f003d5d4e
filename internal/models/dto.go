package models

// DiseaseDTO - болезнь с отформатированной уверенностью для фронтенда
type DiseaseDTO struct {
	Name        string `json:"name"`
	Confidence  string `json:"confidence"` // "82.3%"
	Description string `json:"description,omitempty"`
	Treatment   string `json:"treatment,omitempty"`
}

// AssessmentDTO используется для отправки результата через API и WebSocket
type AssessmentDTO struct {
	ID           string           `json:"id"`
	SessionID    string           `json:"session_id"`
	CropName     string           `json:"crop_name,omitempty"`
	ImagePreview string           `json:"image_preview,omitempty"`
	Diseases     []DiseaseDTO     `json:"diseases"`
	Plan         TreatmentPlan    `json:"plan"`
	PlanSource   PlanSource       `json:"plan_source,omitempty"`
	Status       AssessmentStatus `json:"status"`
	// Notice - неблокирующее уведомление (например, что план взят из fallback,
	// но диагноз при этом остаётся валидным)
	Notice string `json:"notice,omitempty"`
}

// ToDTO собирает DTO из агрегата
func (a *Assessment) ToDTO() AssessmentDTO {
	diseases := make([]DiseaseDTO, 0, len(a.Diseases))
	for _, d := range a.Diseases {
		diseases = append(diseases, DiseaseDTO{
			Name:        d.Name,
			Confidence:  FormatConfidence(d.Probability),
			Description: d.Description,
			Treatment:   d.Treatment,
		})
	}

	dto := AssessmentDTO{
		ID:           a.ID,
		SessionID:    a.SessionID,
		CropName:     a.CropName,
		ImagePreview: a.ImagePreview,
		Diseases:     diseases,
		Plan:         a.Plan,
		PlanSource:   a.PlanSource,
		Status:       a.Status,
	}

	if a.PlanSource == PlanSourceFallback {
		dto.Notice = "Treatment plan generation was unavailable, showing general recommendations. The diagnosis itself is still valid."
	}

	return dto
}

// ChatRequest - запрос сельскохозяйственного совета
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse - ответ советника
type ChatResponse struct {
	Response string `json:"response"`
}

// RecommendationsDTO - статические рекомендации по болезни
type RecommendationsDTO struct {
	Disease    string   `json:"disease"`
	Treatment  []string `json:"treatment"`
	Prevention []string `json:"prevention"`
	Monitoring []string `json:"monitoring"`
}
