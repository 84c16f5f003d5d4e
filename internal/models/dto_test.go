package models

import "testing"

func TestAssessment_ToDTO(t *testing.T) {
	a := &Assessment{
		ID:        "a-1",
		SessionID: "s-1",
		Diseases: []Disease{
			{Name: "Powdery mildew", Probability: 0.823},
		},
		Plan: TreatmentPlan{
			ImmediateSteps:      []string{"a"},
			LongTermPrevention:  []string{"b"},
			OrganicAlternatives: []string{"c"},
			ChemicalSolutions:   []string{"d"},
		},
		PlanSource: PlanSourceModel,
		Status:     StatusComplete,
	}

	dto := a.ToDTO()

	if dto.Diseases[0].Confidence != "82.3%" {
		t.Errorf("Expected confidence '82.3%%', got '%s'", dto.Diseases[0].Confidence)
	}

	if dto.Notice != "" {
		t.Errorf("Expected no notice for model plan, got '%s'", dto.Notice)
	}
}

func TestAssessment_ToDTO_FallbackNotice(t *testing.T) {
	a := &Assessment{
		ID:         "a-1",
		PlanSource: PlanSourceFallback,
		Status:     StatusComplete,
	}

	dto := a.ToDTO()

	// Fallback сопровождается неблокирующим уведомлением о валидности диагноза
	if dto.Notice == "" {
		t.Error("Expected notice for fallback plan")
	}
}

func TestTreatmentPlan_IsEmpty(t *testing.T) {
	var empty TreatmentPlan
	if !empty.IsEmpty() {
		t.Error("Expected zero-value plan to be empty")
	}

	partial := TreatmentPlan{ImmediateSteps: []string{"a"}}
	if partial.IsEmpty() {
		t.Error("Expected plan with any list populated to be non-empty")
	}
}
