package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AgriGenie/plantcare/internal/models"
)

func TestResolveTreatmentPlan_ValidResponse(t *testing.T) {
	resp := &TreatmentPlanResponse{
		ImmediateSteps:      []string{"remove infected leaves"},
		LongTermPrevention:  []string{"rotate crops"},
		OrganicAlternatives: []string{"neem oil"},
		ChemicalSolutions:   []string{"copper fungicide"},
	}

	plan, source := ResolveTreatmentPlan(resp, nil)

	assert.Equal(t, models.PlanSourceModel, source)
	assert.Equal(t, []string{"remove infected leaves"}, plan.ImmediateSteps)
	assert.Equal(t, []string{"copper fungicide"}, plan.ChemicalSolutions)
}

func TestResolveTreatmentPlan_Error(t *testing.T) {
	plan, source := ResolveTreatmentPlan(nil, fmt.Errorf("connection refused"))

	assert.Equal(t, models.PlanSourceFallback, source)
	assert.Equal(t, FallbackPlan(), plan)
}

func TestResolveTreatmentPlan_MissingField(t *testing.T) {
	// Каждый вариант с одним отсутствующим полем должен дать ровно fallback план
	cases := []struct {
		name string
		resp *TreatmentPlanResponse
	}{
		{
			name: "missing immediate_steps",
			resp: &TreatmentPlanResponse{
				LongTermPrevention:  []string{"a"},
				OrganicAlternatives: []string{"b"},
				ChemicalSolutions:   []string{"c"},
			},
		},
		{
			name: "missing long_term_prevention",
			resp: &TreatmentPlanResponse{
				ImmediateSteps:      []string{"a"},
				OrganicAlternatives: []string{"b"},
				ChemicalSolutions:   []string{"c"},
			},
		},
		{
			name: "missing organic_alternatives",
			resp: &TreatmentPlanResponse{
				ImmediateSteps:     []string{"a"},
				LongTermPrevention: []string{"b"},
				ChemicalSolutions:  []string{"c"},
			},
		},
		{
			name: "missing chemical_solutions",
			resp: &TreatmentPlanResponse{
				ImmediateSteps:      []string{"a"},
				LongTermPrevention:  []string{"b"},
				OrganicAlternatives: []string{"c"},
			},
		},
		{
			name: "nil response",
			resp: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, source := ResolveTreatmentPlan(tc.resp, nil)

			assert.Equal(t, models.PlanSourceFallback, source)
			assert.Equal(t, FallbackPlan(), plan, "result must equal the fixed fallback plan exactly")
		})
	}
}

func TestFallbackPlan_IsComplete(t *testing.T) {
	plan := FallbackPlan()

	assert.NotEmpty(t, plan.ImmediateSteps)
	assert.NotEmpty(t, plan.LongTermPrevention)
	assert.NotEmpty(t, plan.OrganicAlternatives)
	assert.NotEmpty(t, plan.ChemicalSolutions)
	assert.False(t, plan.IsEmpty())
}
