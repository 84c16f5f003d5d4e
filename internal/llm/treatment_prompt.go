package llm

import (
	"fmt"

	"github.com/AgriGenie/plantcare/internal/models"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Treatment Plan Prompt - structured plan from diagnosed disease list
// ═══════════════════════════════════════════════════════════════════════════════

// TreatmentPlanRequest represents input for treatment plan generation
type TreatmentPlanRequest struct {
	CropName string           `json:"crop_name,omitempty" jsonschema:"description=Crop the plant belongs to if known"`
	Diseases []models.Disease `json:"diseases" jsonschema:"description=Diseases diagnosed from the plant image with confidence scores"`
}

// TreatmentPlanResponse represents output from treatment plan generation.
// All four lists are required; a response missing any of them is replaced
// with the fallback plan (see fallback.go).
type TreatmentPlanResponse struct {
	ImmediateSteps      []string `json:"immediate_steps" jsonschema:"description=Actions to take right now to contain the disease"`
	LongTermPrevention  []string `json:"long_term_prevention" jsonschema:"description=Practices that prevent recurrence"`
	OrganicAlternatives []string `json:"organic_alternatives" jsonschema:"description=Organic treatment options"`
	ChemicalSolutions   []string `json:"chemical_solutions" jsonschema:"description=Chemical treatment options"`
}

// ToPlan конвертирует ответ LLM в доменный план
func (r *TreatmentPlanResponse) ToPlan() models.TreatmentPlan {
	return models.TreatmentPlan{
		ImmediateSteps:      r.ImmediateSteps,
		LongTermPrevention:  r.LongTermPrevention,
		OrganicAlternatives: r.OrganicAlternatives,
		ChemicalSolutions:   r.ChemicalSolutions,
	}
}

// BuildTreatmentPlanPrompt creates prompt for treatment plan generation
// Uses simple string concatenation (not strings.Builder)
// The prompt is built even for an empty disease list: the plant may still
// need general care recommendations.
func BuildTreatmentPlanPrompt(req *TreatmentPlanRequest) string {
	prompt := "You are an agricultural expert generating a treatment plan for a diagnosed plant.\n\n"

	// Input section
	prompt += "## Diagnosed Diseases\n\n"
	if len(req.Diseases) == 0 {
		prompt += "No specific disease was identified with confidence. Provide a general plant health care plan.\n"
	} else {
		for _, d := range req.Diseases {
			prompt += fmt.Sprintf("- %s (confidence: %s)\n", d.Name, models.FormatConfidence(d.Probability))
			if d.Description != "" {
				prompt += fmt.Sprintf("  Description: %s\n", d.Description)
			}
		}
	}

	if req.CropName != "" {
		prompt += fmt.Sprintf("\nCrop: %s\n", req.CropName)
	}

	// Task description
	prompt += "\n## Task\n\n"
	prompt += "Produce a practical treatment plan a farmer can follow.\n"
	prompt += "Consider factors like weather, soil conditions, and best farming practices.\n"

	// Output format
	prompt += "\n## Output Format (JSON):\n\n"
	prompt += `{
  "immediate_steps": ["step 1", "step 2"],
  "long_term_prevention": ["practice 1", "practice 2"],
  "organic_alternatives": ["option 1", "option 2"],
  "chemical_solutions": ["product 1", "product 2"]
}`

	// Rules section
	prompt += "\n\n## Rules\n\n"
	prompt += "1. **All four lists are required** - never omit a field\n"
	prompt += "2. **Be concrete** - name products, dosages and intervals where possible\n"
	prompt += "3. **Order by priority** - most urgent or effective items first\n"
	prompt += "4. **Keep items short** - one actionable sentence each\n"
	prompt += "5. **Safety first** - chemical solutions must include application precautions\n"

	return prompt
}
