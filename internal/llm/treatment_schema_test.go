package llm

import (
	"encoding/json"
	"testing"

	"github.com/invopop/jsonschema"
)

// TestTreatmentPlanResponseSchema проверяет, что схема TreatmentPlanResponse
// не допускает дополнительных полей
func TestTreatmentPlanResponseSchema(t *testing.T) {
	// Генерируем JSON схему для TreatmentPlanResponse
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(&TreatmentPlanResponse{})

	// Тестовые данные с правильными полями
	validJSON := `{
		"immediate_steps": ["Remove infected leaves"],
		"long_term_prevention": ["Rotate crops yearly"],
		"organic_alternatives": ["Neem oil spray"],
		"chemical_solutions": ["Copper fungicide"]
	}`

	var validData TreatmentPlanResponse
	if err := json.Unmarshal([]byte(validJSON), &validData); err != nil {
		t.Fatalf("Failed to unmarshal valid JSON: %v", err)
	}

	// Сериализуем схему и проверим её содержимое
	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	t.Logf("Generated schema:\n%s", string(schemaBytes))
}

// TestTreatmentPlanResponseNoExtraFields проверяет, что лишние поля LLM ответа
// не сохраняются в структуре
func TestTreatmentPlanResponseNoExtraFields(t *testing.T) {
	// JSON с дополнительными полями, которых нет в структуре
	invalidJSON := `{
		"immediate_steps": ["a"],
		"long_term_prevention": ["b"],
		"organic_alternatives": ["c"],
		"chemical_solutions": ["d"],
		"disease_summary": "Extra field",
		"severity": "high"
	}`

	var data TreatmentPlanResponse

	// Go unmarshal игнорирует дополнительные поля, но мы проверяем схему
	if err := json.Unmarshal([]byte(invalidJSON), &data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	reMarshaled, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var remarshaled map[string]interface{}
	if err := json.Unmarshal(reMarshaled, &remarshaled); err != nil {
		t.Fatalf("Unmarshal remarshaled failed: %v", err)
	}

	if _, ok := remarshaled["disease_summary"]; ok {
		t.Error("disease_summary should not be present after marshaling")
	}

	if _, ok := remarshaled["severity"]; ok {
		t.Error("severity should not be present after marshaling")
	}
}
