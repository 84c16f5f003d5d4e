package llm

import "fmt"

// AdviceRequest represents input for the farming advice chat
type AdviceRequest struct {
	Message string `json:"message" jsonschema:"description=Farmer question to answer"`
}

// AdviceResponse represents output from the farming advice chat
type AdviceResponse struct {
	Response string `json:"response" jsonschema:"description=Expert answer to the question"`
}

// BuildAdvicePrompt creates prompt for the agricultural advice endpoint
func BuildAdvicePrompt(req *AdviceRequest) string {
	prompt := fmt.Sprintf("As an agricultural expert, please provide advice on: %s\n", req.Message)
	prompt += "Consider factors like weather, soil conditions, and best farming practices in your response.\n\n"
	prompt += "## Output Format (JSON):\n\n"
	prompt += `{"response": "your advice"}`
	return prompt
}
