package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GenericProvider - универсальный провайдер для любого HTTP API
// Поддерживает разные форматы запросов (OpenAI-compatible, Ollama, и т.д.)
type GenericProvider struct {
	client  *http.Client
	name    string
	model   string // Название модели
	baseURL string
	apiKey  string // Опциональный
	format  APIFormat
}

// APIFormat определяет формат API
type APIFormat string

const (
	// FormatOpenAI - OpenAI compatible API (LocalAI, LM Studio, vLLM с OpenAI endpoint, etc.)
	FormatOpenAI APIFormat = "openai"

	// FormatOllama - Ollama API
	FormatOllama APIFormat = "ollama"
)

// GenericConfig - конфигурация для Generic провайдера
type GenericConfig struct {
	Name    string    // Название провайдера (для логирования)
	Model   string    // Название модели
	BaseURL string    // Базовый URL (например, "http://localhost:11434")
	APIKey  string    // API ключ (опционально)
	Format  APIFormat // Формат API
}

// NewGenericProvider создаёт новый универсальный HTTP провайдер
func NewGenericProvider(cfg GenericConfig) *GenericProvider {
	// Дефолтные значения
	if cfg.Name == "" {
		cfg.Name = "generic"
	}
	if cfg.Format == "" {
		cfg.Format = FormatOpenAI // По умолчанию OpenAI-compatible
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}

	return &GenericProvider{
		client: &http.Client{
			Timeout: 2 * time.Minute, // Локальные модели могут быть медленными
		},
		name:    cfg.Name,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		format:  cfg.Format,
	}
}

// GenerateTreatmentPlan выполняет генерацию плана лечения через HTTP API
func (p *GenericProvider) GenerateTreatmentPlan(
	ctx context.Context,
	req *TreatmentPlanRequest,
) (*TreatmentPlanResponse, error) {
	prompt := BuildTreatmentPlanPrompt(req)

	content, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result TreatmentPlanResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w\nContent: %s", err, TruncateString(content, 500))
	}

	return &result, nil
}

// GenerateAdvice выполняет запрос совета через HTTP API
func (p *GenericProvider) GenerateAdvice(
	ctx context.Context,
	req *AdviceRequest,
) (*AdviceResponse, error) {
	prompt := BuildAdvicePrompt(req)

	content, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result AdviceResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w\nContent: %s", err, TruncateString(content, 500))
	}

	return &result, nil
}

// generate отправляет промпт и возвращает очищенный JSON контент
func (p *GenericProvider) generate(ctx context.Context, prompt string) (string, error) {
	httpReq, err := p.buildHTTPRequest(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", httpResp.StatusCode, string(body))
	}

	content, err := p.parseResponse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	// Очищаем JSON от возможного markdown
	return cleanJSONResponse(content), nil
}

// buildHTTPRequest создаёт HTTP запрос в зависимости от формата API
func (p *GenericProvider) buildHTTPRequest(ctx context.Context, prompt string) (*http.Request, error) {
	var requestBody interface{}
	var endpoint string

	switch p.format {
	case FormatOpenAI:
		// OpenAI-compatible формат
		endpoint = p.baseURL + "/chat/completions"
		requestBody = map[string]interface{}{
			"model": p.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.2,
			"max_tokens":  2000,
			"response_format": map[string]string{
				"type": "json_object", // Просим JSON
			},
		}

	case FormatOllama:
		// Ollama формат
		endpoint = p.baseURL + "/api/generate"
		requestBody = map[string]interface{}{
			"model":  p.model,
			"prompt": prompt,
			"format": "json", // Ollama JSON mode
			"stream": false,
			"options": map[string]interface{}{
				"temperature": 0.2,
				"num_predict": 2000,
			},
		}

	default:
		return nil, fmt.Errorf("unsupported API format: %s", p.format)
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	if p.apiKey != "" {
		// OpenAI-style Authorization
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	return req, nil
}

// parseResponse парсит ответ в зависимости от формата API
func (p *GenericProvider) parseResponse(body []byte) (string, error) {
	switch p.format {
	case FormatOpenAI:
		// OpenAI возвращает: {"choices": [{"message": {"content": "..."}}]}
		var resp struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}
		return resp.Choices[0].Message.Content, nil

	case FormatOllama:
		// Ollama возвращает: {"response": "..."}
		var resp struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Ollama response: %w", err)
		}
		return resp.Response, nil

	default:
		return "", fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *GenericProvider) GetName() string {
	return p.name
}

func (p *GenericProvider) GetModel() string {
	return p.model
}
