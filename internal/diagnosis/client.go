package diagnosis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AgriGenie/plantcare/internal/models"
)

// Client - HTTP клиент диагностического сервиса (Plant.id health assessment)
type Client struct {
	httpClient *http.Client
	config     ClientConfig
}

// ClientConfig конфигурация клиента
type ClientConfig struct {
	ApiKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// healthAssessmentRequest - payload для POST /health_assessment
type healthAssessmentRequest struct {
	Images         []string `json:"images"`
	Modifiers      []string `json:"modifiers"`
	DiseaseDetails []string `json:"disease_details"`
	Language       string   `json:"language"`
}

// healthAssessmentResponse - ответ диагностического сервиса
type healthAssessmentResponse struct {
	HealthAssessment struct {
		IsHealthy bool `json:"is_healthy"`
		Diseases  []struct {
			Name           string  `json:"name"`
			Probability    float64 `json:"probability"`
			DiseaseDetails struct {
				Description string `json:"description"`
				Treatment   struct {
					Biological []string `json:"biological"`
					Chemical   []string `json:"chemical"`
					Prevention []string `json:"prevention"`
				} `json:"treatment"`
			} `json:"disease_details"`
		} `json:"diseases"`
	} `json:"health_assessment"`
}

// NewClient создает новый клиент диагностики
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.plant.id/v2"
	}
	if config.UserAgent == "" {
		config.UserAgent = "AgriGenie-Plantcare/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// AssessHealth отправляет изображение на диагностику и возвращает
// упорядоченный список кандидатов болезней с уверенностью.
// Любой не-2xx ответ возвращается как ошибка, retry не выполняется.
func (c *Client) AssessHealth(ctx context.Context, image []byte) ([]models.Disease, error) {
	if err := ValidateImage(image); err != nil {
		return nil, err
	}

	payload := healthAssessmentRequest{
		Images:         []string{base64.StdEncoding.EncodeToString(image)},
		Modifiers:      []string{"crops_fast"},
		DiseaseDetails: []string{"cause", "common_names", "classification", "treatment"},
		Language:       "en",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/health_assessment"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.config.ApiKey)
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("diagnostic API returned status %d: %s", httpResp.StatusCode, string(body))
	}

	var result healthAssessmentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	diseases := make([]models.Disease, 0, len(result.HealthAssessment.Diseases))
	for _, d := range result.HealthAssessment.Diseases {
		diseases = append(diseases, models.Disease{
			Name:        d.Name,
			Probability: d.Probability,
			Description: d.DiseaseDetails.Description,
			Treatment:   joinTreatment(d.DiseaseDetails.Treatment.Biological, d.DiseaseDetails.Treatment.Chemical, d.DiseaseDetails.Treatment.Prevention),
		})
	}

	return diseases, nil
}

// joinTreatment сводит рекомендации Plant.id в один текст
func joinTreatment(groups ...[]string) string {
	var parts []string
	for _, g := range groups {
		parts = append(parts, g...)
	}
	return strings.Join(parts, " ")
}

// ErrUnsupportedImage возвращается для payload, не являющегося
// поддерживаемым статичным изображением
var ErrUnsupportedImage = errors.New("unsupported image encoding")

// ValidateImage проверяет, что payload - поддерживаемое статичное изображение
func ValidateImage(image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: empty payload", ErrUnsupportedImage)
	}

	contentType := http.DetectContentType(image)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
}
