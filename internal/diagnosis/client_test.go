package diagnosis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// минимальный валидный PNG заголовок для ValidateImage
var pngImage = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestClient_AssessHealth(t *testing.T) {
	var receivedPath string
	var receivedApiKey string
	var receivedPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedApiKey = r.Header.Get("Api-Key")
		json.NewDecoder(r.Body).Decode(&receivedPayload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"health_assessment": {
				"is_healthy": false,
				"diseases": [
					{
						"name": "Powdery mildew",
						"probability": 0.823,
						"disease_details": {
							"description": "Fungal disease",
							"treatment": {
								"biological": ["neem oil"],
								"chemical": ["sulfur spray"],
								"prevention": ["improve airflow"]
							}
						}
					},
					{"name": "Leaf rust", "probability": 0.41}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		ApiKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 10 * time.Second,
	})

	diseases, err := client.AssessHealth(context.Background(), pngImage)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if receivedPath != "/health_assessment" {
		t.Errorf("Expected path /health_assessment, got %s", receivedPath)
	}

	if receivedApiKey != "test-key" {
		t.Errorf("Expected Api-Key header to be set, got '%s'", receivedApiKey)
	}

	if _, ok := receivedPayload["images"]; !ok {
		t.Error("Expected images field in request payload")
	}

	if _, ok := receivedPayload["disease_details"]; !ok {
		t.Error("Expected disease_details field in request payload")
	}

	if len(diseases) != 2 {
		t.Fatalf("Expected 2 diseases, got %d", len(diseases))
	}

	if diseases[0].Name != "Powdery mildew" {
		t.Errorf("Expected first disease 'Powdery mildew', got '%s'", diseases[0].Name)
	}

	if diseases[0].Probability != 0.823 {
		t.Errorf("Expected probability 0.823, got %f", diseases[0].Probability)
	}

	if diseases[0].Treatment == "" {
		t.Error("Expected treatment text to be populated from disease_details")
	}
}

func TestClient_AssessHealth_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		ApiKey:  "bad-key",
		BaseURL: server.URL,
	})

	_, err := client.AssessHealth(context.Background(), pngImage)

	if err == nil {
		t.Error("Expected error for non-2xx response")
	}
}

func TestClient_AssessHealth_NoRetry(t *testing.T) {
	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		ApiKey:  "test-key",
		BaseURL: server.URL,
	})

	_, err := client.AssessHealth(context.Background(), pngImage)

	if err == nil {
		t.Error("Expected error for failed request")
	}

	if calls != 1 {
		t.Errorf("Expected exactly 1 call (no retry), got %d", calls)
	}
}

func TestValidateImage(t *testing.T) {
	if err := ValidateImage(pngImage); err != nil {
		t.Errorf("Expected PNG to be accepted, got %v", err)
	}

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0}
	if err := ValidateImage(jpeg); err != nil {
		t.Errorf("Expected JPEG to be accepted, got %v", err)
	}

	if err := ValidateImage([]byte("just some text, not an image")); err == nil {
		t.Error("Expected error for non-image payload")
	}

	if err := ValidateImage(nil); err == nil {
		t.Error("Expected error for empty payload")
	}
}
