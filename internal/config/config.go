package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Web       WebConfig       `yaml:"web"`
	Diagnosis DiagnosisConfig `yaml:"diagnosis"`
	LLM       LLMConfig       `yaml:"llm"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DiagnosisConfig - настройки внешнего диагностического API (Plant.id)
type DiagnosisConfig struct {
	ApiKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "gemini", "openai", "ollama", "localai", "lm-studio"
	Model    string `yaml:"model"`
	ApiKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// Load читает .env (если есть), затем переменные окружения.
// config.yaml, если присутствует, применяется поверх как overlay.
func Load() (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		Web: WebConfig{
			ListenAddr: getEnv("WEB_LISTEN_ADDR", ":8080"),
		},
		Diagnosis: DiagnosisConfig{
			ApiKey:  os.Getenv("PLANT_ID_API_KEY"),
			BaseURL: getEnv("PLANT_ID_API_URL", "https://api.plant.id/v2"),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "gemini"),
			Model:    getEnv("LLM_MODEL", "gemini-1.5-flash"),
			ApiKey:   os.Getenv("GEMINI_API_KEY"),
			BaseURL:  os.Getenv("LLM_URL"),
		},
	}

	if path := getEnv("CONFIG_FILE", "config.yaml"); path != "" {
		if err := applyYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func applyYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
