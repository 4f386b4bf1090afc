package config

import (
	"os"
	"strconv"
	"time"
)

// GenerationConfig mirrors the Gemini generationConfig block sent with every request
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey     string           `json:"-"` // Never serialize
	BaseURL    string           `json:"baseUrl"`
	Model      string           `json:"model"`
	Generation GenerationConfig `json:"generation"`
	TimeoutMS  int              `json:"timeoutMs"`
}

// RetryConfig controls the quota-aware retry loop around the Gemini call
type RetryConfig struct {
	MaxRetries     int     `json:"maxRetries"`
	InitialDelayMS int     `json:"initialDelayMs"`
	Multiplier     float64 `json:"multiplier"`
	MaxJitterMS    int     `json:"maxJitterMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Model:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		Generation: GenerationConfig{
			Temperature:     getEnvFloat("GEMINI_TEMPERATURE", 0.4),
			TopK:            getEnvInt("GEMINI_TOP_K", 32),
			TopP:            getEnvFloat("GEMINI_TOP_P", 0.95),
			MaxOutputTokens: getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", 1024),
		},
		TimeoutMS: getEnvInt("GEMINI_TIMEOUT_MS", 15000),
	}
}

// DefaultRetryConfig returns the default retry policy settings
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     getEnvInt("RETRY_MAX", 3),
		InitialDelayMS: getEnvInt("RETRY_INITIAL_DELAY_MS", 1000),
		Multiplier:     getEnvFloat("RETRY_MULTIPLIER", 2),
		MaxJitterMS:    getEnvInt("RETRY_MAX_JITTER_MS", 1000),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for the configured model
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}

// Timeout returns the HTTP timeout for a single Gemini call
func (c *AIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// InitialDelay returns the first backoff delay
func (c *RetryConfig) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMS) * time.Millisecond
}

// MaxJitter returns the upper bound of the random jitter added to each delay
func (c *RetryConfig) MaxJitter() time.Duration {
	return time.Duration(c.MaxJitterMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
