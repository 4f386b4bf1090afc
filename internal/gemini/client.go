// Package gemini is a minimal client for the Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"peacemaker/internal/config"
)

var (
	ErrEmptyResponse = errors.New("empty response from Gemini")
	ErrPromptBlocked = errors.New("prompt blocked by Gemini")
	ErrNoAPIKey      = errors.New("gemini api key required")
)

// APIError is a non-2xx answer from the Gemini API
type APIError struct {
	Code    int
	Status  string // e.g. RESOURCE_EXHAUSTED
	Message string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini api error %d (%s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error %d: %s", e.Code, e.Message)
}

// StatusCode exposes the HTTP status for retry classification
func (e *APIError) StatusCode() int {
	return e.Code
}

// Client calls generateContent for one configured model
type Client struct {
	config     *config.AIConfig
	httpClient *http.Client
}

// NewClient creates a Gemini client. A nil httpClient gets the configured timeout.
func NewClient(cfg *config.AIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{config: cfg, httpClient: httpClient}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt and returns the text of the first candidate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.config.IsEnabled() {
		return "", ErrNoAPIKey
	}

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Generation.Temperature,
			TopK:            c.config.Generation.TopK,
			TopP:            c.config.Generation.TopP,
			MaxOutputTokens: c.config.Generation.MaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	endpoint := c.config.ModelEndpoint() + "?key=" + url.QueryEscape(c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("gemini: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: http error: %w", redactKey(err, c.config.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read body: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("[Gemini] ERROR: API returned %d (%d bytes)", resp.StatusCode, len(body))
		return "", parseAPIError(resp.StatusCode, body)
	}

	var geminiResp generateResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if fb := geminiResp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrPromptBlocked, fb.BlockReason)
	}

	if len(geminiResp.Candidates) > 0 {
		var sb strings.Builder
		for _, p := range geminiResp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyResponse
}

// HealthCheck issues a tiny request to verify the key and model are usable
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Generate(ctx, `Respond with {"ok":true}`)
	return err
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{Code: statusCode, Message: strings.TrimSpace(string(body))}
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		apiErr.Status = parsed.Error.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// url.Error embeds the request URL, which carries the key as a query parameter
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(key), "REDACTED")
	}
	return err
}
