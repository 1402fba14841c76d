package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Shahfarzane/CursorFocus/providers/contracts"
	"github.com/Shahfarzane/CursorFocus/providers/models"
)

// GeminiConfig implements the SummaryProvider interface for the Google
// generative language REST API.
type GeminiConfig struct {
	BaseURL     string
	Model       string
	ApiKey      string
	Temperature *float32
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// NewGeminiSummaryProvider initializes a new Gemini-backed provider.
func NewGeminiSummaryProvider(config *GeminiConfig) contracts.SummaryProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiConfig{
		BaseURL:     baseURL,
		Model:       config.Model,
		ApiKey:      config.ApiKey,
		Temperature: config.Temperature,
	}
}

func (p *GeminiConfig) Enabled() bool {
	return p.ApiKey != ""
}

func (p *GeminiConfig) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	return p.generate(ctx, models.SummaryPrompt(req))
}

func (p *GeminiConfig) GenerateRules(ctx context.Context, req models.SummaryRequest) (json.RawMessage, error) {
	text, err := p.generate(ctx, models.RulesPrompt(req))
	if err != nil {
		return nil, err
	}

	rules := models.ExtractJSONObject(text)
	if rules == nil {
		return nil, fmt.Errorf("no JSON object found in model response")
	}
	return rules, nil
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiConfig) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     p.Temperature,
			MaxOutputTokens: 8192,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.BaseURL, p.Model, p.ApiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error.Message != "" {
			return "", fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
		}
		return "", fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
	}

	var response generateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}
