package openai

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

// OpenAIConfig implements the SummaryProvider interface for any
// OpenAI-compatible chat completions endpoint (OpenAI itself, Azure
// gateways, local Ollama in compatibility mode, OpenRouter).
type OpenAIConfig struct {
	BaseURL     string
	Model       string
	ApiKey      string
	Temperature *float32
}

const defaultBaseURL = "https://api.openai.com/v1"

// NewOpenAISummaryProvider initializes a new OpenAI-compatible provider.
func NewOpenAISummaryProvider(config *OpenAIConfig) contracts.SummaryProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:     baseURL,
		Model:       config.Model,
		ApiKey:      config.ApiKey,
		Temperature: config.Temperature,
	}
}

func (p *OpenAIConfig) Enabled() bool {
	return p.ApiKey != ""
}

func (p *OpenAIConfig) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	return p.complete(ctx, models.SummaryPrompt(req))
}

func (p *OpenAIConfig) GenerateRules(ctx context.Context, req models.SummaryRequest) (json.RawMessage, error) {
	text, err := p.complete(ctx, models.RulesPrompt(req))
	if err != nil {
		return nil, err
	}

	rules := models.ExtractJSONObject(text)
	if rules == nil {
		return nil, fmt.Errorf("no JSON object found in model response")
	}
	return rules, nil
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIConfig) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: p.Model,
		Messages: []message{
			{Role: "system", Content: "You are a project analysis assistant."},
			{Role: "user", Content: prompt},
		},
		Temperature: p.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", p.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)

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

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
