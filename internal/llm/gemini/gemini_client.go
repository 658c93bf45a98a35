package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.5-flash-lite"
)

func init() {
	llm.RegisterProvider(providerName, func(cfg *config.GenerationConfig) (port.Generator, error) {
		return NewClient(context.Background(), cfg)
	})
}

// Client implements port.Generator using the Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient creates a Gemini client. cfg.Endpoint overrides the API base URL.
func NewClient(ctx context.Context, cfg *config.GenerationConfig) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (c *Client) Name() string { return providerName }

func (c *Client) Generate(ctx context.Context, in port.GenerationRequest) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: in.Prompt}},
		},
	}
	temperature := c.temperature

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: in.System}}},
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}
