package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultContentModel    = "gemini-3-pro-preview"
	defaultEvaluationModel = "gemini-3-flash-preview"
)

// GeminiClient implements Client on top of the Google GenAI SDK. The response
// schema is fixed at construction so one client serves exactly one contract.
type GeminiClient struct {
	client  *genai.Client
	model   string
	schema  *genai.Schema
	search  bool
	limiter *rate.Limiter
}

func newGeminiClient(cfg Settings, model string, schema *genai.Schema, search bool) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; set gemini_key or GEMINI_API_KEY")
	}
	if cfg.Model != "" {
		model = cfg.Model
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  model,
		schema: schema,
		search: search,
		// Keep at least 100ms between requests to stay under burst limits.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}, nil
}

// NewGeminiContentClient builds a client constrained to the ContentBundle
// schema, with Google Search grounding enabled for competitor analysis.
func NewGeminiContentClient(cfg Settings) (*GeminiClient, error) {
	return newGeminiClient(cfg, defaultContentModel, contentBundleSchema(), true)
}

// NewGeminiEvaluator builds a client constrained to the evaluation schema.
func NewGeminiEvaluator(cfg Settings) (*GeminiClient, error) {
	return newGeminiClient(cfg, defaultEvaluationModel, evaluationSchema(), false)
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.schema,
	}
	if g.search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
