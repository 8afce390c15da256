package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultImageModel       = "gemini-2.5-flash-image"
	defaultUnsplashBase     = "https://images.unsplash.com"
	defaultLoremFlickrBase  = "https://loremflickr.com"
	defaultPollinationsBase = "https://image.pollinations.ai"
)

// GenerativeImager is the native image-generation collaborator. It returns
// inline image bytes, or nil data when no image part is present.
type GenerativeImager interface {
	GenerateImage(ctx context.Context, prompt string) (mimeType string, data []byte, err error)
}

// Resolver dispatches directive resolution to one of the supported image
// providers, keyed by provider tag. It implements ImageSource.
type Resolver struct {
	provider ImageProvider
	client   *http.Client
	gen      GenerativeImager

	unsplashBase     string
	loremFlickrBase  string
	pollinationsBase string
}

// NewResolver creates a resolver for the given provider. client may be nil
// (a 60s-timeout default is used); gen is only needed for the gemini provider.
func NewResolver(provider ImageProvider, client *http.Client, gen GenerativeImager) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Resolver{
		provider:         provider,
		client:           client,
		gen:              gen,
		unsplashBase:     defaultUnsplashBase,
		loremFlickrBase:  defaultLoremFlickrBase,
		pollinationsBase: defaultPollinationsBase,
	}
}

// Image resolves one directive against the configured provider.
func (r *Resolver) Image(ctx context.Context, prompt, negativePrompt string) (string, error) {
	switch r.provider {
	case ImageUnsplash:
		return fmt.Sprintf("%s/photo-1557838923-2985c318be48?auto=format&fit=crop&w=1280&q=80&keywords=%s",
			r.unsplashBase, shortQuery(prompt)), nil
	case ImageLoremFlickr:
		return fmt.Sprintf("%s/1280/720/%s", r.loremFlickrBase, shortQuery(prompt)), nil
	case ImagePollinations:
		return r.pollinations(ctx, prompt, negativePrompt)
	case ImageGemini:
		return r.generative(ctx, prompt, negativePrompt)
	default:
		return "", fmt.Errorf("image provider %s not supported", r.provider)
	}
}

// shortQuery derives a stock-photo search query from the first 5 words of the
// prompt.
func shortQuery(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 5 {
		words = words[:5]
	}
	return url.QueryEscape(strings.Join(words, " "))
}

// pollinations fetches a dynamically generated image. On any fetch failure it
// falls back to returning the raw URL itself so the page still has a working
// image reference.
func (r *Resolver) pollinations(ctx context.Context, prompt, negativePrompt string) (string, error) {
	full := prompt
	if negativePrompt != "" {
		full += " | Avoid: " + negativePrompt
	}
	imageURL := fmt.Sprintf("%s/prompt/%s?nologo=true&enhance=true&width=1280&height=720",
		r.pollinationsBase, url.QueryEscape(full))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return imageURL, nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return imageURL, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return imageURL, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return imageURL, nil
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return dataURI(mimeType, data), nil
}

func (r *Resolver) generative(ctx context.Context, prompt, negativePrompt string) (string, error) {
	if r.gen == nil {
		return "", errors.New("generative image client not configured")
	}
	styled := prompt + ". Ultra-realistic, high resolution, 8k, professional lighting, centered composition."
	if negativePrompt != "" {
		styled += fmt.Sprintf(" (Avoid: %s)", negativePrompt)
	}
	mimeType, data, err := r.gen.GenerateImage(ctx, styled)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	return dataURI(mimeType, data), nil
}

func dataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// GeminiImager implements GenerativeImager with the Google GenAI SDK.
type GeminiImager struct {
	client *genai.Client
	model  string
}

// NewGeminiImager creates the native image-generation client.
func NewGeminiImager(cfg Settings) (*GeminiImager, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; set gemini_key or GEMINI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = defaultImageModel
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiImager{client: client, model: model}, nil
}

func (g *GeminiImager) GenerateImage(ctx context.Context, prompt string) (string, []byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "16:9"},
	})
	if err != nil {
		return "", nil, fmt.Errorf("gemini image generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.MIMEType, part.InlineData.Data, nil
		}
	}
	return "", nil, nil
}
