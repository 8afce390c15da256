package generator

import "context"

// Client abstracts the generation model so backends can be swapped or mocked.
// Complete must return the raw model text for the given prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings holds the base configuration for a concrete client.
type Settings struct {
	Provider AIProvider
	Model    string
	APIKey   string
	BaseURL  string
}
