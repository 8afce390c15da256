package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient implements Client using the official openai-go SDK (chat
// completions with a JSON-schema response format).
type OpenAIClient struct {
	model      string
	opts       []option.RequestOption
	schemaName string
	schema     map[string]any
}

func newOpenAIClient(cfg Settings, schemaName string, schema map[string]any) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set openai_key or OPENAI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{model: model, opts: opts, schemaName: schemaName, schema: schema}, nil
}

// NewOpenAIContentClient builds a client constrained to the ContentBundle schema.
func NewOpenAIContentClient(cfg Settings) (*OpenAIClient, error) {
	return newOpenAIClient(cfg, "content_bundle", contentBundleJSONSchema())
}

// NewOpenAIEvaluator builds a client constrained to the evaluation schema.
func NewOpenAIEvaluator(cfg Settings) (*OpenAIClient, error) {
	return newOpenAIClient(cfg, "seo_evaluation", evaluationJSONSchema())
}

func (o *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You answer with a single JSON document and nothing else."),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   o.schemaName,
					Schema: o.schema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
