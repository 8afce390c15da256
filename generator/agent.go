package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Agent runs the generation pipeline: prompt, model call, response parsing,
// and image-directive post-processing.
type Agent struct {
	llm    Client
	images ImageSource
}

// NewAgent wires a generation client and an optional image source. A nil
// images source disables directive resolution entirely.
func NewAgent(llm Client, images ImageSource) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm, images: images}, nil
}

// Generate produces a complete content bundle for the given params.
func (a *Agent) Generate(ctx context.Context, params Params) (ContentBundle, error) {
	if strings.TrimSpace(params.MainKeywords) == "" {
		return ContentBundle{}, errors.New("main keywords are required")
	}
	if params.PublicationFormat != "" && !ValidFormat(params.PublicationFormat) {
		return ContentBundle{}, fmt.Errorf("publication format %s not supported", params.PublicationFormat)
	}
	if params.PublicationFormat == "" {
		params.PublicationFormat = "blog-post"
	}

	raw, err := a.llm.Complete(ctx, BuildContentPrompt(params))
	if err != nil {
		return ContentBundle{}, err
	}
	bundle, err := ParseBundle(raw)
	if err != nil {
		return ContentBundle{}, err
	}

	if params.IncludeImages && a.images != nil && strings.Contains(bundle.HTMLContent, directiveMarker) {
		bundle.HTMLContent = ResolveImageDirectives(ctx, bundle.HTMLContent, a.images)
	}
	return bundle, nil
}
