package generator

import (
	"context"
	"encoding/json"
)

// MockClient is a local placeholder backend that never calls a model. Useful
// for wiring checks and offline demos.
type MockClient struct{}

func (m MockClient) Complete(_ context.Context, prompt string) (string, error) {
	bundle := ContentBundle{
		Strategy: StrategyReport{
			CompetitorAnalysis: []CompetitorFinding{{
				URL:               "https://example.com",
				PerformanceScore:  72,
				Demographics:      "General audience",
				MarketingStrategy: "Broad keyword targeting",
				Strengths:         "Established domain",
				Failures:          "Thin content",
				GapIdentified:     "No structured data",
			}},
			GapAnalysis:              "Competitors lack depth on the core topic.",
			ContentPlan:              "## Plan\n\n1. Intro\n2. Deep dive\n3. FAQ",
			ProjectedTrafficIncrease: 25,
		},
		HTMLContent: `<div class="seo-gen-content"><h1>Sample generated article</h1>` +
			`<h2>First section</h2><p>Placeholder body text.</p>` +
			`<h2>Second section</h2><p>More placeholder text.</p></div>`,
		CSSContent:      ".seo-gen-content h2 { margin-top: 1.5em; }",
		JSContent:       "",
		JSONLD:          `{"@context":"https://schema.org","@type":"Article","headline":"Sample generated article"}`,
		MetaTitle:       "Sample generated article about the requested topic",
		MetaDescription: "A locally generated placeholder article used to exercise the pipeline without calling a model API. Not for publication.",
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
