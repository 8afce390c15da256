package generator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a deterministic ImageSource for post-processing tests.
type stubSource struct {
	ref   string
	err   error
	calls atomic.Int32
}

func (s *stubSource) Image(_ context.Context, prompt, _ string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	if s.ref == "" {
		return "", nil
	}
	return s.ref + "/" + prompt, nil
}

func TestExtractImageDirectives_WithNegativePrompt(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: red bicycle | NEGATIVE_PROMPT: blur]]</p>`
	directives := ExtractImageDirectives(html)
	require.Len(t, directives, 1)
	assert.Equal(t, "[[IMAGE_PROMPT: red bicycle | NEGATIVE_PROMPT: blur]]", directives[0].RawToken)
	assert.Equal(t, "red bicycle", directives[0].Prompt)
	assert.Equal(t, "blur", directives[0].NegativePrompt)
}

func TestExtractImageDirectives_PromptOnly(t *testing.T) {
	directives := ExtractImageDirectives(`before [[IMAGE_PROMPT: mountain lake]] after`)
	require.Len(t, directives, 1)
	assert.Equal(t, "mountain lake", directives[0].Prompt)
	assert.Empty(t, directives[0].NegativePrompt)
}

func TestExtractImageDirectives_LeftToRightOrder(t *testing.T) {
	html := `[[IMAGE_PROMPT: first]] middle [[IMAGE_PROMPT: second]] [[IMAGE_PROMPT: third]]`
	directives := ExtractImageDirectives(html)
	require.Len(t, directives, 3)
	assert.Equal(t, "first", directives[0].Prompt)
	assert.Equal(t, "second", directives[1].Prompt)
	assert.Equal(t, "third", directives[2].Prompt)
}

func TestExtractImageDirectives_UnterminatedLeftAlone(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: never closed</p>`
	assert.Empty(t, ExtractImageDirectives(html))

	out := ResolveImageDirectives(context.Background(), html, &stubSource{ref: "https://img"})
	assert.Equal(t, html, out, "unmatched directives stay in place")
}

func TestResolveImageDirectives_NoImageDeletesDirective(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: red bicycle | NEGATIVE_PROMPT: blur]]</p>`
	out := ResolveImageDirectives(context.Background(), html, &stubSource{})
	assert.Equal(t, "<p></p>", out)
}

func TestResolveImageDirectives_ErrorDegradesToDeletion(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: red bicycle]]</p><p>[[IMAGE_PROMPT: blue car]]</p>`
	src := &stubSource{err: errors.New("provider down")}
	out := ResolveImageDirectives(context.Background(), html, src)
	assert.Equal(t, "<p></p><p></p>", out)
	assert.Equal(t, int32(2), src.calls.Load(), "sibling resolutions still run")
}

func TestResolveImageDirectives_ReplacesWithImageTag(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: red bicycle]]</p>`
	out := ResolveImageDirectives(context.Background(), html, &stubSource{ref: "https://img"})
	assert.Equal(t, `<p><img src="https://img/red bicycle" alt="red bicycle" class="seo-gen-img" loading="lazy" /></p>`, out)
}

func TestResolveImageDirectives_EscapesAltQuotes(t *testing.T) {
	html := `[[IMAGE_PROMPT: a "quoted" thing]]`
	out := ResolveImageDirectives(context.Background(), html, &stubSource{ref: "https://img"})
	assert.Contains(t, out, `alt="a &quot;quoted&quot; thing"`)
}

func TestResolveImageDirectives_IdenticalTokensShareReplacement(t *testing.T) {
	token := `[[IMAGE_PROMPT: sunset over hills]]`
	html := fmt.Sprintf("<p>%s</p><p>%s</p>", token, token)
	out := ResolveImageDirectives(context.Background(), html, &stubSource{ref: "https://img"})
	want := `<img src="https://img/sunset over hills" alt="sunset over hills" class="seo-gen-img" loading="lazy" />`
	assert.Equal(t, fmt.Sprintf("<p>%s</p><p>%s</p>", want, want), out)
	assert.NotContains(t, out, "IMAGE_PROMPT")
}

func TestResolveImageDirectives_InputNotMutated(t *testing.T) {
	html := `<p>[[IMAGE_PROMPT: red bicycle]]</p>`
	_ = ResolveImageDirectives(context.Background(), html, &stubSource{})
	assert.Equal(t, `<p>[[IMAGE_PROMPT: red bicycle]]</p>`, html)
}

func TestParseBundle_EmptyResponse(t *testing.T) {
	_, err := ParseBundle("   \n ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseBundle_InvalidJSON(t *testing.T) {
	_, err := ParseBundle("{broken")
	require.Error(t, err)
}

func TestParseBundle_MissingRequiredFields(t *testing.T) {
	_, err := ParseBundle(`{"metaTitle":"t","htmlContent":""}`)
	require.Error(t, err)
}

func TestParseBundle_StripsCodeFence(t *testing.T) {
	raw := "```json\n" +
		`{"metaTitle":"t","metaDescription":"d","htmlContent":"<h1>x</h1>","jsonLd":"{}"}` +
		"\n```"
	bundle, err := ParseBundle(raw)
	require.NoError(t, err)
	assert.Equal(t, "t", bundle.MetaTitle)
	assert.Equal(t, "<h1>x</h1>", bundle.HTMLContent)
}

func TestParseBundle_FullShape(t *testing.T) {
	raw := `{
		"strategy": {
			"competitorAnalysis": [{
				"url": "https://rival.example",
				"performanceScore": 88,
				"demographics": "tech buyers",
				"marketingStrategy": "paid search",
				"strengths": "brand",
				"failures": "no schema",
				"gapIdentified": "thin FAQs"
			}],
			"gapAnalysis": "gaps",
			"contentPlan": "plan",
			"projectedTrafficIncrease": 40
		},
		"htmlContent": "<h1>x</h1>",
		"cssContent": ".seo-gen-content h2{}",
		"jsContent": "",
		"jsonLd": "{\"@type\":\"Article\"}",
		"metaTitle": "t",
		"metaDescription": "d"
	}`
	bundle, err := ParseBundle(raw)
	require.NoError(t, err)
	require.Len(t, bundle.Strategy.CompetitorAnalysis, 1)
	assert.Equal(t, "https://rival.example", bundle.Strategy.CompetitorAnalysis[0].URL)
	assert.Equal(t, float64(88), bundle.Strategy.CompetitorAnalysis[0].PerformanceScore)
	assert.Equal(t, float64(40), bundle.Strategy.ProjectedTrafficIncrease)
}
