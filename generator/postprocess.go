package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// directiveMarker is the cheap containment check before running the full scan.
const directiveMarker = "[[IMAGE_PROMPT:"

// directivePattern matches inline image placeholders emitted by the model:
// [[IMAGE_PROMPT: <prompt> | NEGATIVE_PROMPT: <negative>]], negative clause
// optional. Unterminated directives simply do not match and are left alone.
var directivePattern = regexp.MustCompile(`\[\[IMAGE_PROMPT:\s*(.*?)(?:\s*\|\s*NEGATIVE_PROMPT:\s*(.*?))?\]\]`)

// ImageSource resolves one directive prompt to an image reference (URL or
// data URI). An empty reference means "no usable image".
type ImageSource interface {
	Image(ctx context.Context, prompt, negativePrompt string) (string, error)
}

// ParseBundle validates the raw model response and decodes it into a
// ContentBundle. An empty or unparseable response is a hard failure.
func ParseBundle(raw string) (ContentBundle, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ContentBundle{}, errors.New("model returned empty response")
	}
	trimmed = stripCodeFence(trimmed)

	var bundle ContentBundle
	if err := json.Unmarshal([]byte(trimmed), &bundle); err != nil {
		return ContentBundle{}, fmt.Errorf("failed to parse model response: %w", err)
	}
	if bundle.MetaTitle == "" || bundle.HTMLContent == "" || bundle.JSONLD == "" {
		return ContentBundle{}, errors.New("model response missing metaTitle, htmlContent, or jsonLd")
	}
	return bundle, nil
}

// Some backends wrap JSON answers in a markdown fence despite the schema
// constraint; strip it before decoding.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractImageDirectives scans htmlContent once, left to right, collecting
// every non-overlapping directive.
func ExtractImageDirectives(htmlContent string) []ImageDirective {
	matches := directivePattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}
	directives := make([]ImageDirective, 0, len(matches))
	for _, m := range matches {
		directives = append(directives, ImageDirective{
			RawToken:       m[0],
			Prompt:         strings.TrimSpace(m[1]),
			NegativePrompt: strings.TrimSpace(m[2]),
		})
	}
	return directives
}

// ResolveImageDirectives replaces every directive in htmlContent with the
// image reference produced by src, and returns the rewritten HTML. All
// resolutions run concurrently; a failed or empty resolution deletes that
// directive instead of aborting the pass. The input string is never mutated.
func ResolveImageDirectives(ctx context.Context, htmlContent string, src ImageSource) string {
	directives := ExtractImageDirectives(htmlContent)
	if len(directives) == 0 {
		return htmlContent
	}

	images := make([]string, len(directives))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range directives {
		g.Go(func() error {
			ref, err := src.Image(gctx, d.Prompt, d.NegativePrompt)
			if err != nil {
				// Degrades to deletion; sibling resolutions keep running.
				return nil
			}
			images[i] = ref
			return nil
		})
	}
	_ = g.Wait()

	out := htmlContent
	for i, d := range directives {
		out = strings.Replace(out, d.RawToken, imageTag(images[i], d.Prompt), 1)
	}
	return out
}

// imageTag renders the replacement markup, or an empty string when no image
// was resolved.
func imageTag(ref, prompt string) string {
	if ref == "" {
		return ""
	}
	alt := strings.ReplaceAll(prompt, `"`, "&quot;")
	return fmt.Sprintf(`<img src="%s" alt="%s" class="seo-gen-img" loading="lazy" />`, ref, alt)
}
