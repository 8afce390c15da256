package generator

import (
	"fmt"
	"strings"
)

// SplitCompetitorURLs splits the free-form competitor field on newlines and
// commas, dropping empties.
func SplitCompetitorURLs(raw string) []string {
	var urls []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// BuildContentPrompt renders the generation prompt for a set of SEO params.
// The model is expected to answer with a single JSON document matching
// contentBundleSchema.
func BuildContentPrompt(p Params) string {
	urls := SplitCompetitorURLs(p.CompetitorURLs)

	var urlSection string
	if len(urls) > 0 {
		var b strings.Builder
		b.WriteString("ANALYZE THESE SPECIFIC URLS USING GOOGLE SEARCH:\n")
		for i, u := range urls {
			fmt.Fprintf(&b, "%d. %s\n", i+1, u)
		}
		urlSection = b.String()
	} else {
		urlSection = "SEARCH GOOGLE FOR THE TOP 5 RESULTS ON THE TOPIC AND ANALYZE THE GAPS."
	}

	var sb strings.Builder
	sb.WriteString("YOU ARE A SENIOR SEO STRATEGIST.\n")
	sb.WriteString("GOAL: OUTRANK THE COMPETITION FOR POSITION #1 ON GOOGLE.\n")
	fmt.Fprintf(&sb, "TOPIC: %s\n", p.MainKeywords)
	fmt.Fprintf(&sb, "FORMAT: %s\n", strings.ToUpper(p.PublicationFormat))
	if p.ContentTone != "" {
		fmt.Fprintf(&sb, "TONE: %s\n", p.ContentTone)
	}
	if p.Language != "" {
		fmt.Fprintf(&sb, "OUTPUT LANGUAGE: %s\n", p.Language)
	}
	if p.OrganicKeywords != "" {
		fmt.Fprintf(&sb, "SECONDARY ORGANIC KEYWORDS: %s\n", p.OrganicKeywords)
	}
	if p.SnippetKeywords != "" {
		fmt.Fprintf(&sb, "FEATURED-SNIPPET KEYWORDS: %s\n", p.SnippetKeywords)
	}
	if p.CTAText != "" {
		fmt.Fprintf(&sb, "CALL TO ACTION: %q linking to %s\n", p.CTAText, p.CTAURL)
	}
	sb.WriteString(urlSection)
	sb.WriteString("\n")

	if p.IncludeImages {
		sb.WriteString(`
TASK 1: CONTEXTUAL IMAGES PER TOPIC
- Insert placeholders: [[IMAGE_PROMPT: description | NEGATIVE_PROMPT: things to avoid]].
- CRITICAL: image descriptions must be HIGHLY SPECIFIC to the content of each generated section. Never use generic descriptions.
- If the topic is "Processor Performance", the image must be about high-tech hardware, not just "a computer".
`)
	}

	sb.WriteString(`
TASK 2: WORDPRESS-SAFE CSS (PREFIXED)
- The HTML content will be wrapped in a <div class="seo-gen-content">.
- Generated CSS MUST be prefixed with ".seo-gen-content" to avoid clashes with WordPress themes.
- Example: .seo-gen-content h2 { ... } instead of plain h2 { ... }.

TASK 3: ADVANCED SCHEMA
- If the format is 'video-article', the VideoObject MUST include:
    * name, description (based on the content).
    * thumbnailUrl (placeholder: "https://via.placeholder.com/1280x720.png?text=Thumbnail+Video").
    * uploadDate (current ISO format).
    * contentUrl (placeholder: "https://example.com/video.mp4").

TASK 4: SEMANTIC CONTENT
- Wrap the entire htmlContent in <div class="seo-gen-content">...</div>.
- Use plain HTML5.

RETURN ONLY THE JSON.
`)

	return sb.String()
}

// BuildEvaluationPrompt renders the SEO-quality evaluation prompt for an
// existing post. content is the rendered post body, already truncated by the
// caller.
func BuildEvaluationPrompt(title, content string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following WordPress post for SEO optimization quality.\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "Content Preview: %s\n\n", content)
	sb.WriteString(`Evaluate based on:
1. Title keyword strength.
2. Content depth and semantic richness.
3. Mobile responsiveness (predictive based on HTML tags).
4. Readiness for search ranking.

Return a JSON object with:
- score: (number 0-100)
- status: ("optimized" if 80+, "needs-work" if 50-79, "poor" if <50)
- analysis: (short 1-2 sentence description)
- suggestions: (array of strings for improvement)
`)
	return sb.String()
}
