package generator

import (
	"fmt"
	"regexp"
	"strings"
)

// The markdown export runs these passes in order; later passes assume the
// wrapper divs are already gone.
var (
	wrapperOpenRe  = regexp.MustCompile(`(?i)<div class="seo-gen-content">`)
	wrapperCloseRe = regexp.MustCompile(`(?i)</div>`)
	h1Re           = regexp.MustCompile(`(?is)<h1.*?>(.*?)</h1>`)
	h2Re           = regexp.MustCompile(`(?is)<h2.*?>(.*?)</h2>`)
	h3Re           = regexp.MustCompile(`(?is)<h3.*?>(.*?)</h3>`)
	pRe            = regexp.MustCompile(`(?is)<p.*?>(.*?)</p>`)
	liRe           = regexp.MustCompile(`(?is)<li.*?>(.*?)</li>`)
	residualTagRe  = regexp.MustCompile(`(?is)<.*?>`)
)

// ExportFullDocument wraps the bundle into one self-contained HTML document:
// standard head boilerplate, the generated CSS after the fixed resets, the
// JSON-LD script block, and the generated JS at the end of the body.
func ExportFullDocument(bundle ContentBundle) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <meta name="description" content="%s">
    <style>
      /* AI Generated Prefixed Styles */
      %s

      /* Global Resets & App Integration */
      body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; }
      img { max-width: 100%%; height: auto; display: block; }
      .seo-gen-img { border-radius: 8px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); margin: 2rem auto; }
      .seo-container { max-width: 800px; margin: 0 auto; padding: 40px 20px; box-sizing: border-box; }
    </style>
    <script type="application/ld+json">
      %s
    </script>
</head>
<body>
    <div class="seo-container">
      %s
    </div>
    <script>
      %s
    </script>
</body>
</html>`,
		bundle.MetaTitle, bundle.MetaDescription, bundle.CSSContent,
		bundle.JSONLD, bundle.HTMLContent, bundle.JSContent)
}

// ExportMarkdown converts the bundle to a lossy plain-markup form. The
// substitution passes are order-dependent: wrapper removal first, then
// heading, paragraph, and list-item conversion, then residual-tag stripping.
func ExportMarkdown(bundle ContentBundle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", bundle.MetaTitle)
	fmt.Fprintf(&b, "**Meta Description:** %s\n\n---\n\n", bundle.MetaDescription)

	clean := bundle.HTMLContent
	clean = wrapperOpenRe.ReplaceAllString(clean, "")
	clean = wrapperCloseRe.ReplaceAllString(clean, "")
	clean = h1Re.ReplaceAllString(clean, "# $1\n")
	clean = h2Re.ReplaceAllString(clean, "## $1\n")
	clean = h3Re.ReplaceAllString(clean, "### $1\n")
	clean = pRe.ReplaceAllString(clean, "$1\n\n")
	clean = liRe.ReplaceAllString(clean, "* $1\n")
	clean = residualTagRe.ReplaceAllString(clean, "")

	b.WriteString(clean)
	return b.String()
}

// ExportPlainText renders the bundle as visible text only, prefixed with the
// title and description lines.
func ExportPlainText(bundle ContentBundle) string {
	return fmt.Sprintf("TITLE: %s\nDESCRIPTION: %s\n\nCONTENT:\n%s",
		bundle.MetaTitle, bundle.MetaDescription, VisibleText(bundle.HTMLContent))
}

// ExportWidget concatenates style, markup, and script for pasting into a
// page-builder HTML widget. The CSS is already prefixed so it will not leak
// into the surrounding theme.
func ExportWidget(bundle ContentBundle) string {
	return strings.TrimSpace(fmt.Sprintf(`
<style>
%s
</style>
%s
<script>
%s
</script>
`, bundle.CSSContent, bundle.HTMLContent, bundle.JSContent))
}
