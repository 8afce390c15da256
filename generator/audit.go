package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

const (
	titleMin = 45
	titleMax = 65
	descMin  = 110
	descMax  = 160

	depthThreshold = 600
)

// Audit runs the heuristic SEO checklist over a bundle and returns the
// findings in fixed order: title, description, h1, h2, structured data (plus
// rich-snippet bonuses), content depth. Pure; never touches the network and
// never mutates the bundle.
func Audit(bundle ContentBundle) []AuditFinding {
	findings := make([]AuditFinding, 0, 8)

	titleLen := utf8.RuneCountInString(bundle.MetaTitle)
	if titleLen >= titleMin && titleLen <= titleMax {
		findings = append(findings, AuditFinding{
			Label:   "Meta Title",
			Status:  AuditSuccess,
			Message: fmt.Sprintf("Excellent length (%d characters). Fully visible on the SERP.", titleLen),
		})
	} else {
		findings = append(findings, AuditFinding{
			Label:   "Meta Title",
			Status:  AuditWarning,
			Message: fmt.Sprintf("Length of %d characters. Aim for 45-65 to avoid truncation.", titleLen),
		})
	}

	descLen := utf8.RuneCountInString(bundle.MetaDescription)
	if descLen >= descMin && descLen <= descMax {
		findings = append(findings, AuditFinding{
			Label:   "Meta Description",
			Status:  AuditSuccess,
			Message: fmt.Sprintf("Great length (%d characters). CTR optimized.", descLen),
		})
	} else {
		findings = append(findings, AuditFinding{
			Label:   "Meta Description",
			Status:  AuditWarning,
			Message: fmt.Sprintf("Length of %d characters. Aim for 110-160.", descLen),
		})
	}

	h1Count, h2Count := countHeadings(bundle.HTMLContent)
	switch {
	case h1Count == 1:
		findings = append(findings, AuditFinding{
			Label:   "H1 Tags",
			Status:  AuditSuccess,
			Message: "Single H1 detected. Perfect for semantic relevance.",
		})
	case h1Count == 0:
		findings = append(findings, AuditFinding{
			Label:   "H1 Tags",
			Status:  AuditError,
			Message: "Missing H1 tag. SEO requires exactly ONE.",
		})
	default:
		findings = append(findings, AuditFinding{
			Label:   "H1 Tags",
			Status:  AuditError,
			Message: fmt.Sprintf("Detected %d H1 tags. SEO requires exactly ONE.", h1Count),
		})
	}

	if h2Count >= 2 {
		findings = append(findings, AuditFinding{
			Label:   "H2 Tags",
			Status:  AuditSuccess,
			Message: fmt.Sprintf("%d subtopics (H2) found. Good scannability.", h2Count),
		})
	} else {
		findings = append(findings, AuditFinding{
			Label:   "H2 Tags",
			Status:  AuditWarning,
			Message: "Too few subtopics (H2). Consider splitting the content for easier reading.",
		})
	}

	findings = auditStructuredData(bundle.JSONLD, findings)

	wordCount := len(strings.Fields(VisibleText(bundle.HTMLContent)))
	if wordCount > depthThreshold {
		findings = append(findings, AuditFinding{
			Label:   "Content Depth",
			Status:  AuditSuccess,
			Message: fmt.Sprintf("Dense content with approx. %d words.", wordCount),
		})
	} else {
		findings = append(findings, AuditFinding{
			Label:   "Content Depth",
			Status:  AuditWarning,
			Message: fmt.Sprintf("Short content (%d words). Articles above 1000 words rank better.", wordCount),
		})
	}

	return findings
}

// auditStructuredData appends the structured-data findings: one error on
// malformed JSON-LD, otherwise one detection finding plus up to two
// rich-snippet bonus findings (FAQPage, VideoObject). Both bonuses can fire
// in the same pass.
func auditStructuredData(jsonLD string, findings []AuditFinding) []AuditFinding {
	if !gjson.Valid(jsonLD) {
		return append(findings, AuditFinding{
			Label:   "Structured Data",
			Status:  AuditError,
			Message: "JSON-LD invalid or malformed.",
		})
	}

	root := gjson.Parse(jsonLD).Map()
	var types []string
	if graph, ok := root["@graph"]; ok && graph.IsArray() {
		for _, node := range graph.Array() {
			types = append(types, typeNames(node.Map()["@type"])...)
		}
	} else {
		types = append(types, typeNames(root["@type"])...)
	}

	findings = append(findings, AuditFinding{
		Label:   "Structured Data",
		Status:  AuditSuccess,
		Message: fmt.Sprintf("Detected schemas: %s.", strings.Join(types, ", ")),
	})

	for _, t := range types {
		switch t {
		case "FAQPage":
			findings = append(findings, AuditFinding{
				Label:   "Rich Snippets",
				Status:  AuditSuccess,
				Message: "FAQPage schema detected! Eligible for question rich results.",
			})
		case "VideoObject":
			findings = append(findings, AuditFinding{
				Label:   "Rich Snippets",
				Status:  AuditSuccess,
				Message: "VideoObject schema detected! Optimized for video search.",
			})
		}
	}
	return findings
}

// typeNames flattens a JSON-LD @type value, which may be a single string or
// an array of strings.
func typeNames(res gjson.Result) []string {
	if !res.Exists() {
		return nil
	}
	if res.IsArray() {
		var names []string
		for _, item := range res.Array() {
			names = append(names, item.String())
		}
		return names
	}
	return []string{res.String()}
}

// countHeadings parses htmlContent and counts h1 and h2 elements.
func countHeadings(htmlContent string) (h1, h2 int) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return 0, 0
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				h1++
			case "h2":
				h2++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return h1, h2
}

// VisibleText renders htmlContent to its visible-text form: tags removed,
// script and style contents dropped, block elements separated by newlines.
// Applying it to already-plain text is a no-op apart from whitespace trimming.
func VisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return strings.TrimSpace(htmlContent)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "ul", "ol", "br",
				"h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString("\n")
			}
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
