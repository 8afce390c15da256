package generator

// AIProvider selects the generation backend.
type AIProvider string

const (
	ProviderGemini AIProvider = "gemini"
	ProviderOpenAI AIProvider = "openai"
)

// ImageProvider selects how embedded image directives are resolved.
type ImageProvider string

const (
	ImageGemini       ImageProvider = "gemini"
	ImagePollinations ImageProvider = "pollinations"
	ImageUnsplash     ImageProvider = "unsplash"
	ImageLoremFlickr  ImageProvider = "lorem-flickr"
)

// PublicationFormats lists every format the prompt builder accepts.
var PublicationFormats = []string{
	"blog-post", "article", "news",
	"image-only", "image-article", "video-article",
	"step-by-step", "ebook", "infographic",
	"whitepaper", "case-study", "landing-page",
	"wp-standard", "wp-aside", "wp-gallery", "wp-quote", "wp-audio",
}

// ValidFormat reports whether f is a known publication format.
func ValidFormat(f string) bool {
	for _, known := range PublicationFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Params describes the intended publication before generation.
type Params struct {
	MainKeywords      string        `json:"mainKeywords"`
	OrganicKeywords   string        `json:"organicKeywords,omitempty"`
	SnippetKeywords   string        `json:"snippetKeywords,omitempty"`
	CTAText           string        `json:"ctaText,omitempty"`
	CTAURL            string        `json:"ctaUrl,omitempty"`
	CompetitorURLs    string        `json:"competitorUrls,omitempty"`
	Language          string        `json:"language,omitempty"`
	ContentTone       string        `json:"contentTone,omitempty"`
	PublicationFormat string        `json:"publicationFormat"`
	IncludeImages     bool          `json:"includeImages"`
	AIProvider        AIProvider    `json:"aiProvider,omitempty"`
	ImageProvider     ImageProvider `json:"imageProvider,omitempty"`
}

// CompetitorFinding is one analyzed competitor in the strategy report.
type CompetitorFinding struct {
	URL               string  `json:"url"`
	PerformanceScore  float64 `json:"performanceScore"`
	Demographics      string  `json:"demographics"`
	MarketingStrategy string  `json:"marketingStrategy"`
	Strengths         string  `json:"strengths"`
	Failures          string  `json:"failures"`
	GapIdentified     string  `json:"gapIdentified"`
}

// StrategyReport is the competitor-analysis half of a generation result.
// Display-only; GapAnalysis and ContentPlan arrive as markdown.
type StrategyReport struct {
	CompetitorAnalysis       []CompetitorFinding `json:"competitorAnalysis"`
	GapAnalysis              string              `json:"gapAnalysis"`
	ContentPlan              string              `json:"contentPlan"`
	ProjectedTrafficIncrease float64             `json:"projectedTrafficIncrease"`
}

// ContentBundle is the complete generated-content payload. Treated as
// immutable once parsed; the post-processor returns a rewritten copy.
type ContentBundle struct {
	Strategy        StrategyReport `json:"strategy"`
	HTMLContent     string         `json:"htmlContent"`
	CSSContent      string         `json:"cssContent,omitempty"`
	JSContent       string         `json:"jsContent,omitempty"`
	JSONLD          string         `json:"jsonLd"`
	MetaTitle       string         `json:"metaTitle"`
	MetaDescription string         `json:"metaDescription"`
}

// ImageDirective is an inline placeholder extracted from generated HTML.
// It exists only during post-processing.
type ImageDirective struct {
	RawToken       string
	Prompt         string
	NegativePrompt string
}

// AuditStatus is the severity of one audit finding.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditWarning AuditStatus = "warning"
	AuditError   AuditStatus = "error"
)

// AuditFinding is one heuristic checklist result.
type AuditFinding struct {
	Label   string      `json:"label"`
	Status  AuditStatus `json:"status"`
	Message string      `json:"message"`
}
