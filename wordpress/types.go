package wordpress

// Connection holds the credentials for one WordPress site. Auth is HTTP Basic
// over "username:app-password".
type Connection struct {
	URL         string `json:"url"`
	Username    string `json:"username"`
	AppPassword string `json:"appPassword"`
}

// Rendered is the WordPress REST envelope for rendered fields.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is one post as returned by /wp-json/wp/v2/posts.
type Post struct {
	ID         int         `json:"id"`
	Title      Rendered    `json:"title"`
	Excerpt    Rendered    `json:"excerpt"`
	Content    Rendered    `json:"content"`
	Link       string      `json:"link"`
	Date       string      `json:"date"`
	Status     string      `json:"status"`
	Evaluation *Evaluation `json:"seoEvaluation,omitempty"`
}

// Evaluation statuses.
const (
	StatusOptimized = "optimized"
	StatusNeedsWork = "needs-work"
	StatusPoor      = "poor"
)

// Evaluation is the model's SEO-quality verdict for one post.
type Evaluation struct {
	Score       float64  `json:"score"`
	Status      string   `json:"status"`
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}
