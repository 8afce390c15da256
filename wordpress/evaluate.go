package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"seo_dominator/generator"
)

// scanBatchLimit caps the number of posts evaluated per scan invocation.
const scanBatchLimit = 5

const evaluationPreviewBytes = 3000

// Evaluator scores existing posts for SEO quality through a generation
// client constrained to the evaluation schema.
type Evaluator struct {
	llm generator.Client
}

func NewEvaluator(llm generator.Client) (*Evaluator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Evaluator{llm: llm}, nil
}

// Evaluate scores one post. Any model or decoding failure degrades to a
// synthetic lowest-score verdict; it never returns an error to the caller.
func (e *Evaluator) Evaluate(ctx context.Context, post Post) Evaluation {
	preview := truncatePreview(post.Content.Rendered)
	prompt := generator.BuildEvaluationPrompt(post.Title.Rendered, preview)

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return fallbackEvaluation()
	}
	var eval Evaluation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &eval); err != nil {
		return fallbackEvaluation()
	}
	return eval
}

// ScanUnevaluated evaluates up to 5 not-yet-evaluated posts, strictly one at
// a time: evaluation N+1 never starts before N has settled. Returns the new
// evaluations keyed by post ID.
func (e *Evaluator) ScanUnevaluated(ctx context.Context, posts []Post) map[int]Evaluation {
	results := make(map[int]Evaluation)
	scanned := 0
	for _, post := range posts {
		if post.Evaluation != nil {
			continue
		}
		if scanned == scanBatchLimit {
			break
		}
		results[post.ID] = e.Evaluate(ctx, post)
		scanned++
	}
	return results
}

// truncatePreview caps the content sent to the model, backing up to a rune
// boundary so a multi-byte character is never split.
func truncatePreview(content string) string {
	if len(content) <= evaluationPreviewBytes {
		return content
	}
	cut := evaluationPreviewBytes
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

func fallbackEvaluation() Evaluation {
	return Evaluation{
		Score:       0,
		Status:      StatusPoor,
		Analysis:    "Could not perform evaluation at this time.",
		Suggestions: []string{"Check API connection and try again."},
	}
}
