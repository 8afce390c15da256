package wordpress

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	resp    string
	err     error
	calls   int
	prompts []string
	active  int
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.active++
	if s.active > 1 {
		panic("overlapping evaluation calls")
	}
	defer func() { s.active-- }()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.resp, s.err
}

func renderedPost(id int, title, content string) Post {
	return Post{
		ID:      id,
		Title:   Rendered{Rendered: title},
		Content: Rendered{Rendered: content},
	}
}

func TestNewEvaluator_RequiresClient(t *testing.T) {
	_, err := NewEvaluator(nil)
	assert.Error(t, err)
}

func TestEvaluate_DecodesVerdict(t *testing.T) {
	llm := &stubLLM{resp: `{
		"score": 87,
		"status": "optimized",
		"analysis": "Strong keyword placement.",
		"suggestions": ["Add internal links."]
	}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	got := ev.Evaluate(context.Background(), renderedPost(1, "Hello", "<p>body</p>"))
	assert.Equal(t, float64(87), got.Score)
	assert.Equal(t, StatusOptimized, got.Status)
	assert.Equal(t, "Strong keyword placement.", got.Analysis)
	assert.Equal(t, []string{"Add internal links."}, got.Suggestions)
}

func TestEvaluate_TruncatesLongContent(t *testing.T) {
	llm := &stubLLM{resp: `{"score":50,"status":"needs-work","analysis":"ok","suggestions":[]}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	long := strings.Repeat("a", 5000)
	ev.Evaluate(context.Background(), renderedPost(1, "t", long))

	require.Len(t, llm.prompts, 1)
	assert.NotContains(t, llm.prompts[0], strings.Repeat("a", 3001))
	assert.Contains(t, llm.prompts[0], strings.Repeat("a", 3000))
}

func TestEvaluate_TruncationKeepsRuneBoundary(t *testing.T) {
	llm := &stubLLM{resp: `{"score":50,"status":"needs-work","analysis":"ok","suggestions":[]}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	// Byte 3000 lands inside a two-byte rune; the cut must back up to 2999.
	long := "a" + strings.Repeat("é", 2000)
	ev.Evaluate(context.Background(), renderedPost(1, "t", long))

	require.Len(t, llm.prompts, 1)
	assert.True(t, utf8.ValidString(llm.prompts[0]))
	assert.NotContains(t, llm.prompts[0], string(utf8.RuneError))
}

func TestTruncatePreview(t *testing.T) {
	short := strings.Repeat("x", 100)
	assert.Equal(t, short, truncatePreview(short))

	ascii := strings.Repeat("x", 4000)
	assert.Len(t, truncatePreview(ascii), 3000)

	multi := "a" + strings.Repeat("é", 2000)
	got := truncatePreview(multi)
	assert.Len(t, got, 2999)
	assert.True(t, utf8.ValidString(got))
}

func TestEvaluate_FallbackOnClientError(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection refused")}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	got := ev.Evaluate(context.Background(), renderedPost(1, "t", "c"))
	assert.Equal(t, float64(0), got.Score)
	assert.Equal(t, StatusPoor, got.Status)
	assert.Equal(t, "Could not perform evaluation at this time.", got.Analysis)
	assert.Equal(t, []string{"Check API connection and try again."}, got.Suggestions)
}

func TestEvaluate_FallbackOnMalformedJSON(t *testing.T) {
	llm := &stubLLM{resp: "not json at all"}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	got := ev.Evaluate(context.Background(), renderedPost(1, "t", "c"))
	assert.Equal(t, StatusPoor, got.Status)
	assert.Equal(t, "Could not perform evaluation at this time.", got.Analysis)
}

func TestScanUnevaluated_CapsAtFivePosts(t *testing.T) {
	llm := &stubLLM{resp: `{"score":70,"status":"needs-work","analysis":"ok","suggestions":[]}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	var posts []Post
	for i := 1; i <= 8; i++ {
		posts = append(posts, renderedPost(i, "t", "c"))
	}

	results := ev.ScanUnevaluated(context.Background(), posts)
	assert.Equal(t, 5, llm.calls)
	require.Len(t, results, 5)
	for id := 1; id <= 5; id++ {
		assert.Contains(t, results, id)
	}
	assert.NotContains(t, results, 6)
}

func TestScanUnevaluated_SkipsAlreadyEvaluated(t *testing.T) {
	llm := &stubLLM{resp: `{"score":70,"status":"needs-work","analysis":"ok","suggestions":[]}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	done := Evaluation{Score: 90, Status: StatusOptimized}
	posts := []Post{
		renderedPost(1, "t", "c"),
		{ID: 2, Title: Rendered{Rendered: "t"}, Content: Rendered{Rendered: "c"}, Evaluation: &done},
		renderedPost(3, "t", "c"),
	}

	results := ev.ScanUnevaluated(context.Background(), posts)
	assert.Equal(t, 2, llm.calls)
	assert.Contains(t, results, 1)
	assert.NotContains(t, results, 2)
	assert.Contains(t, results, 3)
}

func TestScanUnevaluated_SkippedPostsDoNotConsumeBudget(t *testing.T) {
	llm := &stubLLM{resp: `{"score":70,"status":"needs-work","analysis":"ok","suggestions":[]}`}
	ev, err := NewEvaluator(llm)
	require.NoError(t, err)

	done := Evaluation{Score: 90, Status: StatusOptimized}
	var posts []Post
	for i := 1; i <= 5; i++ {
		posts = append(posts, Post{ID: i, Evaluation: &done})
	}
	for i := 6; i <= 10; i++ {
		posts = append(posts, renderedPost(i, "t", "c"))
	}

	results := ev.ScanUnevaluated(context.Background(), posts)
	assert.Equal(t, 5, llm.calls)
	assert.Len(t, results, 5)
}
