package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Unsplash(t *testing.T) {
	r := NewResolver(ImageUnsplash, nil, nil)
	ref, err := r.Image(context.Background(), "red bicycle in a sunny park downtown", "")
	require.NoError(t, err)
	assert.Contains(t, ref, "https://images.unsplash.com/photo-")
	// Query is derived from the first 5 words only.
	assert.Contains(t, ref, "keywords=red+bicycle+in+a+sunny")
	assert.NotContains(t, ref, "park")
}

func TestResolver_LoremFlickr(t *testing.T) {
	r := NewResolver(ImageLoremFlickr, nil, nil)
	ref, err := r.Image(context.Background(), "mountain lake", "")
	require.NoError(t, err)
	assert.Equal(t, "https://loremflickr.com/1280/720/mountain+lake", ref)
}

func TestResolver_PollinationsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/prompt/")
		assert.Equal(t, "true", r.URL.Query().Get("nologo"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("fake-png-bytes"))
	}))
	defer srv.Close()

	r := NewResolver(ImagePollinations, srv.Client(), nil)
	r.pollinationsBase = srv.URL
	ref, err := r.Image(context.Background(), "red bicycle", "blur")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("fake-png-bytes")), ref)
}

func TestResolver_PollinationsIncludesNegativeClause(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	r := NewResolver(ImagePollinations, srv.Client(), nil)
	r.pollinationsBase = srv.URL
	_, err := r.Image(context.Background(), "red bicycle", "blur")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "red+bicycle+%7C+Avoid%3A+blur")
}

func TestResolver_PollinationsFallsBackToRawURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewResolver(ImagePollinations, srv.Client(), nil)
	r.pollinationsBase = srv.URL
	ref, err := r.Image(context.Background(), "red bicycle", "")
	require.NoError(t, err)
	assert.Contains(t, ref, srv.URL+"/prompt/red+bicycle")
}

// stubImager fakes the native generative path.
type stubImager struct {
	mime string
	data []byte
	err  error
}

func (s *stubImager) GenerateImage(context.Context, string) (string, []byte, error) {
	return s.mime, s.data, s.err
}

func TestResolver_GenerativeDataURI(t *testing.T) {
	r := NewResolver(ImageGemini, nil, &stubImager{mime: "image/png", data: []byte{1, 2, 3}})
	ref, err := r.Image(context.Background(), "red bicycle", "")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), ref)
}

func TestResolver_GenerativeNoImagePart(t *testing.T) {
	r := NewResolver(ImageGemini, nil, &stubImager{})
	ref, err := r.Image(context.Background(), "red bicycle", "")
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestResolver_GenerativeError(t *testing.T) {
	r := NewResolver(ImageGemini, nil, &stubImager{err: errors.New("quota")})
	_, err := r.Image(context.Background(), "red bicycle", "")
	assert.Error(t, err)
}

func TestResolver_UnknownProvider(t *testing.T) {
	r := NewResolver(ImageProvider("daguerreotype"), nil, nil)
	_, err := r.Image(context.Background(), "red bicycle", "")
	assert.Error(t, err)
}
