package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head>
<title>Innovate Inc. | Home</title>
<meta property="og:site_name" content="Innovate Inc.">
<meta property="og:description" content="Pioneering the future of technology.">
<meta property="og:image" content="/assets/logo.png">
</head>
<body><h1>Welcome</h1></body>
</html>`

func TestFetchMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	meta, err := New().FetchMetadata(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Innovate Inc.", meta.Name)
	assert.Equal(t, "Pioneering the future of technology.", meta.Description)
	assert.Equal(t, srv.URL+"/assets/logo.png", meta.LogoURL)
}

func TestFetchMetadataNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().FetchMetadata(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchMetadataInvalidURL(t *testing.T) {
	_, err := New().FetchMetadata(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestExtractFallbacks(t *testing.T) {
	html := `<html><head>
<title>  Plain Title Co  </title>
<meta name="description" content="A plain description.">
<link rel="icon" href="https://cdn.example.com/favicon.ico">
</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	base, _ := url.Parse("https://plain.example.com")
	meta := extract(doc, base)

	assert.Equal(t, "Plain Title Co", meta.Name)
	assert.Equal(t, "A plain description.", meta.Description)
	assert.Equal(t, "https://cdn.example.com/favicon.ico", meta.LogoURL)
}

func TestExtractEmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><head></head><body></body></html>"))
	require.NoError(t, err)

	base, _ := url.Parse("https://empty.example.com")
	meta := extract(doc, base)

	assert.Empty(t, meta.Name)
	assert.Empty(t, meta.Description)
	assert.Empty(t, meta.LogoURL)
}
