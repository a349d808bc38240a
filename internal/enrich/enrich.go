// Package enrich extracts company profile metadata from a company website
// so the company form can be prefilled instead of typed out by hand.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the HTTP request timeout for metadata fetches.
const DefaultTimeout = 15 * time.Second

const userAgent = "Mozilla/5.0 (compatible; ClarityCareerBot/1.0)"

// Metadata holds what could be extracted from a company homepage. Fields
// the page does not declare stay empty.
type Metadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// Extractor fetches company websites and pulls profile metadata out of
// their markup.
type Extractor struct {
	client *http.Client
}

// New creates an Extractor with the default timeout.
func New() *Extractor {
	return &Extractor{client: &http.Client{Timeout: DefaultTimeout}}
}

// FetchMetadata downloads the page at website and extracts profile
// metadata from its Open Graph and standard meta tags.
func (e *Extractor) FetchMetadata(ctx context.Context, website string) (*Metadata, error) {
	base, err := url.Parse(website)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid website URL: %s", website)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", website, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, website)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return extract(doc, base), nil
}

// extract pulls metadata out of a parsed document. Split from the fetch so
// it can be exercised against fixture HTML.
func extract(doc *goquery.Document, base *url.URL) *Metadata {
	meta := &Metadata{}

	meta.Name = firstMetaContent(doc, `meta[property="og:site_name"]`, `meta[name="application-name"]`)
	if meta.Name == "" {
		meta.Name = strings.TrimSpace(doc.Find("title").First().Text())
	}

	meta.Description = firstMetaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`)

	if logo := firstMetaContent(doc, `meta[property="og:image"]`); logo != "" {
		meta.LogoURL = resolveURL(base, logo)
	} else if icon, ok := doc.Find(`link[rel="icon"], link[rel="apple-touch-icon"]`).First().Attr("href"); ok {
		meta.LogoURL = resolveURL(base, icon)
	}

	return meta
}

// firstMetaContent returns the content attribute of the first selector
// that yields a non-empty value.
func firstMetaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
