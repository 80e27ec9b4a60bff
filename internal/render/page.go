package render

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is one rendered HTML document plus the URL it was fetched from.
// Extraction tactics query it through the goquery selection API.
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// NewPage parses an HTML stream into a Page anchored at rawURL.
func NewPage(rawURL string, body io.Reader) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return &Page{URL: parsed, Doc: doc}, nil
}

// NewPageFromString is a convenience wrapper for fixture HTML in tests.
func NewPageFromString(rawURL, html string) (*Page, error) {
	return NewPage(rawURL, strings.NewReader(html))
}

// Find proxies to the underlying document selection.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.Doc.Find(selector)
}

// Text returns the full rendered text of the page.
func (p *Page) Text() string {
	return p.Doc.Text()
}

// AbsURL resolves href against the page URL, returning "" for unusable input.
func (p *Page) AbsURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if p.URL == nil {
		return ref.String()
	}
	return p.URL.ResolveReference(ref).String()
}
