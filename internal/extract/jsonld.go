package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ratingsync/internal/render"
)

// jsonLDBlocks returns every embedded structured-data script on the page,
// decoded generically. Malformed blocks are skipped.
func jsonLDBlocks(page *render.Page) []any {
	var blocks []any
	page.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return
		}
		blocks = append(blocks, decoded)
	})
	return blocks
}

// jsonLDString walks the decoded structured data depth-first and returns the
// first string value stored under any of the given keys.
func jsonLDString(page *render.Page, keys ...string) string {
	want := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		want[strings.ToLower(key)] = struct{}{}
	}
	for _, block := range jsonLDBlocks(page) {
		if value := walkForKeys(block, want); value != "" {
			return value
		}
	}
	return ""
}

func walkForKeys(node any, want map[string]struct{}) string {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			if _, hit := want[strings.ToLower(key)]; hit {
				if s := stringValue(value); s != "" {
					return s
				}
			}
		}
		for _, value := range typed {
			if s := walkForKeys(value, want); s != "" {
				return s
			}
		}
	case []any:
		for _, value := range typed {
			if s := walkForKeys(value, want); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringValue flattens a structured-data value into display text. Lists of
// names (actors, genres) join with ", "; person/thing objects yield "name".
func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if name, ok := typed["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []any:
		var parts []string
		for _, entry := range typed {
			if s := stringValue(entry); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// jsonLDRawText re-serializes every structured-data block for pattern scans.
func jsonLDRawText(page *render.Page) string {
	var builder strings.Builder
	page.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		builder.WriteString(sel.Text())
		builder.WriteByte('\n')
	})
	return builder.String()
}
