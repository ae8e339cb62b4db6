// Package textnorm provides the deterministic text-cleaning transforms shared
// by the pattern matcher, the statistical model adapter, and the scraper.
package textnorm

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	wsRun      = regexp.MustCompile(`\s+`)
	newlineRun = regexp.MustCompile(`\n+`)
	tagLike    = regexp.MustCompile(`<[^>]*>`)
)

// Normalize cleans raw text for classification: HTML entities are decoded,
// markup is stripped, the result is lowercased, every character outside
// [a-z0-9\s] becomes a space, and whitespace runs collapse to single spaces.
// Empty input yields the empty string. Normalize is idempotent.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	text := html.UnescapeString(raw)
	text, _ = StripTags(text)
	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, " ")
	text = wsRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanWhitespace is the lighter variant used on scraped or OCR output: it
// collapses newlines and whitespace runs but preserves case and punctuation,
// since classification re-normalizes its input anyway.
func CleanWhitespace(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	text := newlineRun.ReplaceAllString(raw, " ")
	text = wsRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripTags removes markup from raw and returns the remaining text. The
// second return reports whether the HTML parser handled the input; when the
// parser fails the function degrades to regex removal of tag-like substrings
// rather than propagating the error.
func StripTags(raw string) (string, bool) {
	if !strings.Contains(raw, "<") {
		return raw, true
	}
	node, err := xhtml.Parse(strings.NewReader(raw))
	if err != nil || node == nil {
		return tagLike.ReplaceAllString(raw, " "), false
	}
	var b strings.Builder
	collectText(&b, node)
	return b.String(), true
}

func collectText(b *strings.Builder, n *xhtml.Node) {
	if n.Type == xhtml.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == xhtml.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}
