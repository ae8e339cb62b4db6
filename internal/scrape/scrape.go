// Package scrape fetches a job posting page and pulls the substantive
// description text out of it. Extraction runs a prioritized fallback chain:
// platform-specific selectors first, then generic description selectors, then
// the page's main/article/body element, then the whole document, so a page
// never fails solely because its markup is unfamiliar.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobguard/jobguard/internal/platform"
	"github.com/jobguard/jobguard/internal/textnorm"
)

const (
	// defaultMinContentLength is the shortest extracted text accepted as a
	// real job description.
	defaultMinContentLength = 100
	defaultTimeout          = 10 * time.Second
	maxBodyBytes            = 4 << 20
)

// ErrNoContent marks an extraction that reached the end of the fallback
// chain without finding enough text.
var ErrNoContent = errors.New("no extractable content above minimum length")

// Result is the outcome of one extraction call. Failures are values, not
// errors: Err records the cause but never propagates as a fault.
type Result struct {
	OK       bool
	Text     string
	Platform string
	// Via names the chain stage that produced the text: "platform",
	// "generic", "main", "article", "body" or "document".
	Via string
	Err error
}

// nonContentSelector lists the tags removed before any text extraction.
const nonContentSelector = "script, style, nav, footer, header, aside, iframe"

// genericSelectors are tried when no platform selector yields content.
var genericSelectors = []string{
	"div.job-description",
	"#job-description",
	"div.jobDescription",
	"[class*='job-description']",
	"[class*='jobDescription']",
	"div.description",
	"section.description",
	"div.posting",
	"div.vacancy",
}

// browserHeaders mimic a regular browser request; job boards tend to reject
// obviously programmatic clients.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Upgrade-Insecure-Requests": "1",
}

// Extractor performs validated single-shot fetches with per-platform headers
// and runs the selector fallback chain over the response. The zero value is
// usable; fields override defaults.
type Extractor struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds the whole network call. Zero means 10s.
	Timeout time.Duration
	// MinContentLength overrides the 100-character acceptance floor.
	MinContentLength int
	// MaxDelay bounds the random politeness delay before each request.
	// Zero disables the delay.
	MaxDelay time.Duration
}

// Extract validates the URL, fetches the page once and walks the fallback
// chain. Every failure path resolves to a Result with OK=false; no error is
// returned to the caller as a fault.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Result {
	if err := platform.ValidateURL(rawURL); err != nil {
		return Result{Err: err}
	}
	prof := platform.Identify(rawURL)

	e.politeDelay(ctx)

	body, err := e.fetch(ctx, rawURL, prof)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Str("platform", prof.ID).Msg("fetch failed")
		return Result{Platform: prof.ID, Err: err}
	}

	text, via, err := e.selectContent(body, prof)
	if err != nil {
		return Result{Platform: prof.ID, Err: err}
	}
	return Result{OK: true, Text: text, Platform: prof.ID, Via: via}
}

// fetch issues exactly one GET. There is no retry: a posting page that
// blocks or errors once is assumed to keep doing so within this call.
func (e *Extractor) fetch(ctx context.Context, rawURL string, prof platform.Profile) ([]byte, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	ua := e.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	req.Header.Set("User-Agent", ua)
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range prof.Headers {
		req.Header.Set(k, v)
	}

	client := e.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// selectContent strips non-content tags and walks the fallback chain over
// the fetched document.
func (e *Extractor) selectContent(body []byte, prof platform.Profile) (string, string, error) {
	minLen := e.MinContentLength
	if minLen <= 0 {
		minLen = defaultMinContentLength
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		// The parser is tolerant; if it still fails, degrade to string-level
		// tag stripping rather than reporting a parse fault.
		stripped, _ := textnorm.StripTags(string(body))
		text := textnorm.CleanWhitespace(stripped)
		if len(text) > minLen {
			return text, "document", nil
		}
		return "", "", ErrNoContent
	}
	doc.Find(nonContentSelector).Remove()

	for _, sel := range prof.Selectors {
		if text := selectionText(doc, sel); len(text) > minLen {
			return text, "platform", nil
		}
	}
	for _, sel := range genericSelectors {
		if text := selectionText(doc, sel); len(text) > minLen {
			return text, "generic", nil
		}
	}
	for _, sel := range []string{"main", "article", "body"} {
		if text := selectionText(doc, sel); len(text) > minLen {
			return text, sel, nil
		}
	}
	if text := textnorm.CleanWhitespace(doc.Text()); len(text) > minLen {
		return text, "document", nil
	}
	return "", "", ErrNoContent
}

func selectionText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return ""
	}
	return textnorm.CleanWhitespace(sel.First().Text())
}

// politeDelay sleeps a bounded random interval before the request, local to
// this call. Cancellation cuts the delay short.
func (e *Extractor) politeDelay(ctx context.Context) {
	if e.MaxDelay <= 0 {
		return
	}
	d := time.Duration(rand.Int63n(int64(e.MaxDelay)))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
