package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jobguard/jobguard/internal/platform"
)

const longParagraph = "We are looking for a backend engineer to build and operate our payment reconciliation services. You will design APIs, review code, and mentor junior engineers across two product teams."

func newExtractor() *Extractor {
	return &Extractor{Timeout: 5 * time.Second}
}

func TestExtract_InvalidURLMakesNoNetworkCall(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	e := newExtractor()
	cases := []struct {
		url  string
		want error
	}{
		{"https://www.linkedin.com/in/somebody", platform.ErrNotJobPosting},
		{"www.example.com/careers", platform.ErrUnsupportedScheme},
		{"https://x.c", platform.ErrTooShort},
	}
	for _, tc := range cases {
		res := e.Extract(context.Background(), tc.url)
		if res.OK {
			t.Fatalf("expected failure for %q", tc.url)
		}
		if !errors.Is(res.Err, tc.want) {
			t.Fatalf("expected %v for %q, got %v", tc.want, tc.url, res.Err)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no network calls, got %d", hits)
	}
}

func TestExtract_GenericSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<nav>Site navigation</nav>
			<div class="job-description"><p>` + longParagraph + `</p></div>
			<footer>Contact us</footer>
		</body></html>`))
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/careers/42")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Via != "generic" {
		t.Fatalf("expected generic stage, got %q", res.Via)
	}
	if res.Platform != "generic" {
		t.Fatalf("expected generic platform, got %q", res.Platform)
	}
	if !strings.Contains(res.Text, "payment reconciliation") {
		t.Fatalf("expected description text, got %q", res.Text)
	}
	if strings.Contains(res.Text, "Site navigation") || strings.Contains(res.Text, "Contact us") {
		t.Fatalf("expected nav and footer stripped, got %q", res.Text)
	}
}

func TestExtract_BodyFallbackWhenNoSelectorMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="unusual-layout"><p>` + longParagraph + `</p></div></body></html>`))
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if !res.OK {
		t.Fatalf("expected body fallback to succeed, got %v", res.Err)
	}
	if res.Via != "body" {
		t.Fatalf("expected body stage, got %q", res.Via)
	}
}

func TestExtract_PrefersMainOverBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div>Unrelated page furniture repeated enough to matter for length checks in this test document.</div>
			<main><p>` + longParagraph + `</p></main>
		</body></html>`))
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if !res.OK || res.Via != "main" {
		t.Fatalf("expected main stage, got %+v", res)
	}
}

func TestExtract_TooLittleContentFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Short posting.</p></body></html>`))
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if res.OK {
		t.Fatalf("expected failure for short content, got %+v", res)
	}
	if !errors.Is(res.Err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", res.Err)
	}
}

func TestExtract_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if res.OK {
		t.Fatalf("expected failure on 403")
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "403") {
		t.Fatalf("expected status error, got %v", res.Err)
	}
}

func TestExtract_NetworkFailureIsAResultValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if res.OK || res.Err == nil {
		t.Fatalf("expected failure result, got %+v", res)
	}
}

func TestExtract_TimeoutBoundsTheCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	e := &Extractor{Timeout: 30 * time.Millisecond}
	start := time.Now()
	res := e.Extract(context.Background(), srv.URL+"/posting")
	if res.OK {
		t.Fatalf("expected timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("timeout did not bound the call: %v", elapsed)
	}
}

func TestExtract_PreservesCaseAndPunctuation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="job-description">Pay $50 for the certificate! ` + longParagraph + `</div></body></html>`))
	}))
	defer srv.Close()

	res := newExtractor().Extract(context.Background(), srv.URL+"/posting")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if !strings.Contains(res.Text, "Pay $50 for the certificate!") {
		t.Fatalf("expected case and punctuation preserved, got %q", res.Text)
	}
}

func TestFetch_SendsBrowserAndPlatformHeaders(t *testing.T) {
	var gotReferer, gotFetchSite, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotFetchSite = r.Header.Get("Sec-Fetch-Site")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	prof := platform.Identify("https://www.linkedin.com/jobs/view/1")
	e := newExtractor()
	if _, err := e.fetch(context.Background(), srv.URL, prof); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotReferer != "https://www.linkedin.com/jobs/" {
		t.Fatalf("expected linkedin referer, got %q", gotReferer)
	}
	if gotFetchSite != "same-origin" {
		t.Fatalf("expected same-origin fetch site, got %q", gotFetchSite)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("expected browser-like user agent, got %q", gotUA)
	}
}

func TestSelectContent_PlatformSelectorWinsOverGeneric(t *testing.T) {
	html := `<html><body>
		<div class="show-more-less-html__markup"><p>` + longParagraph + `</p></div>
		<div class="job-description"><p>Generic copy that should lose. ` + longParagraph + `</p></div>
	</body></html>`
	prof := platform.Identify("https://www.linkedin.com/jobs/view/1")
	text, via, err := newExtractor().selectContent([]byte(html), prof)
	if err != nil {
		t.Fatalf("selectContent: %v", err)
	}
	if via != "platform" {
		t.Fatalf("expected platform stage, got %q", via)
	}
	if strings.Contains(text, "should lose") {
		t.Fatalf("expected platform selector text only, got %q", text)
	}
}

func TestSelectContent_ShortPlatformSelectorFallsThrough(t *testing.T) {
	html := `<html><body>
		<div class="show-more-less-html__markup">Too short.</div>
		<div class="job-description"><p>` + longParagraph + `</p></div>
	</body></html>`
	prof := platform.Identify("https://www.linkedin.com/jobs/view/1")
	_, via, err := newExtractor().selectContent([]byte(html), prof)
	if err != nil {
		t.Fatalf("selectContent: %v", err)
	}
	if via != "generic" {
		t.Fatalf("expected fallthrough to generic stage, got %q", via)
	}
}

func TestSelectContent_SelectorOrderIsStable(t *testing.T) {
	html := `<html><body><div class="jobsearch-jobDescriptionText" id="jobDescriptionText"><p>` + longParagraph + `</p></div></body></html>`
	prof := platform.Identify("https://www.indeed.com/viewjob?jk=1")
	first, _, err := newExtractor().selectContent([]byte(html), prof)
	if err != nil {
		t.Fatalf("selectContent: %v", err)
	}
	second, _, _ := newExtractor().selectContent([]byte(html), prof)
	if first != second {
		t.Fatalf("extraction not deterministic: %q vs %q", first, second)
	}
}
