// Package platform maps posting URLs to known job-board profiles. A profile
// carries the request headers and the priority-ordered content selectors the
// scraper should try for that board. Profiles are static configuration.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// minURLLength rejects fragments like "https://x" before any network work.
const minURLLength = 12

// Validation failures are sentinel errors so callers and tests can tell the
// rejection reasons apart.
var (
	ErrUnsupportedScheme = errors.New("url must start with http:// or https://")
	ErrTooShort          = errors.New("url is too short to be a posting link")
	ErrNotJobPosting     = errors.New("linkedin url must contain a /jobs/ path segment")
)

// Profile describes one supported job platform.
type Profile struct {
	// ID names the platform: "linkedin", "indeed", "glassdoor" or "generic".
	ID string
	// Match is the domain substring that selects this profile.
	Match string
	// Headers are added on top of the common browser-like header set.
	Headers map[string]string
	// Selectors are tried in order; the first one yielding enough text wins.
	Selectors []string
}

// profiles is the ordered platform list. First substring match wins; URLs
// matching nothing fall through to Generic.
var profiles = []Profile{
	{
		ID:    "linkedin",
		Match: "linkedin.com",
		Headers: map[string]string{
			"Referer":        "https://www.linkedin.com/jobs/",
			"Sec-Fetch-Site": "same-origin",
		},
		Selectors: []string{
			"div.show-more-less-html__markup",
			"div.description__text",
			"section.description",
			"div.jobs-description__content",
			"div.jobs-box__html-content",
		},
	},
	{
		ID:    "indeed",
		Match: "indeed.",
		Headers: map[string]string{
			"Referer":        "https://www.indeed.com/",
			"Sec-Fetch-Site": "same-site",
		},
		Selectors: []string{
			"#jobDescriptionText",
			"div.jobsearch-jobDescriptionText",
			"div.jobsearch-JobComponent-description",
		},
	},
	{
		ID:    "glassdoor",
		Match: "glassdoor.",
		Headers: map[string]string{
			"Referer":        "https://www.glassdoor.com/Job/",
			"Sec-Fetch-Site": "same-site",
		},
		Selectors: []string{
			"div.jobDescriptionContent",
			"[class*='jobDescription']",
			"div.desc",
		},
	},
}

// Generic is the profile for URLs matching no known platform.
var Generic = Profile{ID: "generic"}

// Identify returns the profile for the first platform whose domain substring
// appears in the URL, or Generic when none match.
func Identify(rawURL string) Profile {
	lower := strings.ToLower(rawURL)
	for _, p := range profiles {
		if strings.Contains(lower, p.Match) {
			return p
		}
	}
	return Generic
}

// ValidateURL rejects URLs that cannot be a job posting before any network
// call is attempted.
func ValidateURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, rawURL)
	}
	if len(trimmed) < minURLLength {
		return fmt.Errorf("%w: %q", ErrTooShort, rawURL)
	}
	if strings.Contains(lower, "linkedin.com") && !strings.Contains(lower, "/jobs/") {
		return fmt.Errorf("%w: %q", ErrNotJobPosting, rawURL)
	}
	return nil
}
