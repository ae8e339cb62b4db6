// Package reputation is a flat in-memory lookup of company fraud reports.
// The table is static seed data; a company scoring above 50 is considered
// fraudulent.
package reputation

import "strings"

const fraudScoreCutoff = 50

// MatchKind describes how a lookup resolved.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchPartial
)

// Company is one reputation record.
type Company struct {
	Name        string
	FraudScore  int
	Reports     int
	LastUpdated string
	DomainAge   string
	Industry    string
	Location    string
	Website     string
	RedFlags    []string
	GreenFlags  []string
}

// IsFraud reports whether the company's score crosses the fraud cutoff.
func (c Company) IsFraud() bool {
	return c.FraudScore > fraudScoreCutoff
}

// Lookup holds the reputation table. Keys are lowercase company names;
// partial matching scans keys in insertion order so results are stable.
type Lookup struct {
	companies map[string]Company
	order     []string
}

// NewLookup returns a lookup seeded with the default table.
func NewLookup() *Lookup {
	l := &Lookup{companies: make(map[string]Company)}
	for _, c := range seedCompanies {
		l.Add(c)
	}
	return l
}

// Add inserts or replaces a record, keyed by the lowercase company name's
// first word.
func (l *Lookup) Add(c Company) {
	key := strings.ToLower(strings.Fields(c.Name)[0])
	if _, exists := l.companies[key]; !exists {
		l.order = append(l.order, key)
	}
	l.companies[key] = c
}

// Find resolves a company name, preferring an exact key match and falling
// back to the first substring match in either direction.
func (l *Lookup) Find(name string) (Company, MatchKind) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Company{}, MatchNone
	}
	if c, ok := l.companies[query]; ok {
		return c, MatchExact
	}
	for _, key := range l.order {
		c := l.companies[key]
		if strings.Contains(key, query) || strings.Contains(query, key) || strings.Contains(strings.ToLower(c.Name), query) {
			return c, MatchPartial
		}
	}
	return Company{}, MatchNone
}

var seedCompanies = []Company{
	{
		Name:        "FakeCorp Inc",
		FraudScore:  95,
		Reports:     150,
		LastUpdated: "2024-01-15",
		DomainAge:   "2 months",
		Industry:    "Technology",
		Location:    "Unknown",
		Website:     "fakecorp-scam.com",
		RedFlags:    []string{"No physical address", "Fake testimonials", "Payment required upfront"},
	},
	{
		Name:        "ScamTech Solutions",
		FraudScore:  88,
		Reports:     89,
		LastUpdated: "2024-01-10",
		DomainAge:   "3 months",
		Industry:    "IT Services",
		Location:    "Virtual",
		Website:     "scamtech-fake.net",
		RedFlags:    []string{"Virtual office only", "No employee reviews", "Suspicious payment methods"},
	},
	{
		Name:        "PhishCo Ltd",
		FraudScore:  92,
		Reports:     234,
		LastUpdated: "2024-01-12",
		DomainAge:   "1 month",
		Industry:    "Consulting",
		Location:    "International",
		Website:     "phishco-scam.org",
		RedFlags:    []string{"International scam", "Fake social media", "Data harvesting"},
	},
	{
		Name:        "Google",
		FraudScore:  5,
		Reports:     2,
		LastUpdated: "2024-01-15",
		DomainAge:   "25+ years",
		Industry:    "Technology",
		Location:    "Mountain View, CA",
		Website:     "google.com",
		GreenFlags:  []string{"Established company", "Verified contact info", "Positive reviews"},
	},
	{
		Name:        "Microsoft",
		FraudScore:  3,
		Reports:     1,
		LastUpdated: "2024-01-15",
		DomainAge:   "30+ years",
		Industry:    "Technology",
		Location:    "Redmond, WA",
		Website:     "microsoft.com",
		GreenFlags:  []string{"Fortune 500 company", "Verified contact info", "Excellent reputation"},
	},
	{
		Name:        "Amazon",
		FraudScore:  6,
		Reports:     5,
		LastUpdated: "2024-01-15",
		DomainAge:   "25+ years",
		Industry:    "E-commerce",
		Location:    "Seattle, WA",
		Website:     "amazon.com",
		GreenFlags:  []string{"Global company", "Verified contact info", "Established reputation"},
	},
}
