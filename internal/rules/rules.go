// Package rules evaluates a fixed taxonomy of fraud-indicator regex
// categories against normalized posting text. The taxonomy is static
// configuration: categories and their patterns are declared once, compiled at
// construction, and evaluated in declaration order so the match list is
// reproducible for identical input.
package rules

import "regexp"

const (
	// matchWeight is added to the boost for every individual pattern match.
	matchWeight = 15
	// highSeverityWeight is added once when any match belongs to a
	// high-severity category, regardless of how many such matches there are.
	highSeverityWeight = 25
	// fraudMatchCount is the match count at which the rule signal alone
	// flags the posting as fraudulent.
	fraudMatchCount = 2
)

// Category is a named group of patterns representing one fraud indicator
// theme, such as upfront certificate-payment requests.
type Category struct {
	Name     string
	patterns []*regexp.Regexp
	sources  []string
}

// Match records one pattern hit: the owning category and the pattern source.
type Match struct {
	Category string
	Pattern  string
}

// String renders the match in the human-readable form consumed by reports.
func (m Match) String() string {
	return m.Category + ": " + m.Pattern
}

// Signal aggregates all matches for one evaluation.
type Signal struct {
	Matches []Match
	// Boost is the accumulated confidence weight contributed by the matches.
	Boost int
	// IsFraud reports whether the rules alone consider the text fraudulent.
	IsFraud bool
}

// Matcher holds the compiled taxonomy. Construct it once and share it; Match
// does not mutate any state and is safe for concurrent use.
type Matcher struct {
	categories   []Category
	highSeverity map[string]bool
}

// NewMatcher builds a matcher over the default taxonomy with
// certificate_payment as the sole high-severity category.
func NewMatcher() *Matcher {
	return NewMatcherWithSeverity([]string{"certificate_payment"})
}

// NewMatcherWithSeverity builds the default taxonomy but lets the caller name
// which categories carry the high-severity override weight.
func NewMatcherWithSeverity(highSeverity []string) *Matcher {
	hs := make(map[string]bool, len(highSeverity))
	for _, name := range highSeverity {
		hs[name] = true
	}
	return &Matcher{categories: defaultTaxonomy(), highSeverity: hs}
}

// Match evaluates every category's every pattern against text, in declaration
// order. Each hit contributes matchWeight to the boost; a hit in a
// high-severity category adds highSeverityWeight exactly once. Text is
// expected to be pre-normalized (lowercase, punctuation stripped).
func (m *Matcher) Match(text string) Signal {
	var sig Signal
	highSeverityHit := false
	for _, cat := range m.categories {
		for i, re := range cat.patterns {
			if re.MatchString(text) {
				sig.Matches = append(sig.Matches, Match{Category: cat.Name, Pattern: cat.sources[i]})
				sig.Boost += matchWeight
				if m.highSeverity[cat.Name] {
					highSeverityHit = true
				}
			}
		}
	}
	if highSeverityHit {
		sig.Boost += highSeverityWeight
	}
	sig.IsFraud = len(sig.Matches) >= fraudMatchCount || highSeverityHit
	return sig
}

// Categories returns the names of the taxonomy's categories in declaration
// order.
func (m *Matcher) Categories() []string {
	names := make([]string, len(m.categories))
	for i, cat := range m.categories {
		names[i] = cat.Name
	}
	return names
}

func newCategory(name string, sources ...string) Category {
	cat := Category{Name: name, sources: sources}
	cat.patterns = make([]*regexp.Regexp, len(sources))
	for i, src := range sources {
		cat.patterns[i] = regexp.MustCompile(src)
	}
	return cat
}

// defaultTaxonomy declares the fraud-indicator categories. Patterns are
// bounded two-token regexes over normalized text, so evaluation cost stays
// linear in the input.
func defaultTaxonomy() []Category {
	return []Category{
		newCategory("certificate_payment",
			`pay.*certificate`,
			`certificate.*fee`,
			`certificate.*cost`,
			`certificate.*payment`,
			`pay.*for.*certificate`,
			`certificate.*price`,
			`certificate.*charge`,
			`certificate.*amount`,
			`certificate.*money`,
			`certificate.*dollars`,
			`certificate.*rupees`,
			`certificate.*rs`,
			`certificate.*inr`,
		),
		newCategory("virtual_internship_suspicious",
			`virtual.*internship.*pay`,
			`online.*internship.*fee`,
			`remote.*internship.*cost`,
			`virtual.*internship.*money`,
			`online.*internship.*payment`,
			`remote.*internship.*charge`,
			`virtual.*internship.*certificate`,
			`online.*internship.*certificate`,
			`remote.*internship.*certificate`,
			`pay.*virtual.*internship`,
			`fee.*virtual.*internship`,
			`certificate.*virtual.*internship`,
		),
		newCategory("urgent_opportunity",
			`urgent.*opportunity`,
			`immediate.*start`,
			`limited.*time`,
			`quick.*money`,
			`fast.*cash`,
			`instant.*payment`,
			`urgent.*hiring`,
			`immediate.*hiring`,
		),
		newCategory("no_experience_required",
			`no.*experience.*needed`,
			`no.*experience.*required`,
			`no.*skills.*needed`,
			`no.*qualification.*required`,
			`anyone.*can.*apply`,
			`everyone.*welcome`,
			`no.*background.*needed`,
		),
		newCategory("suspicious_payment",
			`send.*money`,
			`transfer.*funds`,
			`process.*payments`,
			`handle.*money`,
			`bank.*details`,
			`account.*number`,
			`personal.*information`,
			`credit.*card`,
			`debit.*card`,
			`upi.*id`,
			`paytm.*number`,
			`phonepe.*number`,
		),
		newCategory("commission_based",
			`commission.*based`,
			`commission.*only`,
			`no.*salary`,
			`commission.*payment`,
			`percentage.*commission`,
			`commission.*work`,
		),
	}
}
