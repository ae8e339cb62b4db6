package detector

import (
	"regexp"
	"strings"
)

// Risk grades the outcome of the heuristic content analyses.
type Risk int

const (
	RiskInfo Risk = iota
	RiskNormal
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskNormal:
		return "NORMAL"
	case RiskMedium:
		return "MEDIUM RISK"
	case RiskHigh:
		return "HIGH RISK"
	default:
		return "INFO"
	}
}

// Assessment is the result of one heuristic analysis: a graded risk level
// plus a short human-readable summary for reports.
type Assessment struct {
	Level   Risk
	Summary string
}

var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*(?:-\d{1,3}(?:,\d{3})*)?\s*(?:per\s+)?(?:hour|day|week|month|year)`),
	regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:-\d{1,3}(?:,\d{3})*)?\s*(?:dollars?|usd|inr|rupees?)\s*(?:per\s+)?(?:hour|day|week|month|year)`),
	regexp.MustCompile(`(?:salary|pay|compensation|earnings?)\s*(?:of\s+)?\$\d{1,3}(?:,\d{3})*(?:-\d{1,3}(?:,\d{3})*)?`),
}

var salarySuspiciousTerms = []string{
	"no experience required",
	"work from home",
	"immediate start",
	"quick money",
	"fast cash",
	"easy money",
	"high salary",
	"excellent pay",
	"great compensation",
}

// AnalyzeSalary checks salary mentions for unrealistic promises. It works on
// the raw text: the amounts and punctuation full normalization would strip
// are exactly what it needs.
func AnalyzeSalary(raw string) Assessment {
	text := strings.ToLower(raw)
	salaryFound := false
	for _, re := range salaryPatterns {
		if re.MatchString(text) {
			salaryFound = true
			break
		}
	}
	suspicious := countTerms(text, salarySuspiciousTerms)
	switch {
	case salaryFound && suspicious >= 3:
		return Assessment{RiskHigh, "Unrealistic salary promises detected"}
	case salaryFound && suspicious >= 1:
		return Assessment{RiskMedium, "Potentially unrealistic salary"}
	case salaryFound:
		return Assessment{RiskNormal, "Standard salary range"}
	default:
		return Assessment{RiskInfo, "No specific salary mentioned"}
	}
}

var professionalTerms = []string{
	"requirements", "qualifications", "responsibilities", "duties",
	"experience", "skills", "education", "degree", "certification",
	"team", "collaboration", "leadership", "management",
	"project", "development", "analysis", "strategy",
}

var unprofessionalTerms = []string{
	"urgent", "immediate", "quick", "fast", "easy",
	"no experience needed", "anyone can apply", "everyone welcome",
	"work from anywhere", "flexible hours", "no pressure",
	"commission only", "no salary", "payment required",
}

// AnalyzeDescriptionQuality rates how professionally the posting is written
// by comparing the density of professional and unprofessional vocabulary.
func AnalyzeDescriptionQuality(raw string) Assessment {
	text := strings.ToLower(raw)
	professional := countTerms(text, professionalTerms)
	unprofessional := countTerms(text, unprofessionalTerms)

	totalWords := len(strings.Fields(raw))
	if totalWords == 0 {
		totalWords = 1
	}
	professionalRatio := float64(professional) / float64(totalWords) * 100
	unprofessionalRatio := float64(unprofessional) / float64(totalWords) * 100

	switch {
	case professionalRatio > 2 && unprofessionalRatio < 1:
		return Assessment{RiskNormal, "Professional posting description"}
	case professionalRatio > 1 && unprofessionalRatio < 2:
		return Assessment{RiskNormal, "Well-structured posting description"}
	case unprofessionalRatio > 2:
		return Assessment{RiskHigh, "Unprofessional posting description"}
	default:
		return Assessment{RiskInfo, "Standard posting description"}
	}
}

var suspiciousInterviewTerms = []string{
	"no interview required",
	"immediate hiring",
	"quick hiring process",
	"no background check",
	"no verification needed",
	"start immediately",
	"no questions asked",
	"automatic approval",
	"instant approval",
	"no formal interview",
	"chat interview only",
	"text interview",
	"whatsapp interview",
}

var legitimateInterviewTerms = []string{
	"interview process",
	"multiple rounds",
	"technical interview",
	"behavioral interview",
	"background check",
	"reference check",
	"skill assessment",
	"coding test",
	"presentation",
	"case study",
}

// AnalyzeInterviewProcess flags hiring procedures that skip any real
// screening, a common trait of fraudulent postings.
func AnalyzeInterviewProcess(raw string) Assessment {
	text := strings.ToLower(raw)
	suspicious := countTerms(text, suspiciousInterviewTerms)
	legitimate := countTerms(text, legitimateInterviewTerms)
	switch {
	case suspicious >= 2:
		return Assessment{RiskHigh, "Suspicious interview process detected"}
	case suspicious >= 1:
		return Assessment{RiskMedium, "Potentially suspicious interview process"}
	case legitimate >= 2:
		return Assessment{RiskNormal, "Standard interview process"}
	default:
		return Assessment{RiskInfo, "No specific interview details mentioned"}
	}
}

func countTerms(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}
