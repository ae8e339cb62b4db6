// Package detector fuses the rule-based pattern signal with the statistical
// model's probability estimate into a single verdict. The policy is
// deterministic: identical input always produces an identical verdict.
package detector

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jobguard/jobguard/internal/model"
	"github.com/jobguard/jobguard/internal/rules"
	"github.com/jobguard/jobguard/internal/textnorm"
)

const (
	// DefaultThreshold is the sensitivity applied when mapping the fraud flag
	// to the verdict label. Below it the label reads "Likely REAL" even when
	// the flag is set, biasing low-confidence verdicts away from accusation.
	DefaultThreshold = 0.4

	// overrideBoost is the rule boost at which a fraudulent rule signal
	// overrides the statistical model entirely.
	overrideBoost = 30
	// overrideBase is the base confidence of an overriding rule verdict.
	overrideBase = 85
	// flipBoost is the rule boost at which rule evidence flips a "real"
	// statistical label to fraud.
	flipBoost = 20

	labelFraud = "Likely FRAUD"
	labelReal  = "Likely REAL"
)

// State marks whether a verdict carries a genuine decision or one of the
// sentinel outcomes.
type State int

const (
	// StateOK is a genuine classification.
	StateOK State = iota
	// StateNoContent means normalization left nothing to analyze.
	StateNoContent
	// StateUnavailable means the model artifacts never loaded.
	StateUnavailable
)

// Verdict is the final classification result handed to the presentation
// layer. It is a value: created once per request and never mutated.
type Verdict struct {
	IsFraud    bool
	Label      string
	Confidence float64
	Matches    []string
	WordCount  int
	State      State
}

// TextClassifier is the statistical side of the fusion. *model.Classifier
// satisfies it; tests substitute doubles.
type TextClassifier interface {
	Available() bool
	Classify(text string) model.Signal
}

// Detector owns the compiled rule taxonomy and the injected statistical
// classifier. It is safe for concurrent use.
type Detector struct {
	matcher *rules.Matcher
	clf     TextClassifier
}

// New builds a detector over the default rule taxonomy.
func New(clf TextClassifier) *Detector {
	return &Detector{matcher: rules.NewMatcher(), clf: clf}
}

// NewWithMatcher builds a detector with a caller-supplied matcher.
func NewWithMatcher(matcher *rules.Matcher, clf TextClassifier) *Detector {
	return &Detector{matcher: matcher, clf: clf}
}

// Classify normalizes raw text and fuses the rule and model signals under
// the given sensitivity threshold. It never returns an error: empty input
// and an unavailable model resolve to sentinel verdicts.
func (d *Detector) Classify(raw string, threshold float64) Verdict {
	wordCount := len(strings.Fields(raw))

	if !d.clf.Available() {
		return Verdict{Label: "Analysis unavailable", State: StateUnavailable, WordCount: wordCount}
	}

	text := textnorm.Normalize(raw)
	if text == "" {
		return Verdict{Label: "No text to analyze", State: StateNoContent, WordCount: wordCount}
	}

	rule := d.matcher.Match(text)

	// A strong deterministic signal overrides the model entirely, so the
	// model is not invoked at all in that case.
	if rule.IsFraud && rule.Boost >= overrideBoost {
		log.Debug().Int("boost", rule.Boost).Int("matches", len(rule.Matches)).Msg("rule override")
		v := fuse(rule, model.Signal{}, threshold)
		v.WordCount = wordCount
		return v
	}

	stat := d.clf.Classify(text)
	switch stat.State {
	case model.StateUnavailable:
		return Verdict{Label: "Analysis unavailable", State: StateUnavailable, WordCount: wordCount}
	case model.StateNoContent:
		return Verdict{Label: "No text to analyze", State: StateNoContent, WordCount: wordCount}
	}

	v := fuse(rule, stat, threshold)
	v.WordCount = wordCount
	return v
}

// fuse combines the rule signal and the statistical signal into a verdict.
// Priority order: rule override, then the model's argmax probability as the
// base, then boost adjustment, with rule evidence able to flip a weakly-held
// "real" label to fraud.
func fuse(rule rules.Signal, stat model.Signal, threshold float64) Verdict {
	if rule.IsFraud && rule.Boost >= overrideBoost {
		conf := clamp(float64(overrideBase + rule.Boost))
		return Verdict{
			IsFraud:    true,
			Label:      labelText(true, conf, threshold),
			Confidence: conf,
			Matches:    describe(rule.Matches),
		}
	}

	isFraud := stat.IsFraud
	var conf float64
	if isFraud {
		conf = stat.PFraud * 100
	} else {
		conf = stat.PReal * 100
	}

	if len(rule.Matches) > 0 {
		if isFraud {
			conf = clamp(conf + float64(rule.Boost))
		} else {
			conf = clamp(conf - float64(rule.Boost))
			if rule.Boost >= flipBoost {
				isFraud = true
			}
		}
	}

	return Verdict{
		IsFraud:    isFraud,
		Label:      labelText(isFraud, conf, threshold),
		Confidence: clamp(conf),
		Matches:    describe(rule.Matches),
	}
}

func labelText(isFraud bool, confidence, threshold float64) string {
	if isFraud && confidence > threshold*100 {
		return labelFraud
	}
	return labelReal
}

func describe(matches []rules.Match) []string {
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.String()
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
