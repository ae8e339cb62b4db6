package detector

import (
	"strings"
	"testing"

	"github.com/jobguard/jobguard/internal/model"
	"github.com/jobguard/jobguard/internal/rules"
)

// fakeClassifier returns a canned statistical signal so fusion behavior can
// be pinned independently of real artifacts.
type fakeClassifier struct {
	available bool
	signal    model.Signal
}

func (f fakeClassifier) Available() bool { return f.available }

func (f fakeClassifier) Classify(text string) model.Signal {
	if !f.available {
		return model.Signal{State: model.StateUnavailable}
	}
	if strings.TrimSpace(text) == "" {
		return model.Signal{State: model.StateNoContent}
	}
	return f.signal
}

func realSays(pReal float64) fakeClassifier {
	return fakeClassifier{available: true, signal: model.Signal{
		PReal: pReal, PFraud: 1 - pReal, IsFraud: pReal < 0.5, State: model.StateOK,
	}}
}

func fraudSays(pFraud float64) fakeClassifier {
	return fakeClassifier{available: true, signal: model.Signal{
		PReal: 1 - pFraud, PFraud: pFraud, IsFraud: true, State: model.StateOK,
	}}
}

func TestClassify_RuleOverrideBeatsConfidentModel(t *testing.T) {
	// The model is near-certain the posting is real, but certificate-payment
	// language plus a second category pushes the boost past the override bar.
	d := New(realSays(0.99))
	v := d.Classify("Pay the certificate fee now. Urgent opportunity!", DefaultThreshold)
	if !v.IsFraud {
		t.Fatalf("expected rule override to force fraud, got %+v", v)
	}
	if v.Label != "Likely FRAUD" {
		t.Fatalf("expected fraud label, got %q", v.Label)
	}
	if v.Confidence < 85 {
		t.Fatalf("expected override confidence >= 85, got %f", v.Confidence)
	}
}

func TestClassify_EndToEndFraudScenario(t *testing.T) {
	d := New(realSays(0.9))
	text := "Pay $50 for the certificate upon completion. No experience required. Virtual internship."
	v := d.Classify(text, DefaultThreshold)

	if !v.IsFraud || v.Label != "Likely FRAUD" {
		t.Fatalf("expected fraud verdict, got %+v", v)
	}
	if v.Confidence < 85 {
		t.Fatalf("expected confidence >= 85, got %f", v.Confidence)
	}
	var sawCert, sawVirtual bool
	for _, m := range v.Matches {
		if strings.HasPrefix(m, "certificate_payment:") {
			sawCert = true
		}
		if strings.HasPrefix(m, "virtual_internship_suspicious:") {
			sawVirtual = true
		}
	}
	if !sawCert || !sawVirtual {
		t.Fatalf("expected certificate_payment and virtual_internship_suspicious matches, got %v", v.Matches)
	}
	if v.WordCount != 12 {
		t.Fatalf("expected word count 12, got %d", v.WordCount)
	}
}

func TestClassify_CleanTextFollowsModel(t *testing.T) {
	d := New(realSays(0.9))
	v := d.Classify("We are hiring a senior engineer to join our platform team.", DefaultThreshold)
	if v.IsFraud {
		t.Fatalf("expected real verdict, got %+v", v)
	}
	if v.Confidence != 90.0 {
		t.Fatalf("expected confidence 90.0, got %f", v.Confidence)
	}
	if len(v.Matches) != 0 {
		t.Fatalf("expected no pattern matches, got %v", v.Matches)
	}
	if v.Label != "Likely REAL" {
		t.Fatalf("expected real label, got %q", v.Label)
	}
}

func TestClassify_BoostRaisesFraudConfidence(t *testing.T) {
	d := New(fraudSays(0.6))
	// One low-severity match: commission_based. Not enough to flag fraud by
	// rules, but it raises the model's fraud confidence by 15.
	v := d.Classify("commission based role", DefaultThreshold)
	if !v.IsFraud {
		t.Fatalf("expected fraud verdict, got %+v", v)
	}
	if v.Confidence != 75.0 {
		t.Fatalf("expected 60 + 15 = 75, got %f", v.Confidence)
	}
}

func TestClassify_TwoMatchesTriggerOverride(t *testing.T) {
	d := New(realSays(0.7))
	// Two matches flag rule fraud and carry boost 30, enough to override.
	v := d.Classify("urgent opportunity, no experience needed", DefaultThreshold)
	if !v.IsFraud || v.Label != "Likely FRAUD" {
		t.Fatalf("expected override fraud verdict, got %+v", v)
	}
	if v.Confidence != 100.0 {
		t.Fatalf("expected min(100, 85+30) = 100, got %f", v.Confidence)
	}
}

func TestFuse_BoostFlipsWeakRealVerdict(t *testing.T) {
	rule := rules.Signal{
		Matches: []rules.Match{{Category: "urgent_opportunity", Pattern: "urgent.*hiring"}},
		Boost:   20,
		IsFraud: false,
	}
	stat := model.Signal{PReal: 0.7, PFraud: 0.3, IsFraud: false, State: model.StateOK}
	v := fuse(rule, stat, DefaultThreshold)
	if !v.IsFraud {
		t.Fatalf("expected boost >= 20 to flip the real label, got %+v", v)
	}
	if v.Confidence != 50.0 {
		t.Fatalf("expected 70 - 20 = 50, got %f", v.Confidence)
	}
	if v.Label != "Likely FRAUD" {
		t.Fatalf("expected flipped label above threshold, got %q", v.Label)
	}
}

func TestFuse_SmallBoostLowersRealConfidenceWithoutFlip(t *testing.T) {
	rule := rules.Signal{
		Matches: []rules.Match{{Category: "commission_based", Pattern: "commission.*based"}},
		Boost:   15,
		IsFraud: false,
	}
	stat := model.Signal{PReal: 0.9, PFraud: 0.1, IsFraud: false, State: model.StateOK}
	v := fuse(rule, stat, DefaultThreshold)
	if v.IsFraud {
		t.Fatalf("expected label to stay real below flip boost, got %+v", v)
	}
	if v.Confidence != 75.0 {
		t.Fatalf("expected 90 - 15 = 75, got %f", v.Confidence)
	}
}

func TestClassify_ThresholdAsymmetry(t *testing.T) {
	cases := []struct {
		pFraud float64
		want   string
	}{
		{0.45, "Likely FRAUD"},
		{0.39, "Likely REAL"},
	}
	for _, tc := range cases {
		d := New(fraudSays(tc.pFraud))
		v := d.Classify("an ordinary posting with nothing to match", DefaultThreshold)
		if v.Label != tc.want {
			t.Fatalf("pFraud=%f: expected %q, got %q (confidence %f)", tc.pFraud, tc.want, v.Label, v.Confidence)
		}
	}
}

func TestClassify_EmptyInputSentinel(t *testing.T) {
	d := New(realSays(0.9))
	for _, raw := range []string{"", "   ", "<div></div>", "!!! ??? ..."} {
		v := d.Classify(raw, DefaultThreshold)
		if v.State != StateNoContent {
			t.Fatalf("expected no-content sentinel for %q, got %+v", raw, v)
		}
		if v.Confidence != 0 || v.IsFraud {
			t.Fatalf("expected zeroed sentinel for %q, got %+v", raw, v)
		}
	}
}

func TestClassify_ModelUnavailableSentinel(t *testing.T) {
	d := New(fakeClassifier{available: false})
	v := d.Classify("pay for the certificate", DefaultThreshold)
	if v.State != StateUnavailable {
		t.Fatalf("expected unavailable sentinel, got %+v", v)
	}
	if v.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %f", v.Confidence)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	d := New(realSays(0.8))
	text := "urgent hiring, virtual internship, pay certificate fee, send money"
	first := d.Classify(text, DefaultThreshold)
	second := d.Classify(text, DefaultThreshold)
	if first.Confidence != second.Confidence || first.Label != second.Label {
		t.Fatalf("verdicts differ: %+v vs %+v", first, second)
	}
	if len(first.Matches) != len(second.Matches) {
		t.Fatalf("match lists differ: %v vs %v", first.Matches, second.Matches)
	}
	for i := range first.Matches {
		if first.Matches[i] != second.Matches[i] {
			t.Fatalf("match order differs at %d: %q vs %q", i, first.Matches[i], second.Matches[i])
		}
	}
}

func TestClassify_ConfidenceClamped(t *testing.T) {
	d := New(fraudSays(0.99))
	v := d.Classify("pay certificate fee, urgent hiring, send money, no experience needed", DefaultThreshold)
	if v.Confidence > 100 || v.Confidence < 0 {
		t.Fatalf("confidence out of range: %f", v.Confidence)
	}
}
