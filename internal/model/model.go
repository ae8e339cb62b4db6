// Package model wraps the pre-fit TF-IDF vectorizer and logistic-regression
// classifier exported by the offline training pipeline. Artifacts are loaded
// once at startup and are read-only afterwards, so a single Classifier is
// safe for concurrent use across requests.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// State distinguishes a real probability estimate from the sentinel results
// the adapter returns instead of raising.
type State int

const (
	// StateOK means PReal/PFraud carry a genuine model estimate.
	StateOK State = iota
	// StateNoContent means the input was empty after normalization and the
	// model was not invoked.
	StateNoContent
	// StateUnavailable means the artifacts failed to load at construction;
	// every call returns this until the process restarts.
	StateUnavailable
)

// Signal is the classifier's output: a probability pair summing to 1 and the
// argmax label (label 1 = fraudulent, matching the training data).
type Signal struct {
	PReal   float64
	PFraud  float64
	IsFraud bool
	State   State
}

// Classifier holds the loaded artifacts. The zero value is unusable; obtain
// one through Load.
type Classifier struct {
	vec     *vectorizer
	weights *logreg
	loadErr error
}

type vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	MaxFeatures int            `json:"max_features"`
}

type logreg struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Load reads both artifact files. On failure it still returns a usable
// Classifier whose Classify always reports StateUnavailable; the error is
// returned so the caller can log the deployment defect once. Loading is
// never retried: the artifacts are static files.
func Load(vectorizerPath, classifierPath string) (*Classifier, error) {
	c := &Classifier{}
	vec := &vectorizer{}
	if err := readJSON(vectorizerPath, vec); err != nil {
		c.loadErr = fmt.Errorf("load vectorizer: %w", err)
		return c, c.loadErr
	}
	weights := &logreg{}
	if err := readJSON(classifierPath, weights); err != nil {
		c.loadErr = fmt.Errorf("load classifier: %w", err)
		return c, c.loadErr
	}
	if len(vec.IDF) != len(weights.Coefficients) {
		c.loadErr = fmt.Errorf("artifact mismatch: %d idf weights vs %d coefficients", len(vec.IDF), len(weights.Coefficients))
		return c, c.loadErr
	}
	for term, col := range vec.Vocabulary {
		if col < 0 || col >= len(vec.IDF) {
			c.loadErr = fmt.Errorf("artifact mismatch: term %q maps to column %d outside idf range", term, col)
			return c, c.loadErr
		}
	}
	c.vec = vec
	c.weights = weights
	return c, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Available reports whether the artifacts loaded successfully.
func (c *Classifier) Available() bool {
	return c.loadErr == nil && c.vec != nil
}

// Classify vectorizes normalized text and returns the class probabilities.
// Empty input and an unavailable model yield sentinel signals rather than
// errors.
func (c *Classifier) Classify(text string) Signal {
	if !c.Available() {
		return Signal{State: StateUnavailable}
	}
	if strings.TrimSpace(text) == "" {
		return Signal{State: StateNoContent}
	}
	features := c.vectorize(text)
	cols := make([]int, 0, len(features))
	for col := range features {
		cols = append(cols, col)
	}
	// Summation order is fixed so repeated calls produce bit-identical
	// probabilities; map iteration order would let them drift by an ulp.
	sort.Ints(cols)
	z := c.weights.Intercept
	for _, col := range cols {
		z += c.weights.Coefficients[col] * features[col]
	}
	pFraud := sigmoid(z)
	return Signal{
		PReal:   1 - pFraud,
		PFraud:  pFraud,
		IsFraud: pFraud >= 0.5,
		State:   StateOK,
	}
}

// vectorize computes the sparse l2-normalized TF-IDF vector for text, using
// the same semantics the training-side vectorizer applied: raw term counts
// scaled by the exported idf weights, terms outside the fitted vocabulary
// dropped.
func (c *Classifier) vectorize(text string) map[int]float64 {
	features := make(map[int]float64)
	for _, token := range tokenize(text) {
		col, ok := c.vec.Vocabulary[token]
		if !ok {
			continue
		}
		features[col] += c.vec.IDF[col]
	}
	var norm float64
	for _, val := range features {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range features {
			features[col] /= norm
		}
	}
	return features
}

// tokenize splits normalized text into word tokens of two or more
// characters, matching the training tokenizer.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
