package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Model artifacts
	VectorizerPath string
	ClassifierPath string

	// Classification
	Threshold float64

	// Scraping
	UserAgent        string
	FetchTimeout     time.Duration
	MaxFetchDelay    time.Duration
	MinContentLength int

	// Server
	ListenAddr string

	// Behavior
	OutputPDFPath string
	Verbose       bool
}
