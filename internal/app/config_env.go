package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.VectorizerPath == "" || cfg.ClassifierPath == "" {
		// MODEL_DIR supplies both artifact paths at their conventional names.
		if dir := os.Getenv("MODEL_DIR"); dir != "" {
			if cfg.VectorizerPath == "" {
				cfg.VectorizerPath = filepath.Join(dir, "vectorizer.json")
			}
			if cfg.ClassifierPath == "" {
				cfg.ClassifierPath = filepath.Join(dir, "classifier.json")
			}
		}
	}
	if cfg.VectorizerPath == "" {
		cfg.VectorizerPath = os.Getenv("VECTORIZER_PATH")
	}
	if cfg.ClassifierPath == "" {
		cfg.ClassifierPath = os.Getenv("CLASSIFIER_PATH")
	}

	if cfg.Threshold == 0 {
		if v := os.Getenv("DETECT_THRESHOLD"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
				cfg.Threshold = f
			}
		}
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	}

	if cfg.FetchTimeout == 0 {
		if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				cfg.FetchTimeout = d
			}
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("SCRAPE_USER_AGENT")
	}
}
