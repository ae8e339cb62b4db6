package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to flags and env.
type FileConfig struct {
	Model struct {
		Vectorizer string `yaml:"vectorizer"`
		Classifier string `yaml:"classifier"`
	} `yaml:"model"`

	Threshold float64 `yaml:"threshold"`

	Scrape struct {
		UserAgent        string        `yaml:"userAgent"`
		Timeout          time.Duration `yaml:"timeout"`
		MaxDelay         time.Duration `yaml:"maxDelay"`
		MinContentLength int           `yaml:"minContentLength"`
	} `yaml:"scrape"`

	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads YAML into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset. Flags should already have been parsed; file
// config supplies defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.VectorizerPath == "" && fc.Model.Vectorizer != "" {
		cfg.VectorizerPath = fc.Model.Vectorizer
	}
	if cfg.ClassifierPath == "" && fc.Model.Classifier != "" {
		cfg.ClassifierPath = fc.Model.Classifier
	}
	if cfg.Threshold == 0 && fc.Threshold > 0 {
		cfg.Threshold = fc.Threshold
	}
	if cfg.UserAgent == "" && fc.Scrape.UserAgent != "" {
		cfg.UserAgent = fc.Scrape.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Scrape.Timeout > 0 {
		cfg.FetchTimeout = fc.Scrape.Timeout
	}
	if cfg.MaxFetchDelay == 0 && fc.Scrape.MaxDelay > 0 {
		cfg.MaxFetchDelay = fc.Scrape.MaxDelay
	}
	if cfg.MinContentLength == 0 && fc.Scrape.MinContentLength > 0 {
		cfg.MinContentLength = fc.Scrape.MinContentLength
	}
	if cfg.ListenAddr == "" && fc.Server.Listen != "" {
		cfg.ListenAddr = fc.Server.Listen
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.VectorizerPath) == "" {
		return errors.New("config: vectorizer path is required (or set MODEL_DIR)")
	}
	if strings.TrimSpace(cfg.ClassifierPath) == "" {
		return errors.New("config: classifier path is required (or set MODEL_DIR)")
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return errors.New("config: threshold must be in (0, 1]")
	}
	if cfg.MinContentLength < 0 {
		return errors.New("config: negative content length is not allowed")
	}
	return nil
}
