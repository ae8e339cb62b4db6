package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/detector"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		text           string
		inputPath      string
		postingURL     string
		serve          bool
		listenAddr     string
		vectorizerPath string
		classifierPath string
		threshold      float64
		fetchTimeout   time.Duration
		maxDelay       time.Duration
		userAgent      string
		pdfPath        string
		configPath     string
		verbose        bool
	)

	flag.StringVar(&text, "text", "", "Job posting text to classify")
	flag.StringVar(&inputPath, "input", "", "Path to a file containing posting text")
	flag.StringVar(&postingURL, "url", "", "Posting URL to extract and classify")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API server")
	flag.StringVar(&listenAddr, "listen", os.Getenv("LISTEN_ADDR"), "HTTP listen address (default :8080)")
	flag.StringVar(&vectorizerPath, "model.vectorizer", os.Getenv("VECTORIZER_PATH"), "Path to the exported TF-IDF vectorizer JSON")
	flag.StringVar(&classifierPath, "model.classifier", os.Getenv("CLASSIFIER_PATH"), "Path to the exported classifier weights JSON")
	flag.Float64Var(&threshold, "threshold", 0, "Fraud label sensitivity in (0,1] (default 0.4)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request timeout for URL extraction (default 10s)")
	flag.DurationVar(&maxDelay, "fetch.maxDelay", 0, "Upper bound for the random politeness delay before fetches")
	flag.StringVar(&userAgent, "fetch.ua", "", "Override User-Agent for URL extraction")
	flag.StringVar(&pdfPath, "pdf", "", "Write a PDF analysis report to this path")
	flag.StringVar(&configPath, "config", os.Getenv("JOBGUARD_CONFIG"), "Path to YAML config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		VectorizerPath: vectorizerPath,
		ClassifierPath: classifierPath,
		Threshold:      threshold,
		UserAgent:      userAgent,
		FetchTimeout:   fetchTimeout,
		MaxFetchDelay:  maxDelay,
		ListenAddr:     listenAddr,
		OutputPDFPath:  pdfPath,
		Verbose:        verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	a := app.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case serve:
		if err := a.Serve(ctx); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}

	case postingURL != "":
		res, verdict := a.ClassifyURL(ctx, postingURL)
		if !res.OK {
			log.Fatal().Err(res.Err).Str("url", postingURL).Msg("extraction failed")
		}
		printVerdict(verdict)
		writeReportIfRequested(a, verdict, res.Text, cfg.OutputPDFPath)

	case text != "" || inputPath != "":
		if inputPath != "" {
			b, err := os.ReadFile(inputPath)
			if err != nil {
				log.Fatal().Err(err).Str("path", inputPath).Msg("read input")
			}
			text = string(b)
		}
		verdict := a.ClassifyText(text)
		printVerdict(verdict)
		writeReportIfRequested(a, verdict, text, cfg.OutputPDFPath)

	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -text, -input, -url or -serve")
		flag.Usage()
		os.Exit(2)
	}
}

func printVerdict(v detector.Verdict) {
	fmt.Printf("%s (confidence %.1f%%, %d words)\n", v.Label, v.Confidence, v.WordCount)
	if len(v.Matches) > 0 {
		fmt.Println("Suspicious patterns:")
		for _, m := range v.Matches {
			fmt.Println("  - " + strings.TrimSpace(m))
		}
	}
}

func writeReportIfRequested(a *app.App, v detector.Verdict, text, path string) {
	if path == "" {
		return
	}
	if err := a.WriteReport(v, text, path); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("write report")
	}
	log.Info().Str("out", path).Msg("wrote report")
}
