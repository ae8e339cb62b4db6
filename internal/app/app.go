// Package app wires the detection components together for the CLI and the
// HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jobguard/jobguard/internal/api"
	"github.com/jobguard/jobguard/internal/detector"
	"github.com/jobguard/jobguard/internal/model"
	"github.com/jobguard/jobguard/internal/report"
	"github.com/jobguard/jobguard/internal/reputation"
	"github.com/jobguard/jobguard/internal/scrape"
)

// App holds the constructed components. All of them are read-only after New
// and safe for concurrent requests.
type App struct {
	cfg       Config
	detector  *detector.Detector
	extractor *scrape.Extractor
	companies *reputation.Lookup
}

// New loads the model artifacts and builds the component graph. A failed
// model load is logged loudly — it is a deployment defect — but the app
// still constructs: classification then returns sentinel verdicts, which is
// the contract the callers render as "could not analyze".
func New(cfg Config) *App {
	clf, err := model.Load(cfg.VectorizerPath, cfg.ClassifierPath)
	if err != nil {
		log.Error().Err(err).
			Str("vectorizer", cfg.VectorizerPath).
			Str("classifier", cfg.ClassifierPath).
			Msg("model artifacts failed to load; classification will return sentinel verdicts")
	} else {
		log.Info().Str("vectorizer", cfg.VectorizerPath).Msg("model loaded")
	}

	if cfg.Threshold == 0 {
		cfg.Threshold = detector.DefaultThreshold
	}
	return &App{
		cfg:      cfg,
		detector: detector.New(clf),
		extractor: &scrape.Extractor{
			UserAgent:        cfg.UserAgent,
			Timeout:          cfg.FetchTimeout,
			MaxDelay:         cfg.MaxFetchDelay,
			MinContentLength: cfg.MinContentLength,
		},
		companies: reputation.NewLookup(),
	}
}

// ClassifyText runs raw text through the full classification path.
func (a *App) ClassifyText(text string) detector.Verdict {
	return a.detector.Classify(text, a.cfg.Threshold)
}

// ClassifyURL extracts posting text from url and classifies it. When
// extraction fails the returned verdict is the zero value and the extraction
// result carries the cause.
func (a *App) ClassifyURL(ctx context.Context, url string) (scrape.Result, detector.Verdict) {
	res := a.extractor.Extract(ctx, url)
	if !res.OK {
		return res, detector.Verdict{}
	}
	return res, a.ClassifyText(res.Text)
}

// WriteReport renders verdict plus the heuristic analyses of text to a PDF.
func (a *App) WriteReport(verdict detector.Verdict, text, outPath string) error {
	return report.WritePDF(report.Data{
		Verdict:     verdict,
		Salary:      detector.AnalyzeSalary(text),
		Quality:     detector.AnalyzeDescriptionQuality(text),
		Interview:   detector.AnalyzeInterviewProcess(text),
		GeneratedAt: time.Now(),
	}, outPath)
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	handler := api.NewHandler(a.detector, a.extractor.Extract, a.companies, a.cfg.Threshold)
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", a.cfg.ListenAddr).Msg("serving")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
