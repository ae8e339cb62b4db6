// Package api exposes the detection core over HTTP JSON. It is a thin
// collaborator layer: all decisions happen in the detector, scraper and
// reputation packages, and every core failure surfaces here as a well-typed
// result rather than a fault.
package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jobguard/jobguard/internal/detector"
	"github.com/jobguard/jobguard/internal/report"
	"github.com/jobguard/jobguard/internal/reputation"
	"github.com/jobguard/jobguard/internal/scrape"
)

// ExtractFunc performs a URL extraction. *scrape.Extractor's Extract method
// satisfies it; tests substitute doubles.
type ExtractFunc func(ctx context.Context, url string) scrape.Result

// Handler wires the core components into HTTP endpoints.
type Handler struct {
	detector  *detector.Detector
	extract   ExtractFunc
	companies *reputation.Lookup
	threshold float64
}

// NewHandler builds a handler around the injected core components.
func NewHandler(d *detector.Detector, extract ExtractFunc, companies *reputation.Lookup, threshold float64) *Handler {
	if threshold <= 0 {
		threshold = detector.DefaultThreshold
	}
	return &Handler{detector: d, extract: extract, companies: companies, threshold: threshold}
}

// DetectRequest is the POST /detect payload.
type DetectRequest struct {
	Text      string  `json:"text" binding:"required"`
	Threshold float64 `json:"threshold"`
}

// DetectResponse mirrors the verdict plus the heuristic analyses.
type DetectResponse struct {
	Result          string   `json:"result"`
	ConfidenceScore float64  `json:"confidence_score"`
	IsFraud         bool     `json:"is_fraud"`
	PatternMatches  []string `json:"pattern_matches"`
	WordCount       int      `json:"word_count"`
	SalaryAnalysis  string   `json:"salary_analysis"`
	QualityAnalysis string   `json:"quality_analysis"`
	InterviewCheck  string   `json:"interview_analysis"`
}

// Detect handles POST /api/v1/detect.
func (h *Handler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = h.threshold
	}
	c.JSON(http.StatusOK, h.analyze(req.Text, threshold))
}

func (h *Handler) analyze(text string, threshold float64) DetectResponse {
	v := h.detector.Classify(text, threshold)
	salary := detector.AnalyzeSalary(text)
	quality := detector.AnalyzeDescriptionQuality(text)
	interview := detector.AnalyzeInterviewProcess(text)
	return DetectResponse{
		Result:          v.Label,
		ConfidenceScore: round1(v.Confidence),
		IsFraud:         v.IsFraud,
		PatternMatches:  v.Matches,
		WordCount:       v.WordCount,
		SalaryAnalysis:  salary.Level.String() + ": " + salary.Summary,
		QualityAnalysis: quality.Level.String() + ": " + quality.Summary,
		InterviewCheck:  interview.Level.String() + ": " + interview.Summary,
	}
}

// ExtractRequest is the POST /extract payload.
type ExtractRequest struct {
	URL     string `json:"url" binding:"required"`
	Analyze bool   `json:"analyze"`
}

// ExtractResponse returns the scraped text, optionally with a verdict.
type ExtractResponse struct {
	Success   bool            `json:"success"`
	Text      string          `json:"text,omitempty"`
	Platform  string          `json:"platform"`
	WordCount int             `json:"word_count"`
	Error     string          `json:"error,omitempty"`
	Analysis  *DetectResponse `json:"analysis,omitempty"`
}

// Extract handles POST /api/v1/extract. With analyze=true the extracted
// text runs straight through the classification path.
func (h *Handler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := h.extract(c.Request.Context(), req.URL)
	if !res.OK {
		msg := "could not extract text from url"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, ExtractResponse{Platform: res.Platform, Error: msg})
		return
	}
	resp := ExtractResponse{
		Success:   true,
		Text:      res.Text,
		Platform:  res.Platform,
		WordCount: wordCount(res.Text),
	}
	if req.Analyze {
		analysis := h.analyze(res.Text, h.threshold)
		resp.Analysis = &analysis
	}
	c.JSON(http.StatusOK, resp)
}

// ReportRequest is the POST /report payload.
type ReportRequest struct {
	Text      string  `json:"text" binding:"required"`
	Threshold float64 `json:"threshold"`
}

// Report handles POST /api/v1/report. It runs the full classification path
// over the posted text and streams the rendered PDF back.
func (h *Handler) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = h.threshold
	}
	data := report.Data{
		Verdict:     h.detector.Classify(req.Text, threshold),
		Salary:      detector.AnalyzeSalary(req.Text),
		Quality:     detector.AnalyzeDescriptionQuality(req.Text),
		Interview:   detector.AnalyzeInterviewProcess(req.Text),
		GeneratedAt: time.Now(),
	}
	var buf bytes.Buffer
	if err := report.Write(data, &buf); err != nil {
		log.Error().Err(err).Msg("render report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="job-analysis-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// CompanyRequest is the POST /company payload.
type CompanyRequest struct {
	Name string `json:"company_name" binding:"required"`
}

// CompanyResponse reports a reputation lookup.
type CompanyResponse struct {
	Found        bool                `json:"found"`
	PartialMatch bool                `json:"partial_match,omitempty"`
	IsFraud      bool                `json:"is_fraud,omitempty"`
	Company      *reputation.Company `json:"company_data,omitempty"`
	Message      string              `json:"message,omitempty"`
}

// Company handles POST /api/v1/company.
func (h *Handler) Company(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, kind := h.companies.Find(req.Name)
	switch kind {
	case reputation.MatchNone:
		c.JSON(http.StatusOK, CompanyResponse{
			Found:   false,
			Message: "Company not found in our database. It may be new or the name may be misspelled.",
		})
	default:
		c.JSON(http.StatusOK, CompanyResponse{
			Found:        true,
			PartialMatch: kind == reputation.MatchPartial,
			IsFraud:      record.IsFraud(),
			Company:      &record,
		})
	}
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// logRoute is a tiny request logger in the project's zerolog idiom.
func logRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
