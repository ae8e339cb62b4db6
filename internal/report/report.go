// Package report renders a classification verdict and its supporting
// analyses into a PDF file for download or archival.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jobguard/jobguard/internal/detector"
)

// Data is everything a rendered report contains. Callers assemble it from a
// verdict plus the optional heuristic analyses.
type Data struct {
	Verdict     detector.Verdict
	Salary      detector.Assessment
	Quality     detector.Assessment
	Interview   detector.Assessment
	GeneratedAt time.Time
}

// WritePDF renders the report to outPath.
func WritePDF(data Data, outPath string) error {
	return render(data).OutputFileAndClose(outPath)
}

// Write renders the report to w, for callers serving the PDF directly.
func Write(data Data, w io.Writer) error {
	return render(data).Output(w)
}

func render(data Data) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Job Posting Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Analysis Results", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Result", data.Verdict.Label)
	writeRow(pdf, "Confidence", fmt.Sprintf("%.1f%%", data.Verdict.Confidence))
	writeRow(pdf, "Words analyzed", fmt.Sprintf("%d", data.Verdict.WordCount))
	writeRow(pdf, "Patterns detected", fmt.Sprintf("%d", len(data.Verdict.Matches)))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Content Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Salary", assessmentLine(data.Salary))
	writeRow(pdf, "Description quality", assessmentLine(data.Quality))
	writeRow(pdf, "Interview process", assessmentLine(data.Interview))
	pdf.Ln(4)

	if len(data.Verdict.Matches) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "Suspicious Patterns", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, m := range data.Verdict.Matches {
			pdf.MultiCell(0, 5, "- "+m, "", "L", false)
		}
		pdf.Ln(4)
	}

	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Generated "+generated.Format("2006-01-02 15:04:05")+". This report is informational and not a legal determination.", "", "L", false)

	return pdf
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func assessmentLine(a detector.Assessment) string {
	return a.Level.String() + ": " + a.Summary
}
