package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/chakertay/ai-gen/internal/models"
)

// Character ceilings for rendered text fields. Oversized model output is cut
// at these bounds with an ellipsis marker.
const (
	maxSummaryChars      = 500
	maxQuestionChars     = 300
	maxAnswerChars       = 500
	maxFinalSummaryChars = 1000
	maxRenderedSkills    = 10
)

const reportTitle = "Career Assessment Report"

type ReportService interface {
	Generate(analysis models.CVAnalysis, transcript []models.Turn, summary string, outputPath string) error
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

// Generate implements ReportService. The document is rendered to a temp file
// and renamed into place, so a failed render never leaves a partial report
// behind.
func (r *reportService) Generate(analysis models.CVAnalysis, transcript []models.Turn, summary string, outputPath string) error {
	log.Printf("📄 Generating assessment report: %s", outputPath)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generatedAt := time.Now()

	pdf.SetTitle(reportTitle, true)
	pdf.SetMargins(20, 22, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetY(8)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, tr(reportTitle), "", 0, "C", false, 0, "")
		pdf.SetY(22)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("Page %d/{nb} | Generated on %s", pdf.PageNo(), generatedAt.Format("2 January 2006"))
		pdf.CellFormat(0, 6, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(46, 134, 171)
	pdf.CellFormat(0, 12, tr(reportTitle), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.writeBody(pdf, tr, fmt.Sprintf("Generated on: %s", generatedAt.Format("2 January 2006")))
	pdf.Ln(6)

	r.renderAnalysisSection(pdf, tr, analysis)
	r.renderTranscriptSection(pdf, tr, transcript)
	r.renderSummarySection(pdf, tr, summary)

	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	return writeAtomic(pdf, outputPath)
}

func (r *reportService) renderAnalysisSection(pdf *fpdf.Fpdf, tr func(string) string, analysis models.CVAnalysis) {
	r.writeHeading(pdf, tr, "CV Analysis Overview")

	if analysis.IsZero() {
		r.writeBody(pdf, tr, "Professional background analysis completed.")
		pdf.Ln(6)
		return
	}

	if analysis.Summary != "" {
		r.writeLabeled(pdf, tr, "Professional Summary", truncate(analysis.Summary, maxSummaryChars))
	} else {
		r.writeBody(pdf, tr, "No professional summary was available for this candidate.")
	}

	if analysis.CareerStage != "" {
		r.writeLabeled(pdf, tr, "Career Stage", analysis.CareerStage)
	}

	if analysis.ExperienceYears > 0 {
		r.writeLabeled(pdf, tr, "Years of Experience", strconv.Itoa(analysis.ExperienceYears))
	}

	if len(analysis.KeySkills) > 0 {
		skills := analysis.KeySkills
		if len(skills) > maxRenderedSkills {
			skills = skills[:maxRenderedSkills]
		}
		r.writeLabeled(pdf, tr, "Key Skills", strings.Join(skills, ", "))
	}

	pdf.Ln(6)
}

func (r *reportService) renderTranscriptSection(pdf *fpdf.Fpdf, tr func(string) string, transcript []models.Turn) {
	r.writeHeading(pdf, tr, "Interview Questions & Answers")

	if len(transcript) == 0 {
		r.writeBody(pdf, tr, "No interview exchanges were recorded for this assessment.")
		pdf.Ln(6)
		return
	}

	for i, turn := range transcript {
		if turn.Question == "" && turn.Answer == "" {
			r.writeBody(pdf, tr, fmt.Sprintf("Exchange %d could not be rendered.", i+1))
			continue
		}

		r.writeLabeled(pdf, tr, fmt.Sprintf("Question %d", i+1), truncate(turn.Question, maxQuestionChars))
		r.writeLabeled(pdf, tr, "Response", truncate(turn.Answer, maxAnswerChars))
		pdf.Ln(3)
	}

	pdf.Ln(3)
}

func (r *reportService) renderSummarySection(pdf *fpdf.Fpdf, tr func(string) string, summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}

	r.writeHeading(pdf, tr, "Professional Assessment Summary")

	if structured, ok := models.ParseStructuredSummary(summary); ok {
		r.renderStructuredSummary(pdf, tr, structured)
		return
	}

	for _, block := range parseMarkup(truncate(summary, maxFinalSummaryChars)) {
		r.renderBlock(pdf, tr, block)
	}
}

func (r *reportService) renderStructuredSummary(pdf *fpdf.Fpdf, tr func(string) string, s models.StructuredSummary) {
	if s.ExecutiveSummary != "" {
		r.writeBody(pdf, tr, truncate(s.ExecutiveSummary, maxFinalSummaryChars))
		pdf.Ln(2)
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Strengths", s.Strengths},
		{"Areas for Improvement", s.AreasForImprovement},
		{"Career Recommendations", s.CareerRecommendations},
		{"Skill Gaps", s.SkillGaps},
		{"Next Steps", s.NextSteps},
	}

	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		r.writeSubHeading(pdf, tr, section.title+":")
		r.writeBullets(pdf, tr, section.items)
		pdf.Ln(2)
	}

	if s.OverallAssessment != "" {
		r.writeSubHeading(pdf, tr, "Overall Assessment:")
		r.writeBody(pdf, tr, truncate(s.OverallAssessment, maxFinalSummaryChars))
	}
}

func (r *reportService) renderBlock(pdf *fpdf.Fpdf, tr func(string) string, block markupBlock) {
	switch block.Kind {
	case blockHeading:
		r.writeSubHeading(pdf, tr, block.Text)
	case blockBullets:
		r.writeBullets(pdf, tr, block.Items)
		pdf.Ln(2)
	default:
		r.writeBody(pdf, tr, block.Text)
	}
}

func (r *reportService) writeHeading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(46, 134, 171)
	pdf.CellFormat(0, 9, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (r *reportService) writeSubHeading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(46, 134, 171)
	pdf.CellFormat(0, 7, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *reportService) writeBody(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(0, 5.5, tr(text), "", "J", false)
	pdf.Ln(1)
}

func (r *reportService) writeLabeled(pdf *fpdf.Fpdf, tr func(string) string, label, text string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(0, 5.5, tr(label+": "), "", "L", false)
	r.writeBody(pdf, tr, text)
}

func (r *reportService) writeBullets(pdf *fpdf.Fpdf, tr func(string) string, items []string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for _, item := range items {
		pdf.CellFormat(6, 5.5, tr("-"), "", 0, "R", false, 0, "")
		pdf.MultiCell(0, 5.5, tr(item), "", "L", false)
	}
}

// writeAtomic renders to a temp file next to the target and renames it into
// place, so readers never observe a truncated document.
func writeAtomic(pdf *fpdf.Fpdf, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	tmp, err := os.CreateTemp(dir, "report-*.pdf.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := pdf.OutputFileAndClose(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	log.Printf("✅ Report generated successfully: %s", outputPath)
	return nil
}
