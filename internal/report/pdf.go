package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// ReportTitle heads every PDF report.
const ReportTitle = "Task Manager Report"

const (
	pageWidth   = 210.0
	marginLeft  = 20.0
	indent      = 25.0
	textWidth   = 150.0
	lineHeight  = 5.0
	pageBreakAt = 270.0
	footerY     = -10.0
)

// PDFRenderer renders the task report as an A4 PDF document.
type PDFRenderer struct {
	// Compress controls stream compression. Disable it to inspect the output.
	Compress bool
}

// NewPDFRenderer returns a renderer producing compressed PDFs.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Compress: true}
}

// Filename is the download name for a report generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("task-report-%s.pdf", t.UTC().Format("2006-01-02"))
}

// Render writes the report for tasks to w. Tasks are listed in the order given.
func (p *PDFRenderer) Render(w io.Writer, tasks []domain.Task, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(p.Compress)
	pdf.SetTitle(ReportTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerY)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(0, 15)
	pdf.CellFormat(pageWidth, 10, ReportTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(pageWidth, 8, "Generated: "+generatedAt.Format("Monday, January 2, 2006 at 3:04 PM"), "", 1, "C", false, 0, "")

	summary := Summarize(tasks)
	pdf.SetXY(marginLeft, 36)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Tasks: %d", summary.Total), "", 2, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Completed: %d", summary.Completed), "", 2, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Pending: %d", summary.Pending), "", 2, "L", false, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 60, pageWidth-marginLeft, 60)

	y := 65.0
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 7, "Tasks:", "", 0, "L", false, 0, "")
	y += 10

	if len(tasks) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, 6, "No tasks available", "", 0, "L", false, 0, "")
		return pdf.Output(w)
	}

	for i, task := range tasks {
		if y > pageBreakAt {
			pdf.AddPage()
			y = 20
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(indent-marginLeft, lineHeight, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		y = p.writeWrapped(pdf, task.Title, y)

		if task.Description != "" {
			pdf.SetFont("Helvetica", "", 10)
			y = p.writeWrapped(pdf, task.Description, y)
		}

		pdf.SetFont("Helvetica", "I", 9)
		status := "Pending"
		pdf.SetTextColor(156, 163, 175)
		if task.Completed {
			status = "Completed"
			pdf.SetTextColor(34, 197, 94)
		}
		pdf.SetXY(indent, y)
		pdf.CellFormat(textWidth, lineHeight, status, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		y += 10
	}

	return pdf.Output(w)
}

// writeWrapped prints text at the task indent, wrapped to textWidth, and
// returns the y position below it.
func (p *PDFRenderer) writeWrapped(pdf *gofpdf.Fpdf, text string, y float64) float64 {
	for _, line := range wrapLines(pdf, toCodePage(pdf, text), textWidth) {
		pdf.SetXY(indent, y)
		pdf.CellFormat(textWidth, lineHeight, line, "", 0, "L", false, 0, "")
		y += lineHeight
	}
	return y
}

// toCodePage converts UTF-8 text to the cp1252 encoding of the core fonts.
// Runes outside cp1252 become '.'.
func toCodePage(pdf *gofpdf.Fpdf, text string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(text)
}

// wrapLines breaks cp1252 text into lines no wider than width in the current
// font. Words wider than a full line are split. Widths are measured per byte,
// so text must already be translated.
func wrapLines(pdf *gofpdf.Fpdf, text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		current := ""
		for _, word := range strings.Split(para, " ") {
			if word == "" {
				continue
			}
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if pdf.GetStringWidth(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			for len(word) > 1 && pdf.GetStringWidth(word) > width {
				n := fitPrefix(pdf, word, width)
				lines = append(lines, word[:n])
				word = word[n:]
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// fitPrefix returns the length of the longest prefix of word that fits width,
// never less than one byte.
func fitPrefix(pdf *gofpdf.Fpdf, word string, width float64) int {
	n := 1
	for n < len(word) && pdf.GetStringWidth(word[:n+1]) <= width {
		n++
	}
	return n
}
