package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

// Exporter renders audit artifacts: the paginated PDF document and the
// two-column CSV table.
type Exporter struct{}

func New() Exporter { return Exporter{} }

// RenderDocument writes the full audit document: title/date cover, executive
// summary, then one page per category in canonical order (index coverage,
// performance, mobile usability) with the stringified raw data and the AI
// narrative. The creation date is pinned to the audit's trigger time so the
// same audit always renders byte-identical output.
func (Exporter) RenderDocument(w io.Writer, a *domain.Audit) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(a.TriggeredAt)
	pdf.SetModificationDate(a.TriggeredAt)
	pdf.SetTitle("SEO Audit Report", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// cover
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SEO Audit Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Site: %s", a.SiteURL)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", a.TriggeredAt.Format("02-01-2006")), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	heading(pdf, "Executive Summary")
	body(pdf, tr, a.Summary)

	for _, s := range orderedSections(a) {
		pdf.AddPage()
		heading(pdf, s.Category.Title())
		subheading(pdf, "Raw Data:")
		raw(pdf, tr, s.Report.Payload())
		pdf.Ln(2)
		subheading(pdf, "AI SEO Recommendations:")
		body(pdf, tr, s.Analysis)
	}

	return pdf.Output(w)
}

// orderedSections returns the audit's sections in canonical category order,
// whatever order they were stored in, substituting an error placeholder for
// anything missing.
func orderedSections(a *domain.Audit) []domain.Section {
	out := make([]domain.Section, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		if s, ok := a.SectionFor(cat); ok {
			out = append(out, s)
			continue
		}
		out = append(out, domain.Section{
			Category: cat,
			Report:   domain.ReportResult{Err: "report section missing"},
			Analysis: "no analysis available",
		})
	}
	return out
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func subheading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
}

func body(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(text), "", "L", false)
}

func raw(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Courier", "", 8)
	pdf.MultiCell(0, 4, tr(text), "", "L", false)
}
