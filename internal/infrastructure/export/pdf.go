package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// Page geometry in points.
const (
	margin       = 50.0
	nameColumnX  = 50.0
	amountColumn = 400.0
	headerGap    = 25.0
	rowHeight    = 22.0
)

// PDFRenderer lays out one A4 page per record with a two-column table.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

var _ ports.ReportRenderer = (*PDFRenderer)(nil)

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Extension() string { return string(domain.FormatPDF) }

func (r *PDFRenderer) Render(w io.Writer, records []domain.Record) error {
	doc, err := r.build(records)
	if err != nil {
		return err
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) build(records []domain.Record) (*fpdf.Fpdf, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.SetTitle(reportTitle, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := doc.GetPageSize()
	bottom := pageHeight - margin

	for _, rec := range records {
		doc.AddPage()

		doc.SetY(margin)
		doc.SetFont("Helvetica", "B", 18)
		doc.CellFormat(0, 24, reportTitle, "", 1, "C", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 18, "Date: "+rec.Date, "", 1, "C", false, 0, "")

		tableTop := doc.GetY() + 20
		drawHeader(doc, tableTop)

		row := 0
		for _, name := range rec.Totals.Names() {
			y := tableTop + headerGap + float64(row)*rowHeight
			if y > bottom {
				doc.AddPage()
				tableTop = margin
				drawHeader(doc, tableTop)
				row = 0
				y = tableTop + headerGap
			}
			doc.Text(nameColumnX, y, tr(name))
			doc.Text(amountColumn, y, formatQuantity(rec.Totals[name]))
			row++
		}
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return doc, nil
}

func drawHeader(doc *fpdf.Fpdf, top float64) {
	pageWidth, _ := doc.GetPageSize()
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(nameColumnX, top, nameHeader)
	doc.Text(amountColumn, top, amountHeader)
	doc.Line(nameColumnX, top+8, pageWidth-margin, top+8)
	doc.SetFont("Helvetica", "", 12)
}
