package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// =============================================================================
// PDF Renderer
// =============================================================================

// PDFRenderer writes the register as a landscape A4 document, one section
// per page group, in the Annex-H tabular layout.
type PDFRenderer struct {
	// Page dimensions (A4 landscape in mm)
	pageWidth  float64
	pageHeight float64
	margin     float64

	// Content area
	contentWidth float64

	// Evidence thumbnail edge length in mm. Zero disables embedding.
	thumbSize float64

	photos PhotoFetcher
}

// NewPDFRenderer creates a new PDF renderer. photos may be nil, in which
// case evidence cells stay empty.
func NewPDFRenderer(photos PhotoFetcher) *PDFRenderer {
	margin := 10.0
	pageWidth := 297.0 // A4 landscape width in mm
	return &PDFRenderer{
		pageWidth:    pageWidth,
		pageHeight:   210.0, // A4 landscape height in mm
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
		thumbSize:    12.0,
		photos:       photos,
	}
}

// Format returns the output format of this renderer.
func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

// Render writes the report to w.
func (r *PDFRenderer) Render(ctx context.Context, rep Report, w io.Writer) (int64, error) {
	pdf := fpdf.New("L", "mm", "A4", "")

	pdf.SetTitle("Compliance Report", true)
	pdf.SetCreator("IgnisGuard", true)
	pdf.SetAutoPageBreak(false, r.margin)

	for _, section := range rep.Sections {
		r.addSection(ctx, pdf, section)
	}
	if len(rep.Sections) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(r.margin, r.margin+10)
		pdf.Cell(0, 8, "No assets matched the report filter.")
	}

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Section Layout
// =============================================================================

func (r *PDFRenderer) addSection(ctx context.Context, pdf *fpdf.Fpdf, section Section) {
	pdf.AddPage()

	y := r.addSectionHeader(pdf, section)

	widths := r.columnWidths(section.Columns)
	y = r.addTableHeader(pdf, section.Columns, widths, y)

	rowHeight := 12.0
	for _, row := range section.Rows {
		if y+rowHeight > r.pageHeight-r.margin {
			pdf.AddPage()
			y = r.margin
			y = r.addTableHeader(pdf, section.Columns, widths, y)
		}
		y = r.addTableRow(ctx, pdf, section.Columns, widths, row, y, rowHeight)
	}

	if section.AnnexHeader {
		r.addAnnexNotes(pdf, y)
	}
}

// addSectionHeader renders the register title. The extinguisher section
// carries the full Annex H preamble mandated by the printed form.
func (r *PDFRenderer) addSectionHeader(pdf *fpdf.Fpdf, section Section) float64 {
	if section.AnnexHeader {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(0, 8)
		pdf.CellFormat(r.pageWidth, 5, "ANNEX H", "", 0, "C", false, 0, "")
		pdf.SetXY(0, 14)
		pdf.CellFormat(r.pageWidth, 5, "(Clauses 12 and 13)", "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(0, 21)
		pdf.CellFormat(r.pageWidth, 7, "REGISTER OF FIRE EXTINGUISHER", "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(r.margin, 31)
		pdf.MultiCell(r.contentWidth, 4.5,
			"H-1 Record of fire extinguishers installed in a premise, its inspection, maintenance, and operational history shall be maintained as per the format given below:",
			"", "L", false)
		return 44
	}

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetXY(0, 14)
	pdf.CellFormat(r.pageWidth, 8, section.Title, "", 0, "C", false, 0, "")
	return 30
}

// columnWidths distributes the content width. The serial-number and remarks
// columns get extra room, Sl very little.
func (r *PDFRenderer) columnWidths(columns []ColumnSpec) []float64 {
	weights := make([]float64, len(columns))
	total := 0.0
	for i, col := range columns {
		w := 1.0
		switch col.Key {
		case colSl:
			w = 0.35
		case colSerial, colLocation:
			w = 1.3
		case colRemarks:
			w = 1.8
		}
		weights[i] = w
		total += w
	}

	widths := make([]float64, len(columns))
	for i, w := range weights {
		widths[i] = r.contentWidth * w / total
	}
	return widths
}

func (r *PDFRenderer) addTableHeader(pdf *fpdf.Fpdf, columns []ColumnSpec, widths []float64, y float64) float64 {
	fr, fg, fb := HexToRGB(Palette.HeaderFill)
	lr, lg, lb := HexToRGB(Palette.GridLine)
	tr, tg, tb := HexToRGB(Palette.TextDark)
	pdf.SetFillColor(fr, fg, fb)
	pdf.SetDrawColor(lr, lg, lb)
	pdf.SetTextColor(tr, tg, tb)
	pdf.SetFont("Helvetica", "B", 7)

	headerHeight := 8.0
	x := r.margin
	for i, col := range columns {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], headerHeight, col.Header, "1", 0, "CM", true, 0, "")
		x += widths[i]
	}
	return y + headerHeight
}

func (r *PDFRenderer) addTableRow(ctx context.Context, pdf *fpdf.Fpdf, columns []ColumnSpec, widths []float64, row Row, y, height float64) float64 {
	lr, lg, lb := HexToRGB(Palette.GridLine)
	pdf.SetDrawColor(lr, lg, lb)
	pdf.SetFont("Helvetica", "", 7)

	x := r.margin
	for i, col := range columns {
		pdf.SetXY(x, y)

		switch col.Key {
		case colEvidence:
			pdf.CellFormat(widths[i], height, "", "1", 0, "CM", false, 0, "")
			r.addThumbnail(ctx, pdf, row.EvidenceKey, x, y, widths[i], height)
		case colStatus:
			r.setHintColor(pdf, row.Hint)
			pdf.CellFormat(widths[i], height, row.Cells[col.Key], "1", 0, "CM", false, 0, "")
			tr, tg, tb := HexToRGB(Palette.TextDark)
			pdf.SetTextColor(tr, tg, tb)
		default:
			pdf.CellFormat(widths[i], height, row.Cells[col.Key], "1", 0, "CM", false, 0, "")
		}
		x += widths[i]
	}
	return y + height
}

func (r *PDFRenderer) setHintColor(pdf *fpdf.Fpdf, hint StatusHint) {
	var hex string
	switch hint {
	case HintPass:
		hex = Palette.Pass
	case HintFail:
		hex = Palette.Fail
	default:
		hex = Palette.TextDark
	}
	tr, tg, tb := HexToRGB(hex)
	pdf.SetTextColor(tr, tg, tb)
}

// addThumbnail embeds an evidence photo centered in its cell. Fetch or
// decode failures leave the cell empty; a photo never fails the report.
func (r *PDFRenderer) addThumbnail(ctx context.Context, pdf *fpdf.Fpdf, key string, x, y, w, h float64) {
	if key == "" || r.photos == nil || r.thumbSize <= 0 {
		return
	}

	photo, err := r.photos.FetchPhoto(ctx, key)
	if err != nil || photo == nil || len(photo.Data) == 0 {
		return
	}

	imageType := imageTypeFor(photo.ContentType)
	if imageType == "" {
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(photo.Data))

	dim := r.thumbSize
	ix := x + (w-dim)/2
	iy := y + (h-dim)/2
	pdf.ImageOptions(key, ix, iy, dim, dim, false, opts, 0, "")
}

func imageTypeFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	}
	return ""
}

func (r *PDFRenderer) addAnnexNotes(pdf *fpdf.Fpdf, y float64) {
	y += 8
	if y > r.pageHeight-r.margin-10 {
		pdf.AddPage()
		y = r.margin + 10
	}
	pdf.SetFont("Helvetica", "", 8)
	mr, mg, mb := HexToRGB(Palette.TextMuted)
	pdf.SetTextColor(mr, mg, mb)
	pdf.SetXY(r.margin, y)
	pdf.Cell(0, 4, "NOTES:")
	pdf.SetXY(r.margin, y+5)
	pdf.Cell(0, 4, "1. In remarks column fill details of date of operation as per annual maintenance date, date of rejection and disposal with details of observations.")
	tr, tg, tb := HexToRGB(Palette.TextDark)
	pdf.SetTextColor(tr, tg, tb)
}
