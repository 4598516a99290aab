package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders each report section as a table using gofpdf
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (p *PDFExporter) Export(report *Report, writer io.Writer) error {
	style := report.Style
	orientation := "P"
	if style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	// Only core fonts are embedded.
	font := "Arial"
	fontSize := style.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont(font, "B", 16)
		pdf.Cell(0, 10, report.Title)
		pdf.Ln(10)
	}
	if !report.CreatedAt.IsZero() {
		pdf.SetFont(font, "I", 8)
		meta := fmt.Sprintf("Generated: %s", report.CreatedAt.Format("2006-01-02 15:04:05"))
		if report.Author != "" {
			meta += " | Author: " + report.Author
		}
		pdf.Cell(0, 5, meta)
		pdf.Ln(8)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	usable := pageWidth - left - right
	limitY := pageHeight - bottom - 10

	drawHeader := func(headers []string, colWidth float64) {
		pdf.SetFont(font, "B", fontSize)
		filled := style.HeaderBgColor != ""
		if filled {
			r, g, b := hexToRGB(style.HeaderBgColor)
			pdf.SetFillColor(r, g, b)
			pdf.SetTextColor(255, 255, 255)
		}
		for _, h := range headers {
			pdf.CellFormat(colWidth, 7, h, "1", 0, "C", filled, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(font, "", fontSize)
	}

	for _, section := range report.Sections {
		if pdf.GetY() > limitY-20 {
			pdf.AddPage()
		}
		pdf.SetFont(font, "B", 12)
		pdf.Cell(0, 8, section.Title)
		pdf.Ln(9)

		if section.Note != "" || len(section.Headers) == 0 {
			pdf.SetFont(font, "I", fontSize)
			pdf.MultiCell(0, 5, section.Note, "", "", false)
			pdf.Ln(4)
			continue
		}

		colWidth := usable / float64(len(section.Headers))
		drawHeader(section.Headers, colWidth)

		for i, row := range section.Rows {
			fill := false
			if style.AlternateRows {
				bg := style.RowBgColor1
				if i%2 == 1 {
					bg = style.RowBgColor2
				}
				r, g, b := hexToRGB(bg)
				pdf.SetFillColor(r, g, b)
				fill = true
			}
			for _, value := range row {
				pdf.CellFormat(colWidth, 6, fmt.Sprintf("%v", value), "1", 0, "L", fill, 0, "")
			}
			pdf.Ln(-1)

			if pdf.GetY() > limitY && i < len(section.Rows)-1 {
				pdf.AddPage()
				drawHeader(section.Headers, colWidth)
			}
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) FileExtension() string {
	return ".pdf"
}

// hexToRGB converts a hex color to RGB, white when invalid
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 255, 255, 255
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}
