package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned for formats other than excel and pdf
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents the export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// ParseFormat accepts "excel", "xlsx" and "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Exporter renders a report in one file format
type Exporter interface {
	Export(report *Report, writer io.Writer) error
	ContentType() string
	FileExtension() string
}

// Report is a multi-section document. Each section becomes one sheet in
// Excel and one table in PDF.
type Report struct {
	Title     string
	Author    string
	CreatedAt time.Time
	Sections  []Section
	Style     Style
}

// Section is a titled table. Note replaces the table when a section could not
// be produced.
type Section struct {
	Title   string
	Note    string
	Headers []string
	Rows    [][]interface{}
}

// AddTable appends a table section
func (r *Report) AddTable(title string, headers []string, rows [][]interface{}) {
	r.Sections = append(r.Sections, Section{Title: title, Headers: headers, Rows: rows})
}

// AddNote appends a section that only carries a message
func (r *Report) AddNote(title, note string) {
	r.Sections = append(r.Sections, Section{Title: title, Note: note})
}

// Style defines styling options shared by both formats
type Style struct {
	Orientation   string // "portrait" or "landscape"
	PageSize      string // "A4", "Letter", etc.
	HeaderBgColor string // Hex color
	AlternateRows bool
	RowBgColor1   string
	RowBgColor2   string
	FontFamily    string
	FontSize      float64
	FreezeHeader  bool
	ColumnWidth   float64 // Excel column width, 0 keeps the default
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		Orientation:   "landscape",
		PageSize:      "A4",
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		FontFamily:    "Arial",
		FontSize:      9,
		FreezeHeader:  true,
		ColumnWidth:   18,
	}
}
