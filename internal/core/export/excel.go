package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Excel limits sheet names to 31 characters and forbids a few symbols.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// ExcelExporter writes one sheet per report section using excelize
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(report *Report, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := e.headerStyle(f, report.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	evenRowStyle, err := e.rowStyle(f, report.Style, report.Style.RowBgColor2)
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: report.Style.FontFamily},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}

	used := make(map[string]bool)
	for i, section := range report.Sections {
		sheet := uniqueSheetName(section.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
		}

		f.SetCellValue(sheet, "A1", section.Title)
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)

		if section.Note != "" || len(section.Headers) == 0 {
			f.SetCellValue(sheet, "A3", section.Note)
			continue
		}

		const headerRow = 3
		for col, header := range section.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
			f.SetCellValue(sheet, cell, header)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
		if report.Style.ColumnWidth > 0 {
			last, _ := excelize.ColumnNumberToName(len(section.Headers))
			f.SetColWidth(sheet, "A", last, report.Style.ColumnWidth)
		}

		for r, row := range section.Rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+r)
				f.SetCellValue(sheet, cell, value)
				if report.Style.AlternateRows && r%2 == 1 {
					f.SetCellStyle(sheet, cell, cell, evenRowStyle)
				}
			}
		}

		if report.Style.FreezeHeader {
			f.SetPanes(sheet, &excelize.Panes{
				Freeze:      true,
				YSplit:      headerRow,
				TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
				ActivePane:  "bottomLeft",
			})
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) headerStyle(f *excelize.File, style Style) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.HeaderBgColor, "#")},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func (e *ExcelExporter) rowStyle(f *excelize.File, style Style, bgColor string) (int, error) {
	rowStyle := &excelize.Style{
		Font: &excelize.Font{Size: style.FontSize, Family: style.FontFamily},
	}
	if bgColor != "" && !strings.EqualFold(bgColor, "#FFFFFF") {
		rowStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(bgColor, "#")},
		}
	}
	return f.NewStyle(rowStyle)
}

// uniqueSheetName makes a valid, non-repeating sheet name from a section title
func uniqueSheetName(title string, index int, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if name == "" {
		name = fmt.Sprintf("Section %d", index+1)
	}
	if len(name) > maxSheetName {
		name = strings.TrimSpace(name[:maxSheetName])
	}

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		base := name
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = base + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
