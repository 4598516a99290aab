package export

import (
	"bytes"
	"fmt"
)

// File is a rendered export
type File struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Service picks the exporter for a format
type Service struct {
	exporters map[Format]Exporter
}

// NewService creates a new export service
func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(),
		},
	}
}

// Export renders report in the requested format
func (s *Service) Export(report *Report, format Format) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(report, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &File{
		Data:        buf.Bytes(),
		ContentType: exporter.ContentType(),
		Extension:   exporter.FileExtension(),
	}, nil
}
