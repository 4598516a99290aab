package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *Report {
	r := &Report{
		Title:     "Studio Dashboard",
		Author:    "owner@example.com",
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Style:     DefaultStyle(),
	}
	r.AddTable("Top Services", []string{"Service", "Bookings", "Revenue"}, [][]interface{}{
		{"Classic Lash Set", 12, 1440},
		{"Lash Fill", 8, 480},
	})
	r.AddNote("Attendance", "unavailable: connection reset")
	r.AddTable("Top Services", []string{"Service"}, [][]interface{}{{"dup"}})
	return r
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Excel")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)

	f, err = ParseFormat(" pdf ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestService_ExportExcel(t *testing.T) {
	file, err := NewService().Export(sampleReport(), FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", file.Extension)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Top Services", "Attendance", "Top Services 2"}, wb.GetSheetList())

	header, err := wb.GetCellValue("Top Services", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Service", header)

	value, err := wb.GetCellValue("Top Services", "B4")
	require.NoError(t, err)
	assert.Equal(t, "12", value)

	note, err := wb.GetCellValue("Attendance", "A3")
	require.NoError(t, err)
	assert.Equal(t, "unavailable: connection reset", note)
}

func TestService_ExportPDF(t *testing.T) {
	file, err := NewService().Export(sampleReport(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestService_UnsupportedFormat(t *testing.T) {
	file, err := NewService().Export(sampleReport(), Format("csv"))
	assert.Nil(t, file)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "Revenue (weekly)", uniqueSheetName("Revenue [weekly]", 0, used))
	assert.Equal(t, "Section 2", uniqueSheetName("  ", 1, used))

	long := "Cancellation Reasons Over All Time Periods"
	first := uniqueSheetName(long, 2, used)
	second := uniqueSheetName(long, 3, used)
	assert.Len(t, first, maxSheetName)
	assert.LessOrEqual(t, len(second), maxSheetName)
	assert.NotEqual(t, first, second)
}
