package export

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// FileName names the download for one device and range.
func FileName(history models.HistorySeries, f Format) string {
	rng := history.Range
	if rng == "" {
		rng = "all"
	}
	return fmt.Sprintf("turbine-%s-history-%s.%s", history.DeviceID, rng, f)
}

// Export renders the history in the requested format and records the outcome.
func Export(history models.HistorySeries, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatXLSX:
		data, err = BuildHistoryXLSX(history)
	case FormatPDF:
		data, err = BuildHistoryPDF(history)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	metrics.ObserveExport(string(f), err)
	return data, err
}

func metricNames(history models.HistorySeries) []string {
	names := make([]string, 0, len(history.Series))
	for name := range history.Series {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func valueAt(values []float64, idx int) (float64, bool) {
	if idx >= len(values) {
		return 0, false
	}
	return values[idx], true
}

// sheetWriter sets cells by 1-based column and row and keeps the first
// error; later writes are skipped once one has failed.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("sheet %s cell %s: %w", w.sheet, cell, err)
	}
}

// BuildHistoryXLSX writes a summary sheet and one row per labelled day.
func BuildHistoryXLSX(history models.HistorySeries) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	dailySheet := "daily"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}

	summary := &sheetWriter{f: f, sheet: summarySheet}
	summary.set(1, 1, "Turbine History")
	summary.set(1, 3, "Device")
	summary.set(2, 3, history.DeviceID)
	summary.set(1, 4, "Range")
	summary.set(2, 4, history.Range)
	summary.set(1, 5, "Days")
	summary.set(2, 5, len(history.Labels))
	if summary.err != nil {
		return nil, summary.err
	}

	names := metricNames(history)
	daily := &sheetWriter{f: f, sheet: dailySheet}
	daily.set(1, 1, "Date")
	for col, name := range names {
		daily.set(col+2, 1, name)
	}
	for row, label := range history.Labels {
		daily.set(1, row+2, label)
		for col, name := range names {
			if value, ok := valueAt(history.Series[name], row); ok {
				daily.set(col+2, row+2, value)
			}
		}
	}
	if daily.err != nil {
		return nil, daily.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildHistoryPDF renders the same table as a single A4 document.
func BuildHistoryPDF(history models.HistorySeries) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Turbine History")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Device: %s", history.DeviceID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Range: %s", history.Range))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Days: %d", len(history.Labels)))
	pdf.Ln(8)

	names := metricNames(history)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Date", "1", 0, "C", false, 0, "")
	for _, name := range names {
		pdf.CellFormat(40, 6, name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for row, label := range history.Labels {
		pdf.CellFormat(40, 6, label, "1", 0, "C", false, 0, "")
		for _, name := range names {
			text := "-"
			if value, ok := valueAt(history.Series[name], row); ok {
				text = fmt.Sprintf("%.2f", value)
			}
			pdf.CellFormat(40, 6, text, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
