package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/printworks/platetrack/internal/calc"
	"github.com/printworks/platetrack/internal/entity"
)

// Service produces XLSX bytes for order exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportOrdersXLSX returns a workbook with one row per calculated item and
// a trailing totals row. Rounding happens here, at presentation time only.
func (s *Service) ExportOrdersXLSX(items []entity.CalculatedItem) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Orders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Issue Date",
		"Job Number",
		"Client",
		"Kind",
		"Width (cm)",
		"Height (cm)",
		"Games",
		"Color Plan",
		"Total Area (cm2)",
		"Total Value",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, item := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !item.IssueDate.IsZero() {
			write(1, item.IssueDate.Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, item.JobNumber)
		write(3, item.Client)
		write(4, string(item.Kind))
		write(5, item.WidthCm)
		write(6, item.HeightCm)
		write(7, item.Games)
		write(8, item.ColorPlan)
		write(9, fmt.Sprintf("%.2f", item.TotalArea))
		write(10, fmt.Sprintf("%.2f", item.TotalValue))
		write(11, truncate(item.Notes, 140))

		row++
	}

	// Totals row
	area, value := calc.Totals(items)
	writeTotal := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	writeTotal(8, "Totals")
	writeTotal(9, fmt.Sprintf("%.2f", area))
	writeTotal(10, fmt.Sprintf("%.2f", value))

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 12) // job number
	_ = f.SetColWidth(sheet, "C", "C", 28) // client
	_ = f.SetColWidth(sheet, "E", "G", 11) // dimensions
	_ = f.SetColWidth(sheet, "H", "H", 20) // colors
	_ = f.SetColWidth(sheet, "I", "J", 16) // totals
	_ = f.SetColWidth(sheet, "K", "K", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate caps s at n runes, not bytes, so multi-byte notes never get
// split mid-rune.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
