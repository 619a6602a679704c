package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/pipeline"
)

// ReportXLSX renders one batch run as an XLSX workbook: one row per
// processed file with its suggested name, per-field defaults and notes.
func ReportXLSX(jobs []pipeline.Job, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Renames"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Original File",
		"Suggested Name",
		"Success",
		"DNI",
		"Person Name",
		"Organization",
		"Exam Type",
		"Date",
		"Detected Format",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, j := range jobs {
		d := j.Result.Defaults
		values := []any{
			filepath.Base(j.Path),
			j.Result.SuggestedName,
			j.Result.Success,
			d[constants.FieldIdentityNumber],
			d[constants.FieldPersonName],
			d[constants.FieldOrganization],
			d[constants.FieldExamType],
			d[constants.FieldDate],
			string(j.Result.DetectedFormat),
			strings.Join(j.Result.Notes, "; "),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	logger.Info("export.report.ok", "rows", row-2, "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
