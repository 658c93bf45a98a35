package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

const (
	resultsSheet  = "Results"
	unparsedSheet = "Unparsed"
)

// WriteXLSX writes result as a workbook with a Results sheet and, when any
// lines were left unparsed, an Unparsed sheet.
func WriteXLSX(out io.Writer, result domain.ParseResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(resultsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range result.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := rowToCells(&result.Rows[i])
		if err := f.SetSheetRow(resultsSheet, cell, &record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(resultsSheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(resultsSheet, "D", "D", 18); err != nil {
		return err
	}

	if len(result.Unparsed) > 0 {
		if _, err := f.NewSheet(unparsedSheet); err != nil {
			return fmt.Errorf("creating unparsed sheet: %w", err)
		}
		if err := f.SetCellValue(unparsedSheet, "A1", "Line"); err != nil {
			return err
		}
		for i, line := range result.Unparsed {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(unparsedSheet, cell, line); err != nil {
				return fmt.Errorf("writing unparsed line %d: %w", i+1, err)
			}
		}
		if err := f.SetColWidth(unparsedSheet, "A", "A", 80); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// rowToCells keeps numeric values numeric so spreadsheets can sort them.
func rowToCells(r *domain.ParsedRow) []interface{} {
	var value interface{} = r.Value.String()
	if f, ok := r.Value.Float(); ok {
		value = f
	}
	return []interface{}{
		r.TestName,
		value,
		r.Unit,
		r.ReferenceRange,
		string(r.Flag),
		r.Confidence,
	}
}
