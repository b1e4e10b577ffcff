package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"implied-pe/models"
)

// GridSheet is the sheet name used for exported sensitivity grids
const GridSheet = "Sensitivity"

// WriteJSON writes a report as indented JSON
func WriteJSON(w io.Writer, report *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteIndustryCSV writes one row per peer followed by a median row
func WriteIndustryCSV(w io.Writer, industry *models.IndustryPE, decimals int) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"company", "implied_pe"}); err != nil {
		return err
	}
	for _, m := range industry.Individual {
		if err := writer.Write([]string{m.ID, FormatMultiple(m.ImpliedPE, decimals)}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"median", FormatMultiple(industry.Median, decimals)}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WriteGridCSV writes a sensitivity grid with a header row of payout labels
// and a leading column of growth labels
func WriteGridCSV(w io.Writer, grid *models.Grid, decimals int) error {
	writer := csv.NewWriter(w)

	header := append([]string{"growth_rate"}, grid.ColumnLabels...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, label := range grid.RowLabels {
		record := []string{label}
		for j := range grid.ColumnLabels {
			record = append(record, FormatMultiple(grid.At(i, j), decimals))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteGridXLSX saves a sensitivity grid as a workbook. Cells hold the
// unrounded multiples with a two decimal number format.
func WriteGridXLSX(grid *models.Grid, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", GridSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Growth \\ Payout"}
	for _, label := range grid.ColumnLabels {
		header = append(header, label)
	}
	if err := f.SetSheetRow(GridSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, label := range grid.RowLabels {
		row := []interface{}{label}
		for j := range grid.ColumnLabels {
			row = append(row, grid.At(i, j))
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(GridSheet, cellRef, &row); err != nil {
			return fmt.Errorf("write row %s: %w", label, err)
		}
	}

	rows, cols := grid.Shape()
	if rows > 0 && cols > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		if err != nil {
			return fmt.Errorf("create style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(cols+1, rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(GridSheet, "B2", last, style); err != nil {
			return fmt.Errorf("apply style: %w", err)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteImpliedPECSV writes a single valuation as a header and one record
func WriteImpliedPECSV(w io.Writer, input models.ValuationInput, pe float64, decimals int) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"ticker", "price", "eps", "growth_rate", "payout_ratio", "implied_pe"},
		{
			input.Ticker,
			FormatMultiple(input.Price, 2),
			FormatMultiple(input.EPS, 2),
			models.FormatPercent(input.GrowthRate),
			models.FormatPercent(input.PayoutRatio),
			FormatMultiple(pe, decimals),
		},
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write valuation: %w", err)
	}
	return nil
}
