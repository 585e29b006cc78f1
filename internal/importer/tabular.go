package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readExcel reads question rows from an Excel file
func readExcel(cfg Config) ([]record, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var records []record
	for i, row := range rows {
		// Skip header rows
		if i < cfg.StartRow-1 || blankRow(row) {
			continue
		}
		records = append(records, rowToRecord(row, cfg, i+1))
	}
	return records, nil
}

// readCSV reads question rows from a CSV file with the same column layout
func readCSV(cfg Config) ([]record, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var records []record
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++

		if rowNum < cfg.StartRow || blankRow(row) {
			continue
		}
		records = append(records, rowToRecord(row, cfg, rowNum))
	}
	return records, nil
}

func rowToRecord(row []string, cfg Config, line int) record {
	return record{
		line:       line,
		text:       cell(row, cfg.QuestionColumn),
		options:    parseOptions(cell(row, cfg.OptionsColumn)),
		correct:    cell(row, cfg.CorrectColumn),
		subject:    cell(row, cfg.SubjectColumn),
		subSubject: cell(row, cfg.SubSubjectColumn),
		difficulty: cell(row, cfg.DifficultyColumn),
		reasoning:  cell(row, cfg.ReasoningColumn),
	}
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
