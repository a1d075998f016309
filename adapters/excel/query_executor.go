// Package excel implements the read-only query capability over Excel
// and CSV files, so analyses can run without a database. The "query"
// names the sheet to read (ignored for CSV, which has a single sheet).
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "varstats/internal/errors"
	"varstats/ports"
)

// DefaultSheet is used when neither the query nor the configuration
// names a sheet.
const DefaultSheet = "Sheet1"

// QueryExecutorAdapter implements ports.QueryExecutor for tabular
// files. The first row is treated as a header and skipped; empty
// cells become nulls.
type QueryExecutorAdapter struct {
	filePath     string
	fileType     string // "xlsx" or "csv"
	defaultSheet string
}

// NewQueryExecutorAdapter creates a file-backed query executor. An
// empty defaultSheet falls back to Sheet1.
func NewQueryExecutorAdapter(filePath, defaultSheet string) *QueryExecutorAdapter {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	if strings.TrimSpace(defaultSheet) == "" {
		defaultSheet = DefaultSheet
	}
	return &QueryExecutorAdapter{filePath: filePath, fileType: fileType, defaultSheet: defaultSheet}
}

// ReadOnlyQuery returns the data rows of the requested sheet in file
// order. Cell values come back as strings for the engines to coerce.
func (a *QueryExecutorAdapter) ReadOnlyQuery(ctx context.Context, query string) ([]ports.Row, error) {
	if _, err := os.Stat(a.filePath); os.IsNotExist(err) {
		return nil, apperrors.DataSourceError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(a.fileType), a.filePath), err)
	}

	var rows [][]string
	var err error
	switch a.fileType {
	case "csv":
		rows, err = a.readCSVRows()
	default:
		rows, err = a.readExcelRows(a.sheetName(query))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, apperrors.DataSourceError("file must have a header row and at least one data row", nil)
	}

	out := make([]ports.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(ports.Row, len(raw))
		for i, cell := range raw {
			if strings.TrimSpace(cell) == "" {
				row[i] = nil
				continue
			}
			row[i] = cell
		}
		out = append(out, row)
	}
	return out, nil
}

func (a *QueryExecutorAdapter) readExcelRows(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(a.filePath)
	if err != nil {
		return nil, apperrors.DataSourceError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.DataSourceError(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	return rows, nil
}

func (a *QueryExecutorAdapter) readCSVRows() ([][]string, error) {
	file, err := os.Open(a.filePath)
	if err != nil {
		return nil, apperrors.DataSourceError("failed to open CSV file", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, apperrors.DataSourceError("failed to read CSV file", err)
	}
	return rows, nil
}

func (a *QueryExecutorAdapter) sheetName(query string) string {
	name := strings.TrimSpace(query)
	if name == "" {
		return a.defaultSheet
	}
	return name
}
