package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal/numeric"

	"github.com/xuri/excelize/v2"
)

// MatrixReader reads a two-column strategy matrix from an Excel or CSV file
type MatrixReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewMatrixReader creates a reader; the file type follows the extension
func NewMatrixReader(filePath string) *MatrixReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &MatrixReader{filePath: filePath, fileType: fileType}
}

// WithSheet selects a worksheet; by default the first sheet is read
func (r *MatrixReader) WithSheet(name string) *MatrixReader {
	r.sheet = name
	return r
}

// ReadMatrix reads the file into a strategy matrix
func (r *MatrixReader) ReadMatrix() (*MatrixData, error) {
	log.Printf("[MatrixReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var records [][]string
	var err error
	startTime := time.Now()
	switch r.fileType {
	case "csv":
		records, err = r.readCSVRecords()
	case "xlsx":
		records, err = r.readExcelRecords()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	data, err := parseRecords(records)
	if err != nil {
		return nil, err
	}
	data.Source = r.filePath
	log.Printf("[MatrixReader] Read %d strategies in %.2fms", len(data.Matrix), float64(time.Since(startTime).Nanoseconds())/1e6)
	return data, nil
}

func (r *MatrixReader) readExcelRecords() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, core.NewMalformedMatrixError(0, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *MatrixReader) readCSVRecords() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return records, nil
}

// parseRecords turns spreadsheet rows into a matrix. Blank rows are skipped
// and a non-numeric first row is treated as a header. Row numbers in errors
// refer to the source row.
func parseRecords(records [][]string) (*MatrixData, error) {
	data := &MatrixData{}
	seenData := false
	for i, record := range records {
		cells := trimCells(record)
		if len(cells) == 0 {
			continue
		}
		if !seenData && data.Header == nil && len(cells) == 2 && !isNumeric(cells[0]) && !isNumeric(cells[1]) {
			data.Header = cells
			continue
		}
		seenData = true

		point, err := parsePoint(cells, i+1)
		if err != nil {
			return nil, err
		}
		data.Matrix = append(data.Matrix, point)
	}

	if len(data.Matrix) == 0 {
		return nil, core.NewMalformedMatrixError(0, "no strategy rows found")
	}
	data.Labels = strategyLabels(len(data.Matrix))
	return data, nil
}

func parsePoint(cells []string, row int) (decision.StrategyPoint, error) {
	if len(cells) != 2 {
		return decision.StrategyPoint{}, core.NewMalformedMatrixError(row, fmt.Sprintf("expected 2 values, got %d", len(cells)))
	}
	var values [2]float64
	for j, cell := range cells {
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, " ", ""), 64)
		if err != nil || !numeric.Finite(v) {
			return decision.StrategyPoint{}, core.NewMalformedMatrixError(row, fmt.Sprintf("invalid number %q", cell))
		}
		values[j] = v
	}
	return decision.StrategyPoint{L: values[0], J: values[1]}, nil
}

// trimCells trims whitespace and drops trailing empty cells
func trimCells(record []string) []string {
	cells := make([]string, len(record))
	for i, c := range record {
		cells[i] = strings.TrimSpace(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
