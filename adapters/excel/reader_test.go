package excel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"npdecide/domain/core"
	"npdecide/domain/decision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseMatrixText(t *testing.T) {
	data, err := ParseMatrixText("3.5,4.4\n8.2, 6.4\r\n\n 1.5 , 2.4 \n0.4,8.5")
	require.NoError(t, err)

	assert.Equal(t, decision.StrategyMatrix{
		{L: 3.5, J: 4.4}, {L: 8.2, J: 6.4}, {L: 1.5, J: 2.4}, {L: 0.4, J: 8.5},
	}, data.Matrix)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, data.Labels)
	assert.Equal(t, [][]float64{{3.5, 4.4}, {8.2, 6.4}, {1.5, 2.4}, {0.4, 8.5}}, data.Rows())
}

func TestParseMatrixTextSemicolons(t *testing.T) {
	data, err := ParseMatrixText("0,4; 5,1;6,3;3,2")
	require.NoError(t, err)
	assert.Len(t, data.Matrix, 4)
	assert.Equal(t, decision.StrategyPoint{L: 3, J: 2}, data.Matrix[3])
}

func TestParseMatrixTextErrors(t *testing.T) {
	tests := []struct {
		name, text, msg string
	}{
		{"three values", "1,2\n3,4,5", "row 2: expected 2 values, got 3"},
		{"one value", "1", "row 1: expected 2 values, got 1"},
		{"not a number", "1,2\n3,x", `row 2: invalid number "x"`},
		{"nan", "NaN,1", `row 1: invalid number "NaN"`},
		{"empty", " \n\n", "no strategy rows found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMatrixText(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrMalformedMatrix))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "matrix.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestMatrixReader_Excel(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"L", "J"},
		{0, 4},
		{5, 1},
		{},
		{6.5, 3},
	})

	data, err := NewMatrixReader(path).ReadMatrix()
	require.NoError(t, err)

	assert.Equal(t, []string{"L", "J"}, data.Header)
	assert.Equal(t, decision.StrategyMatrix{{L: 0, J: 4}, {L: 5, J: 1}, {L: 6.5, J: 3}}, data.Matrix)
	assert.Equal(t, path, data.Source)
}

func TestMatrixReader_ExcelNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "losses", [][]interface{}{{1, 2}, {3, 4}})

	data, err := NewMatrixReader(path).WithSheet("losses").ReadMatrix()
	require.NoError(t, err)
	assert.Len(t, data.Matrix, 2)
	assert.Nil(t, data.Header)
}

func TestMatrixReader_ExcelBadRow(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{{1, 2}, {3, "abc"}})

	_, err := NewMatrixReader(path).ReadMatrix()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedMatrix)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMatrixReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.csv")
	require.NoError(t, os.WriteFile(path, []byte("controlled,uncontrolled\n0,4\n5, 1\n\n6,3\n3,2\n"), 0o600))

	data, err := NewMatrixReader(path).ReadMatrix()
	require.NoError(t, err)

	assert.Equal(t, []string{"controlled", "uncontrolled"}, data.Header)
	assert.Len(t, data.Matrix, 4)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, data.Labels)
}

func TestMatrixReader_CSVWrongWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,4\n5,1,9\n"), 0o600))

	_, err := NewMatrixReader(path).ReadMatrix()
	assert.ErrorIs(t, err, core.ErrMalformedMatrix)
}

func TestMatrixReader_MissingFile(t *testing.T) {
	_, err := NewMatrixReader(filepath.Join(t.TempDir(), "nope.xlsx")).ReadMatrix()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XLSX file not found")
}
