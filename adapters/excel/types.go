package excel

import (
	"fmt"

	"npdecide/domain/decision"
)

// MatrixData is a strategy matrix read from text or a spreadsheet
type MatrixData struct {
	Matrix decision.StrategyMatrix `json:"matrix"`
	Labels []string                `json:"labels"`
	Source string                  `json:"source"`
	// Header holds the column names when the source had a header row
	Header []string `json:"header,omitempty"`
}

// Rows returns the matrix as plain [L, J] rows
func (d *MatrixData) Rows() [][]float64 {
	return d.Matrix.Rows()
}

// strategyLabels names strategies a1..an, the convention of the calculator form
func strategyLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("a%d", i+1)
	}
	return labels
}
