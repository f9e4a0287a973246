package excel

import (
	"strings"

	"npdecide/domain/core"
)

// ParseMatrixText parses the calculator's textual matrix format: one strategy
// per line as "L, J". Semicolons may separate strategies on a single line.
// Blank entries are ignored; errors name the 1-based strategy entry.
func ParseMatrixText(text string) (*MatrixData, error) {
	entries := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	data := &MatrixData{Source: "text"}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		point, err := parsePoint(trimCells(strings.Split(entry, ",")), len(data.Matrix)+1)
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
