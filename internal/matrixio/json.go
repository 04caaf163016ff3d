// SPDX-License-Identifier: MIT

package matrixio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/katalvlaran/invcache/matrix"
)

// DecodeJSON parses an array of numeric arrays found at the gjson path
// (the whole document when path is empty).
func DecodeJSON(data []byte, path string) (*matrix.Dense, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("matrixio: json: invalid document: %w", ErrMalformed)
	}

	res := gjson.ParseBytes(data)
	if path != "" {
		res = res.Get(path)
		if !res.Exists() {
			return nil, fmt.Errorf("matrixio: json: path %q not found: %w", path, ErrMalformed)
		}
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("matrixio: json: expected an array of rows: %w", ErrMalformed)
	}

	var rows [][]float64
	for i, rowRes := range res.Array() {
		if !rowRes.IsArray() {
			return nil, fmt.Errorf("matrixio: json: row %d is not an array: %w", i, ErrMalformed)
		}
		cells := rowRes.Array()
		row := make([]float64, len(cells))
		for j, cell := range cells {
			if cell.Type != gjson.Number {
				return nil, fmt.Errorf("matrixio: json: (%d,%d)=%s is not a number: %w",
					i, j, cell.Raw, ErrMalformed)
			}
			row[j] = cell.Float()
		}
		rows = append(rows, row)
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("matrixio: json: %w", err)
	}

	return m, nil
}

// EncodeJSON writes {"matrix": rows} followed by a newline.
func EncodeJSON(w io.Writer, m matrix.Matrix) error {
	rows, err := toRows(m)
	if err != nil {
		return err
	}
	if err = json.NewEncoder(w).Encode(map[string][][]float64{"matrix": rows}); err != nil {
		return fmt.Errorf("matrixio: json: %w", err)
	}

	return nil
}
