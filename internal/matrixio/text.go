// SPDX-License-Identifier: MIT

package matrixio

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/invcache/matrix"
)

const (
	// DefaultDigits is the number of decimals kept by EncodeText.
	DefaultDigits = 6

	// MaxDigits is the most decimals humanize.FtoaWithDigits will emit.
	MaxDigits = 6
)

// EncodeText writes one line per row with right-aligned columns. Values are
// truncated (not rounded) to digits decimals with trailing zeros trimmed.
// A negative digits selects DefaultDigits; values above MaxDigits are
// clamped to it.
func EncodeText(w io.Writer, m matrix.Matrix, digits int) error {
	rows, err := toRows(m)
	if err != nil {
		return err
	}
	if digits < 0 {
		digits = DefaultDigits
	}
	if digits > MaxDigits {
		digits = MaxDigits
	}
	if len(rows) == 0 {
		return nil
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(rows[0]))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := humanize.FtoaWithDigits(v, digits)
			if s == "-0" {
				s = "0"
			}
			cells[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for j, s := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%*s", widths[j], s)
		}
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())

	return err
}

// Encode dispatches on the output format.
func Encode(w io.Writer, m matrix.Matrix, output string, digits int) error {
	switch strings.ToLower(output) {
	case OutputText:
		return EncodeText(w, m, digits)
	case OutputYAML:
		return EncodeYAML(w, m)
	case OutputJSON:
		return EncodeJSON(w, m)
	default:
		return fmt.Errorf("output %q: %w", output, ErrFormat)
	}
}

// toRows copies m into a slice of rows.
func toRows(m matrix.Matrix) ([][]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("matrixio: %w", err)
	}
	if d, ok := m.(*matrix.Dense); ok {
		return d.ToRows(), nil
	}

	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
		for j := range rows[i] {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("matrixio: %w", err)
			}
			rows[i][j] = v
		}
	}

	return rows, nil
}
