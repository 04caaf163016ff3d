// SPDX-License-Identifier: MIT

package matrixio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/invcache/internal/matrixio"
	"github.com/katalvlaran/invcache/matrix"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return data
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.yaml":      matrixio.FormatYAML,
		"dir/b.YML":   matrixio.FormatYAML,
		"c.json":      matrixio.FormatJSON,
		"/tmp/d.JSON": matrixio.FormatJSON,
	}
	for path, want := range tests {
		got, err := matrixio.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := matrixio.FormatFromPath("matrix.csv")
	assert.ErrorIs(t, err, matrixio.ErrFormat)
}

func TestDecode_Files(t *testing.T) {
	want := [][]float64{{4, 7}, {2, 6}}
	tests := []struct {
		file, path string
	}{
		{"m2.yaml", ""},
		{"m2_keyed.yml", ""},
		{"m2.json", ""},
		{"nested.json", "data.matrices.1.rows"},
		{"nested.json", `data.matrices.#(id=="b").rows`},
	}
	for _, tt := range tests {
		t.Run(tt.file+tt.path, func(t *testing.T) {
			format, err := matrixio.FormatFromPath(tt.file)
			require.NoError(t, err)
			m, err := matrixio.Decode(readTestdata(t, tt.file), format, tt.path)
			require.NoError(t, err)
			assert.Equal(t, want, m.ToRows())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  string
		path    string
		wantErr error
	}{
		{"ragged yaml", string(readTestdata(t, "ragged.yaml")), matrixio.FormatYAML, "", matrix.ErrBadShape},
		{"ragged json", `[[1,2],[3]]`, matrixio.FormatJSON, "", matrix.ErrBadShape},
		{"empty yaml", ``, matrixio.FormatYAML, "", matrix.ErrBadShape},
		{"empty json array", `[]`, matrixio.FormatJSON, "", matrix.ErrBadShape},
		{"yaml scalar", `42`, matrixio.FormatYAML, "", matrixio.ErrMalformed},
		{"yaml strings", "- [a, b]\n- [c, d]\n", matrixio.FormatYAML, "", matrixio.ErrMalformed},
		{"yaml missing key", "rows: [[1]]\n", matrixio.FormatYAML, "", matrix.ErrBadShape},
		{"invalid json", `[[1,2]`, matrixio.FormatJSON, "", matrixio.ErrMalformed},
		{"json object root", `{"a":1}`, matrixio.FormatJSON, "", matrixio.ErrMalformed},
		{"json flat array", `[1,2]`, matrixio.FormatJSON, "", matrixio.ErrMalformed},
		{"json string cell", `[[1,"2"]]`, matrixio.FormatJSON, "", matrixio.ErrMalformed},
		{"json missing path", `{"a":[[1]]}`, matrixio.FormatJSON, "b", matrixio.ErrMalformed},
		{"yaml with path", "- [1]\n", matrixio.FormatYAML, "x", matrixio.ErrFormat},
		{"unknown format", `[[1]]`, "toml", "", matrixio.ErrFormat},
		{"non-finite json", `[[1e400]]`, matrixio.FormatJSON, "", matrix.ErrNaNInf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matrixio.Decode([]byte(tt.data), tt.format, tt.path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodeText(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0.6, -0.7}, {-0.2, 0.4}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, matrixio.EncodeText(&buf, m, matrixio.DefaultDigits))
	assert.Equal(t, " 0.6  -0.7\n-0.2   0.4\n", buf.String())

	third, err := matrix.NewDenseFromRows([][]float64{{1.0 / 3, 10}, {-1e-9, 0}})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, matrixio.EncodeText(&buf, third, 2))
	assert.Equal(t, "0.33  10\n   0   0\n", buf.String())

	// anything past MaxDigits prints like MaxDigits
	pi, err := matrix.NewDenseFromRows([][]float64{{3.14159265}})
	require.NoError(t, err)
	var capped, wide bytes.Buffer
	require.NoError(t, matrixio.EncodeText(&capped, pi, matrixio.MaxDigits))
	require.NoError(t, matrixio.EncodeText(&wide, pi, 12))
	assert.Equal(t, capped.String(), wide.String())
}

func TestEncode_RoundTrip(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0.5, -1.25}, {3, 1e-3}})
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, matrixio.Encode(&buf, m, matrixio.OutputYAML, -1))
		assert.Contains(t, buf.String(), "matrix:\n")
		got, err := matrixio.DecodeYAML(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, m.ToRows(), got.ToRows())
	})
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, matrixio.Encode(&buf, m, matrixio.OutputJSON, -1))
		got, err := matrixio.DecodeJSON(buf.Bytes(), "matrix")
		require.NoError(t, err)
		assert.Equal(t, m.ToRows(), got.ToRows())
	})
	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, matrixio.Encode(&buf, m, "xml", -1), matrixio.ErrFormat)
	})
	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, matrixio.Encode(&buf, nil, matrixio.OutputText, -1), matrix.ErrNilMatrix)
	})
}
