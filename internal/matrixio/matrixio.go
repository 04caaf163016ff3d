// SPDX-License-Identifier: MIT

// Package matrixio reads matrices from YAML or JSON documents and renders
// them as text, YAML or JSON.
//
// Accepted input:
//   - YAML: a top-level sequence of rows, or a mapping with a "matrix" key.
//   - JSON: an array of arrays, at the document root or at a gjson path.
//
// Ragged rows are rejected with matrix.ErrBadShape.
package matrixio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/invcache/matrix"
)

// Input formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

var (
	// ErrFormat reports an unknown input or output format.
	ErrFormat = errors.New("matrixio: unknown format")

	// ErrMalformed reports input that is not a list of numeric rows.
	ErrMalformed = errors.New("matrixio: malformed matrix document")
)

// FormatFromPath infers the input format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrFormat)
	}
}

// Decode parses data in the given format. path is a gjson path and only
// applies to JSON; an empty path selects the document root.
func Decode(data []byte, format, path string) (*matrix.Dense, error) {
	switch strings.ToLower(format) {
	case FormatYAML:
		if path != "" {
			return nil, fmt.Errorf("matrixio: path %q is only valid for json: %w", path, ErrFormat)
		}
		return DecodeYAML(data)
	case FormatJSON:
		return DecodeJSON(data, path)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrFormat)
	}
}
