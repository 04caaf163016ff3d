// SPDX-License-Identifier: MIT

package matrixio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/invcache/matrix"
)

type yamlDoc struct {
	Matrix [][]float64 `yaml:"matrix"`
}

// DecodeYAML parses a YAML sequence of rows or a {matrix: rows} mapping.
func DecodeYAML(data []byte) (*matrix.Dense, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("matrixio: yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("matrixio: yaml: empty document: %w", matrix.ErrBadShape)
	}

	var rows [][]float64
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&rows); err != nil {
			return nil, fmt.Errorf("matrixio: yaml: %v: %w", err, ErrMalformed)
		}
	case yaml.MappingNode:
		var d yamlDoc
		if err := root.Decode(&d); err != nil {
			return nil, fmt.Errorf("matrixio: yaml: %v: %w", err, ErrMalformed)
		}
		rows = d.Matrix
	default:
		return nil, fmt.Errorf("matrixio: yaml: top level must be a sequence or mapping: %w", ErrMalformed)
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("matrixio: yaml: %w", err)
	}

	return m, nil
}

// EncodeYAML writes {matrix: rows} with one flow sequence per row.
func EncodeYAML(w io.Writer, m matrix.Matrix) error {
	rows, err := toRows(m)
	if err != nil {
		return err
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		var n yaml.Node
		if err = n.Encode(row); err != nil {
			return fmt.Errorf("matrixio: yaml: %w", err)
		}
		n.Style = yaml.FlowStyle
		seq.Content = append(seq.Content, &n)
	}
	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "matrix"},
			seq,
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(root); err != nil {
		return fmt.Errorf("matrixio: yaml: %w", err)
	}

	return enc.Close()
}
