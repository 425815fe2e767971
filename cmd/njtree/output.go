package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatJSON   outputFormat = "json"
	formatYAML   outputFormat = "yaml"
	formatNewick outputFormat = "newick"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatJSON, formatYAML, formatNewick:
		return f, nil
	default:
		return "", fmt.Errorf("unknown --format %q (want json, yaml or newick)", s)
	}
}

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, f outputFormat, v any) error {
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
