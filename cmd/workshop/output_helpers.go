package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat struct {
	json bool
	yaml bool
}

func addOutputFlags(cmd *cobra.Command, format *outputFormat) {
	cmd.Flags().BoolVar(&format.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&format.yaml, "yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

// write encodes value in the requested format. It returns false when plain
// text output should be used instead.
func (format outputFormat) write(w io.Writer, value any) (bool, error) {
	switch {
	case format.json:
		return true, encodeJSON(w, value)
	case format.yaml:
		return true, encodeYAML(w, value)
	default:
		return false, nil
	}
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func encodeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
