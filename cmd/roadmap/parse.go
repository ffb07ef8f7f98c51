package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Compile the documents and print the roadmap",
	Args:  cobra.NoArgs,
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q: want json or yaml", format)
	}

	svc, _, err := newService(false)
	if err != nil {
		return err
	}
	rm, err := svc.Roadmap(cmd.Context())
	if err != nil {
		return err
	}
	return writeRoadmap(cmd.OutOrStdout(), rm, format)
}

// document is the printed shape, matching the HTTP response body.
type document struct {
	Tracks roadmap.Roadmap `json:"tracks" yaml:"tracks"`
}

func writeRoadmap(w io.Writer, rm roadmap.Roadmap, format string) error {
	doc := document{Tracks: rm}
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
