package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is aligned plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON output.
	FormatJSON OutputFormat = "json"
	// FormatYAML is YAML output.
	FormatYAML OutputFormat = "yaml"
	// FormatCSV is CSV output. Only tabular results support it.
	FormatCSV OutputFormat = "csv"
)

// Formats lists every supported output format.
var Formats = []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatCSV}

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", NewConfigError("output", fmt.Sprintf("unknown format %q (want text, json, yaml or csv)", s))
}

// Table is a result rendered as rows of columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Tabular is implemented by results that have a row representation.
// Text and CSV output use it; JSON and YAML encode the value itself.
type Tabular interface {
	Table() Table
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter writes Tabular values as aligned columns and everything
// else with fmt's %v verb.
type TextFormatter struct{}

// FormatTo writes data to w in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	t, ok := data.(Tabular)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	table := t.Table()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(table.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
	}
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// FormatTo writes data to w in YAML format.
func (f *YAMLFormatter) FormatTo(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// CSVFormatter formats Tabular output as CSV.
type CSVFormatter struct{}

// FormatTo writes data to w in CSV format.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	t, ok := data.(Tabular)
	if !ok {
		return fmt.Errorf("csv output is not supported for %T", data)
	}

	table := t.Table()
	csvWriter := csv.NewWriter(w)
	if len(table.Headers) > 0 {
		if err := csvWriter.Write(table.Headers); err != nil {
			return err
		}
	}
	if err := csvWriter.WriteAll(table.Rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
