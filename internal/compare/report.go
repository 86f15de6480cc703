package compare

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name; empty selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", name)
}

// Report is the outcome of comparing two platforms.
type Report struct {
	Left        string       `json:"left" yaml:"left"`
	Right       string       `json:"right" yaml:"right"`
	Compared    int          `json:"compared" yaml:"compared"`
	Differences []Difference `json:"differences" yaml:"differences"`
	Notes       []string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewReport compares two sides and collects notes about the comparison.
func NewReport(left, right Side) *Report {
	r := &Report{
		Left:        left.Name,
		Right:       right.Name,
		Compared:    len(unionNames(left.Results, right.Results)),
		Differences: Compare(left, right),
	}
	if len(left.Results) == 0 {
		r.Notes = append(r.Notes, "no results for "+left.Name)
	}
	if len(right.Results) == 0 {
		r.Notes = append(r.Notes, "no results for "+right.Name)
	}
	if msg, ok := RuntimeSkew(left, right); ok {
		r.Notes = append(r.Notes, msg)
	}
	return r
}

// Render writes the report to w in the given format.
func Render(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		return enc.Close()
	default:
		return renderText(w, r)
	}
}

func renderText(w io.Writer, r *Report) error {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString("Comparison Results:\n")
	if len(r.Differences) == 0 {
		b.WriteString("No differences found.\n")
	}
	for _, d := range r.Differences {
		fmt.Fprintf(&b, "Test case: %s, Status: %s, Details: %s\n", d.TestCase, d.Status, d.Details)
	}
	for _, note := range r.Notes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}
	p.Fprintf(&b, "%s vs %s: %d test cases compared, %d differences\n",
		r.Left, r.Right, r.Compared, len(r.Differences))

	_, err := io.WriteString(w, b.String())
	return err
}
