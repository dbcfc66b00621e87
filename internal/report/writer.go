package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Writer renders a Summary.
type Writer interface {
	Write(w io.Writer, s Summary) error
}

// NewWriter returns the Writer for format.
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return TextWriter{}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatYAML:
		return YAMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// TextWriter renders a human-readable table.
type TextWriter struct{}

// Write renders s as text.
func (TextWriter) Write(w io.Writer, s Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (seed %d, %d workers)\n", s.RunID, s.Seed, s.Workers)
	fmt.Fprintf(&b, "Trials: %s, round cap %d, starting money %s\n",
		humanize.Comma(int64(s.Trials)), s.RoundCap, humanize.Comma(int64(s.StartingMoney)))
	b.WriteString("\nFirst to go bankrupt:\n")
	for _, sh := range s.Shares {
		fmt.Fprintf(&b, "  %-13s %12s  %6s%%\n", sh.Participant, humanize.Comma(int64(sh.Terminations)), sh.Percent.StringFixed(2))
	}
	fmt.Fprintf(&b, "  %-13s %12s  %6s%%\n", "Unterminated", humanize.Comma(int64(s.Unterminated)), s.UnterminatedPercent.StringFixed(2))
	fmt.Fprintf(&b, "\nMean rounds: %s (max %d)\n", s.MeanRounds.StringFixed(2), s.MaxRounds)
	fmt.Fprintf(&b, "Elapsed: %s\n", s.Elapsed())
	_, err := io.WriteString(w, b.String())
	return err
}

// JSONWriter renders indented JSON.
type JSONWriter struct{}

// Write renders s as JSON.
func (JSONWriter) Write(w io.Writer, s Summary) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// YAMLWriter renders YAML.
type YAMLWriter struct{}

// Write renders s as YAML.
func (YAMLWriter) Write(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}
