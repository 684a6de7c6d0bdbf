package refcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/macropower/assetref/pkg/assetref"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Report is the document written for the JSON and YAML formats.
type Report struct {
	Outcomes []assetref.Outcome `json:"outcomes" yaml:"outcomes"`
	Summary  Summary            `json:"summary"  yaml:"summary"`
}

// Reporter writes outcomes to an [io.Writer].
type Reporter struct {
	w         io.Writer
	format    string
	color     *bool
	okMark    lipgloss.Style
	errMark   lipgloss.Style
	pathStyle lipgloss.Style
	dimStyle  lipgloss.Style
}

// ReporterOption configures a [Reporter].
type ReporterOption func(*Reporter)

// WithColor forces colored text output on or off. By default color is used
// only when the writer is a terminal.
func WithColor(enabled bool) ReporterOption {
	return func(r *Reporter) {
		r.color = &enabled
	}
}

// NewReporter creates a [Reporter] for the given format.
func NewReporter(w io.Writer, format string, opts ...ReporterOption) (*Reporter, error) {
	r := &Reporter{w: w, format: strings.ToLower(format)}

	switch r.format {
	case FormatText, FormatJSON, FormatYAML:
	case "":
		r.format = FormatText
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	for _, opt := range opts {
		opt(r)
	}

	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	if r.useColor() {
		renderer = lipgloss.NewRenderer(w)
	}

	r.okMark = renderer.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	r.errMark = renderer.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗")
	r.pathStyle = renderer.NewStyle().Foreground(lipgloss.Color("211"))
	r.dimStyle = renderer.NewStyle().Faint(true)

	return r, nil
}

func (r *Reporter) useColor() bool {
	if r.color != nil {
		return *r.color
	}

	f, ok := r.w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

// Write writes outcomes in the reporter's format.
func (r *Reporter) Write(outcomes []assetref.Outcome) error {
	if outcomes == nil {
		outcomes = []assetref.Outcome{}
	}

	report := Report{Outcomes: outcomes, Summary: Summarize(outcomes)}

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)

		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

	default:
		return r.writeText(report)
	}

	return nil
}

func (r *Reporter) writeText(report Report) error {
	var sb strings.Builder

	for _, o := range report.Outcomes {
		if o.OK() {
			fmt.Fprintf(&sb, "%s %s: %s -> %s\n",
				r.okMark, o.Base, o.Ref, r.pathStyle.Render(o.Path))

			continue
		}

		fmt.Fprintf(&sb, "%s %s: %s %s\n",
			r.errMark, o.Base, o.Ref, r.dimStyle.Render(o.Err().Error()))
	}

	s := report.Summary
	fmt.Fprintf(&sb, "%d references, %d ok, %d failed\n", s.Total, s.OK, s.Failed)

	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}
