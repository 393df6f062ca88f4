// Package explain holds the explanation tree produced for a regular
// expression and renders it as text, markdown, JSON or YAML.
package explain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/regexplainer/regexplain/internal/types"
)

// Diagnostic is a non-fatal finding about a pattern.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	// Category groups codes: "syntax", "unsupported-construct",
	// "degraded" or "ecma".
	Category string `json:"category" yaml:"category"`
	Message  string `json:"message" yaml:"message"`
	Span     Span   `json:"span" yaml:"span"`
}

// NewDiagnostic converts an internal diagnostic.
func NewDiagnostic(d types.SpanDiagnostic) Diagnostic {
	return Diagnostic{
		Severity: d.Severity,
		Code:     d.Code,
		Category: types.CategoryOf(d.Code),
		Message:  d.Message,
		Span:     d.Span,
	}
}

// IsUnsupportedConstruct reports whether d flags a construct whose
// explanation is known to be approximate.
func (d Diagnostic) IsUnsupportedConstruct() bool {
	return d.Category == types.CategoryUnsupported
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %d-%d: %s (%s)", d.Severity, d.Span.Start, d.Span.End, d.Message, d.Code)
}

// Explanation bundles a pattern with its explanation tree and the
// diagnostics produced while building it.
type Explanation struct {
	Pattern     string       `json:"pattern" yaml:"pattern"`
	Flags       Flags        `json:"flags" yaml:"flags"`
	IsValid     bool         `json:"is_valid" yaml:"is_valid"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
	Root        *Node        `json:"tree,omitempty" yaml:"tree,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Literal returns the pattern in /body/flags form.
func (e *Explanation) Literal() string {
	return Literal(e.Pattern, e.Flags)
}

// Literal formats a pattern body and flags as a regex literal.
func Literal(pattern string, flags Flags) string {
	return "/" + pattern + "/" + flags.String()
}

// Warnings returns the unsupported-construct diagnostics.
func (e *Explanation) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.IsUnsupportedConstruct() {
			out = append(out, d)
		}
	}
	return out
}

// JSON encodes the explanation as indented JSON.
func (e *Explanation) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encoding explanation: %w", err)
	}
	return buf.Bytes(), nil
}

// YAML encodes the explanation as YAML.
func (e *Explanation) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encoding explanation: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding explanation: %w", err)
	}
	return buf.Bytes(), nil
}
