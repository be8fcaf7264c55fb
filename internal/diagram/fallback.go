package diagram

import (
	"html/template"
	"strings"
)

// Markers that drive the fallback layout. The layout is a fixed four-column
// release flow; it only appears when both phase markers are present.
const (
	markerDevelopment = "Development Phase"
	markerTranslation = "Translation Phase"

	markerDevDecided       = "Dev Workflow ✓"
	markerTranslateDecided = "Testing: Regression ✓"
	markerFreezeDecided    = "Final Regression ✓"

	pendingLabel = "TBD"
)

// Phase is one column of the fallback layout.
type Phase struct {
	Name    string
	Decided bool

	// DecidedLabel is shown in the status box when Decided is true.
	DecidedLabel string

	// Terminal phases show only their name box.
	Terminal bool
}

// Status returns the CSS class of the status box.
func (p Phase) Status() string {
	if p.Decided {
		return "decided"
	}
	return "pending"
}

// Label returns the status box text after "Testing: ".
func (p Phase) Label() string {
	if p.Decided {
		return p.DecidedLabel
	}
	return pendingLabel
}

// FallbackLayout is the result of analyzing diagram source for the
// fallback renderer.
type FallbackLayout struct {
	Recognized  bool
	Development Phase
	Translation Phase
	CodeFreeze  Phase
}

// Columns returns the phases in display order, ending with Release.
func (l FallbackLayout) Columns() []Phase {
	return []Phase{
		l.Development,
		l.Translation,
		l.CodeFreeze,
		{Name: "Release", Terminal: true},
	}
}

// AnalyzeFallback derives the layout from diagram source by substring
// search. It does not parse mermaid syntax.
func AnalyzeFallback(source string) FallbackLayout {
	return FallbackLayout{
		Recognized: strings.Contains(source, markerDevelopment) &&
			strings.Contains(source, markerTranslation),
		Development: Phase{
			Name:         "Development Phase",
			Decided:      strings.Contains(source, markerDevDecided),
			DecidedLabel: "Dev Workflow ✓",
		},
		Translation: Phase{
			Name:         "Translation Phase",
			Decided:      strings.Contains(source, markerTranslateDecided),
			DecidedLabel: "Regression ✓",
		},
		CodeFreeze: Phase{
			Name:         "Code Freeze Phase",
			Decided:      strings.Contains(source, markerFreezeDecided),
			DecidedLabel: "Final Regression ✓",
		},
	}
}

const fallbackTemplate = `<div class="flowchart">
{{- if .Recognized}}
  <div class="flow-container">
{{- range $i, $p := .Columns}}
{{- if $i}}
    <div class="horizontal-arrow">→</div>
{{- end}}
    <div class="phase-column">
      <div class="box neutral">{{$p.Name}}</div>
{{- if not $p.Terminal}}
      <div class="vertical-arrow">↓</div>
      <div class="box {{$p.Status}}">Testing: {{$p.Label}}</div>
      <div class="dotted-line">⋯</div>
      <div class="box future">Tools &amp; Methods<br/>TBD</div>
{{- end}}
    </div>
{{- end}}
  </div>
{{- end}}
</div>
`

// emptyFlowchart is returned for unrecognized source.
const emptyFlowchart = "<div class=\"flowchart\">\n</div>\n"

var fallbackTmpl = template.Must(template.New("fallback").Parse(fallbackTemplate))

// RenderFallback renders the HTML/CSS approximation of a diagram. Source
// without both phase markers yields an empty flowchart container.
func RenderFallback(source string) string {
	return AnalyzeFallback(source).HTML()
}

// HTML renders the layout.
func (l FallbackLayout) HTML() string {
	if !l.Recognized {
		return emptyFlowchart
	}

	var b strings.Builder
	if err := fallbackTmpl.Execute(&b, l); err != nil {
		return emptyFlowchart
	}
	return b.String()
}
