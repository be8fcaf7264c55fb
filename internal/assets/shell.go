package assets

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// DocumentData fills the document template.
type DocumentData struct {
	Title string
	CSS   string // raw stylesheet, placed inside <style>
	Body  string // trusted HTML produced by the converter
}

// Shell renders complete HTML documents from a parsed template.
// It is safe for concurrent use.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses a document template. The template receives Title as
// text, CSS as a stylesheet and Body as HTML.
func NewShell(tmplContent string) (*Shell, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// shellData is what the template actually sees.
type shellData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// Render writes the document for data to w.
func (s *Shell) Render(w io.Writer, data DocumentData) error {
	// #nosec G203 -- Body is the converter's own output; CSS is sanitized
	err := s.tmpl.Execute(w, shellData{
		Title: data.Title,
		CSS:   template.CSS(sanitizeCSS(data.CSS)),
		Body:  template.HTML(data.Body),
	})
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}

// sanitizeCSS keeps a stylesheet from closing its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
