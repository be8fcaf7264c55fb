package md2html

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/diagram"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TextRenderer = (*pipeline.Rewriter)(nil)
	_ pipeline.TextRenderer = (*pipeline.GoldmarkRenderer)(nil)
	_ AssetLoader           = (*assets.AssetResolver)(nil)
	_ AssetLoader           = (*assetLoaderAdapter)(nil)
)

// Converter orchestrates the markdown-to-HTML conversion pipeline.
// Create with NewConverter() and use Convert() for conversion.
// A Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	loader   AssetLoader
	text     pipeline.TextRenderer
	diagrams *diagram.Renderer
	shell    *assets.Shell
	style    string // resolved CSS
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithStyle, WithTimeout).
// Returns error if the engine is unknown or asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:      pipeline.EngineBuiltin,
			embedImages: true,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveLoader(); err != nil {
		return nil, err
	}

	// Create text renderer if not injected (e.g., by tests)
	if c.text == nil {
		text, err := pipeline.NewTextRenderer(c.cfg.engine)
		if err != nil {
			return nil, err
		}
		c.text = text
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.loader.LoadTemplate(DocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", convertAssetError(err))
	}
	c.shell, err = assets.NewShell(tmpl)
	if err != nil {
		return nil, convertAssetError(err)
	}

	settings := c.cfg.settings.merge(diagram.DefaultSettings())
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}

	diagramOpts := []diagram.Option{
		diagram.WithSettings(settings),
		diagram.WithDisabled(c.cfg.disableRender),
	}
	if c.cfg.commands != nil {
		candidates, err := toCandidates(c.cfg.commands)
		if err != nil {
			return nil, err
		}
		diagramOpts = append(diagramOpts, diagram.WithCandidates(candidates))
	}
	c.diagrams = diagram.New(append(diagramOpts, c.cfg.diagramOpts...)...)

	return c, nil
}

// Convert runs the full pipeline and returns the complete document.
// Diagram rendering problems never fail a conversion; they are reported in
// ConvertResult.Notices. The context bounds external renderer calls.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{}
	body, err := c.convertBody(ctx, input, res)
	if err != nil {
		return nil, err
	}
	res.Body = body

	css := c.style
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	title := input.Title
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	if err := c.shell.Render(&buf, assets.DocumentData{Title: title, CSS: css, Body: body}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	res.HTML = buf.Bytes()

	return res, nil
}

// convertBody splits the document into segments, routes each one to its
// renderer, and joins the results in source order.
func (c *Converter) convertBody(ctx context.Context, input Input, res *ConvertResult) (string, error) {
	seg := pipeline.SplitSegments(pipeline.NormalizeLineEndings(input.Markdown))

	parts := make([]string, 0, len(seg.Segments))
	for _, s := range seg.Segments {
		if s.Kind == pipeline.SegmentDiagram {
			r := c.diagrams.Render(ctx, s.Content)
			if r.Fallback {
				res.Diagrams.Fallback++
			} else {
				res.Diagrams.Rendered++
			}
			if r.Notice != "" {
				res.Notices = append(res.Notices, Notice{Line: s.Line, Message: r.Notice})
			}
			parts = append(parts, r.HTML)
			continue
		}

		html, err := c.text.RenderText(ctx, s.Content)
		if err != nil {
			return "", fmt.Errorf("converting text at line %d: %w", s.Line, err)
		}
		if c.cfg.embedImages && input.SourceDir != "" {
			var n int
			html, n, err = pipeline.EmbedLocalImages(html, input.SourceDir)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrImageEmbed, err)
			}
			res.Images += n
		}
		parts = append(parts, html)
	}

	if seg.UnterminatedLine > 0 {
		res.Notices = append(res.Notices, Notice{
			Line:    seg.UnterminatedLine,
			Message: "unterminated mermaid fence; rendered as text",
		})
	}

	return strings.Join(parts, "\n"), nil
}

// Engine returns the name of the text engine in use.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// resolveLoader picks the asset loader: WithAssetLoader, then
// WithAssetPath, then the embedded assets.
func (c *Converter) resolveLoader() error {
	if c.cfg.assetLoader != nil {
		c.loader = c.cfg.assetLoader
		return nil
	}
	loader, err := NewAssetLoader(c.cfg.assetPath)
	if err != nil {
		return err
	}
	c.loader = loader
	return nil
}

// resolveStyle resolves the style input (name or path) to CSS content.
// An empty input selects DefaultStyle.
func (c *Converter) resolveStyle() error {
	input := c.cfg.style
	if input == "" {
		input = DefaultStyle
	}

	if fileutil.IsFilePath(input) {
		css, err := assets.ReadStyleFile(input)
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, convertAssetError(err))
		}
		c.style = css
		return nil
	}

	css, err := c.loader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.style = css
	return nil
}

// toCandidates converts public commands to validated renderer candidates.
func toCandidates(cmds []DiagramCommand) ([]diagram.Candidate, error) {
	out := make([]diagram.Candidate, len(cmds))
	for i, cmd := range cmds {
		out[i] = diagram.Candidate(cmd)
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: diagram command %d: %v", ErrInvalidOption, i, err)
		}
	}
	return out, nil
}
