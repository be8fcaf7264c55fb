package md2html

import (
	"fmt"
	"time"

	"github.com/alnah/go-md2html/internal/diagram"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// DefaultTitle is used when Input.Title is empty.
const DefaultTitle = "Document"

// Input contains conversion parameters.
type Input struct {
	Markdown  string // Required: markdown content (may be empty)
	SourceDir string // Optional: base directory for relative image paths
	Title     string // Optional: document <title> (empty = DefaultTitle)
	CSS       string // Optional: stylesheet appended after the converter style
}

// Notice is a non-fatal diagnostic produced during conversion.
type Notice struct {
	Line    int    // 1-based source line the notice refers to
	Message string
}

// String formats the notice as "line N: message".
func (n Notice) String() string {
	return fmt.Sprintf("line %d: %s", n.Line, n.Message)
}

// DiagramStats counts how diagram blocks were rendered.
type DiagramStats struct {
	Rendered int // rasterized to an inline PNG
	Fallback int // replaced by the HTML/CSS layout
}

// Total returns the number of diagram blocks seen.
func (d DiagramStats) Total() int {
	return d.Rendered + d.Fallback
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML     []byte // complete standalone document
	Body     string // converted segments, without the document shell
	Notices  []Notice
	Diagrams DiagramStats
	Images   int // local images inlined as data: URIs
}

// DiagramCommand is one way of invoking the diagram renderer. The full
// command line is Name, Args, the render arguments, then Extra.
type DiagramCommand struct {
	Name  string
	Args  []string
	Extra []string
}

// DiagramSettings tunes the external renderer. Zero fields keep the
// defaults (theme "default", white background, scale 5, 1800x1200, 30s).
type DiagramSettings struct {
	Theme      string
	Background string
	Scale      int
	Width      int
	Height     int
	Timeout    time.Duration // per attempt
}

// merge overlays the non-zero fields of s onto base.
func (s DiagramSettings) merge(base diagram.Settings) diagram.Settings {
	if s.Theme != "" {
		base.Theme = s.Theme
	}
	if s.Background != "" {
		base.Background = s.Background
	}
	if s.Scale != 0 {
		base.Scale = s.Scale
	}
	if s.Width != 0 {
		base.Width = s.Width
	}
	if s.Height != 0 {
		base.Height = s.Height
	}
	if s.Timeout != 0 {
		base.Timeout = s.Timeout
	}
	return base
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options applied before NewConverter resolves them.
type converterConfig struct {
	engine        string
	style         string
	assetPath     string
	assetLoader   AssetLoader
	embedImages   bool
	disableRender bool
	commands      []DiagramCommand
	settings      DiagramSettings
	diagramOpts   []diagram.Option
}

// WithEngine selects the text engine: "builtin" (default) or "goldmark".
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithStyle sets the stylesheet by built-in name or by path to a .css file.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.style = nameOrPath
	}
}

// WithAssetPath loads styles and the document template from dir, falling
// back to the embedded assets for anything missing.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.cfg.assetLoader = loader
	}
}

// WithImageEmbedding toggles inlining of local images (default true).
func WithImageEmbedding(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.embedImages = enabled
	}
}

// WithDiagramRendering toggles the external renderer (default true). When
// disabled, every diagram uses the HTML/CSS layout without a notice.
func WithDiagramRendering(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.disableRender = !enabled
	}
}

// WithDiagramCommands replaces the platform's default renderer commands.
// Commands are tried in order; the first success wins.
func WithDiagramCommands(cmds ...DiagramCommand) Option {
	return func(c *Converter) {
		c.cfg.commands = append([]DiagramCommand(nil), cmds...)
	}
}

// WithDiagramSettings overrides renderer settings. Zero fields are ignored.
func WithDiagramSettings(s DiagramSettings) Option {
	return func(c *Converter) {
		c.cfg.settings = s
	}
}

// WithTimeout sets the per-attempt diagram render timeout.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.settings.Timeout = d
	}
}

// withDiagramOptions passes options straight to the diagram renderer.
func withDiagramOptions(opts ...diagram.Option) Option {
	return func(c *Converter) {
		c.cfg.diagramOpts = append(c.cfg.diagramOpts, opts...)
	}
}

// withTextRenderer replaces the text engine.
func withTextRenderer(r pipeline.TextRenderer) Option {
	return func(c *Converter) {
		c.text = r
	}
}
