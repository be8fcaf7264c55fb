package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrTextConversion indicates a text engine failed on a segment.
var ErrTextConversion = errors.New("text conversion failed")

// TextRenderer converts one text segment to an HTML fragment.
type TextRenderer interface {
	RenderText(ctx context.Context, text string) (string, error)
}

// GoldmarkRenderer renders text segments with goldmark. Unlike Rewriter it
// follows CommonMark with GFM extensions.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM, footnotes and
// syntax highlighting. The highlighter emits inline styles so the output
// does not depend on a chroma stylesheet.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in the source is kept so both engines agree on it.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderText converts text to an HTML fragment. Goldmark has no context
// support, so the conversion runs in a goroutine and ctx is honored
// between start and finish.
func (r *GoldmarkRenderer) RenderText(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(text), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrTextConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// Engine names accepted by NewTextRenderer.
const (
	EngineBuiltin  = "builtin"
	EngineGoldmark = "goldmark"
)

// ErrUnknownEngine indicates an engine name NewTextRenderer does not know.
var ErrUnknownEngine = errors.New("unknown text engine")

// Engines lists the accepted engine names, default first.
func Engines() []string {
	return []string{EngineBuiltin, EngineGoldmark}
}

// NewTextRenderer returns the engine registered under name. An empty name
// selects the built-in rewriter.
func NewTextRenderer(name string) (TextRenderer, error) {
	switch name {
	case "", EngineBuiltin:
		return NewRewriter(), nil
	case EngineGoldmark:
		return NewGoldmarkRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
