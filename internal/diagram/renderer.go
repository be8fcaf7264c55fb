package diagram

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for rasterization failures. They end up in notices,
// never as errors returned from Render.
var (
	ErrNoCandidates  = errors.New("no renderer commands configured")
	ErrRenderFailed  = errors.New("all renderer commands failed")
	ErrEmptyOutput   = errors.New("renderer produced no image")
	ErrRenderTimeout = errors.New("renderer timed out")
)

// Result is the HTML for one diagram.
type Result struct {
	HTML string

	// Fallback is true when HTML came from RenderFallback.
	Fallback bool

	// Notice explains why the image could not be produced. Empty when the
	// image was rendered or rendering was disabled.
	Notice string
}

// Renderer converts diagram source to HTML. It holds no mutable state and
// is safe for concurrent use.
type Renderer struct {
	runner     CommandRunner
	candidates []Candidate
	settings   Settings
	disabled   bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRunner sets the command runner.
func WithRunner(runner CommandRunner) Option {
	return func(r *Renderer) {
		r.runner = runner
	}
}

// WithCandidates replaces the candidate list.
func WithCandidates(candidates []Candidate) Option {
	return func(r *Renderer) {
		r.candidates = append([]Candidate(nil), candidates...)
	}
}

// WithSettings replaces the render settings.
func WithSettings(s Settings) Option {
	return func(r *Renderer) {
		r.settings = s
	}
}

// WithDisabled skips the external renderer and always uses the fallback.
func WithDisabled(disabled bool) Option {
	return func(r *Renderer) {
		r.disabled = disabled
	}
}

// New creates a Renderer with the platform's default candidates.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		runner:     ExecRunner{},
		candidates: DefaultCandidates(runtime.GOOS),
		settings:   DefaultSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates returns a copy of the configured candidate list.
func (r *Renderer) Candidates() []Candidate {
	return append([]Candidate(nil), r.candidates...)
}

// Render returns the diagram as an inline image, or the fallback layout
// with a notice when rasterization fails. It always returns usable HTML.
func (r *Renderer) Render(ctx context.Context, source string) Result {
	if r.disabled {
		return Result{HTML: RenderFallback(source), Fallback: true}
	}

	png, err := r.rasterize(ctx, source)
	if err != nil {
		return Result{
			HTML:     RenderFallback(source),
			Fallback: true,
			Notice:   notice(err),
		}
	}

	return Result{HTML: ImageHTML(png)}
}

func notice(err error) string {
	msg := "could not convert diagram to image: " + err.Error() + "; using HTML/CSS layout"
	if errors.Is(err, ErrRenderTimeout) {
		msg += hints.ForRendererTimeout()
	}
	return msg + hints.ForRendererUnavailable()
}

// rasterize tries each candidate in order and returns the first non-empty
// PNG. Temporary files are removed on every path.
func (r *Renderer) rasterize(ctx context.Context, source string) ([]byte, error) {
	if len(r.candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, cleanup, err := fileutil.WriteTempFile(source, "mmd")
	if err != nil {
		return nil, fmt.Errorf("writing diagram source: %w", err)
	}
	defer cleanup()

	out := fileutil.ReplaceExt(in, ".png")
	defer func() { _ = os.Remove(out) }()

	var failures []string
	var timedOut bool
	for _, c := range r.candidates {
		err := r.attempt(ctx, c, in, out)
		if err == nil {
			data, readErr := os.ReadFile(out) // #nosec G304 -- path derived from our own temp file
			if readErr == nil && len(data) > 0 {
				return data, nil
			}
			err = ErrEmptyOutput
		}

		// The caller gave up; remaining candidates would fail the same way.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if errors.Is(err, ErrRenderTimeout) {
			timedOut = true
		}
		failures = append(failures, c.Name+": "+err.Error())
	}

	err = fmt.Errorf("%w (%s)", ErrRenderFailed, strings.Join(failures, "; "))
	if timedOut {
		err = fmt.Errorf("%w: %w", ErrRenderTimeout, err)
	}
	return nil, err
}

// attempt runs one candidate under the per-attempt timeout. A nil error
// means the command exited cleanly and left a non-empty output file.
func (r *Renderer) attempt(ctx context.Context, c Candidate, in, out string) error {
	_ = os.Remove(out)

	attemptCtx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	stderr, err := r.runner.Run(attemptCtx, c.Name, c.command(r.settings, in, out)...)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("%w after %v", ErrRenderTimeout, r.settings.Timeout)
		}
		if msg := firstLine(stderr); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}

	if !fileutil.NonEmptyFile(out) {
		return ErrEmptyOutput
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// imageStyle and zoomToggle style the rendered diagram. Clicking the image
// toggles between fit-to-width and original size.
const (
	imageStyle = "max-width: 100%; height: auto; margin: 20px auto; display: block; " +
		"border: 1px solid #e0e0e0; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); " +
		"background: white; padding: 20px;"
	zoomToggle = "this.style.maxWidth = this.style.maxWidth === '100%' ? 'none' : '100%'; " +
		"this.style.cursor = this.style.cursor === 'zoom-out' ? 'zoom-in' : 'zoom-out';"
)

// ImageHTML wraps PNG bytes in the zoomable diagram container.
func ImageHTML(png []byte) string {
	var b strings.Builder
	b.Grow(base64.StdEncoding.EncodedLen(len(png)) + 512)
	b.WriteString(`<div class="mermaid-container"><img src="data:image/png;base64,`)
	b.WriteString(base64.StdEncoding.EncodeToString(png))
	b.WriteString(`" alt="Mermaid Diagram" style="`)
	b.WriteString(imageStyle)
	b.WriteString(`" onclick="`)
	b.WriteString(zoomToggle)
	b.WriteString(`" title="Click to zoom"></div>`)
	return b.String()
}
