package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Checkbox glyphs substituted for "[ ]" and "[x]" list markers.
const (
	UncheckedGlyph = "☐"
	CheckedGlyph   = "☑"
)

// Placeholders use Unicode Private Use Area characters so they cannot
// collide with Markdown syntax. A fenced code block becomes a block token
// until the code-blocks pass, and its body stays a body token until the
// final restore-code pass.
const (
	blockTokenStart = "\uE000"
	blockTokenEnd   = "\uE001"
	bodyTokenStart  = "\uE002"
	bodyTokenEnd    = "\uE003"
)

var (
	fencedCode   = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)\\n```")
	blockToken   = regexp.MustCompile(blockTokenStart + `(\d+)` + blockTokenEnd)
	bodyToken    = regexp.MustCompile(bodyTokenStart + `(\d+)` + bodyTokenEnd)
	headingLine  = regexp.MustCompile(`(?m)^(#{1,5}) (.*)$`)
	boldSpan     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan   = regexp.MustCompile(`\*(.*?)\*`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	bulletLine   = regexp.MustCompile(`(?m)^- (.*)$`)
	numberedLine = regexp.MustCompile(`(?m)^\d+\. (.*)$`)

	uncheckedItem  = regexp.MustCompile(`<li>\[ \] `)
	checkedItem    = regexp.MustCompile(`<li>\[x\] `)
	uncheckedLoose = regexp.MustCompile(`- \[ \] (.*)`)
	checkedLoose   = regexp.MustCompile(`- \[x\] (.*)`)

	listRun        = regexp.MustCompile(`(?s)<li>.*?</li>(?:\s*<li>.*?</li>)*`)
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
)

// Pass is one step of the rewrite sequence.
type Pass struct {
	Name  string
	Apply func(string) string
}

// Rewriter converts a text segment to HTML by applying a fixed sequence of
// pattern rewrites. It supports a small Markdown subset: pipe tables,
// headings 1-5, bold, italic, fenced and inline code, "-" and "N." lists,
// checkboxes, and blank-line paragraphs. Anything else passes through.
type Rewriter struct{}

// NewRewriter creates a Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// RenderText implements TextRenderer. It only fails when ctx is done.
func (r *Rewriter) RenderText(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Rewrite(text), nil
}

// Rewrite applies every pass to text in order.
func Rewrite(text string) string {
	for _, p := range passes(&codeVault{}) {
		text = p.Apply(text)
	}
	return text
}

// passes builds the ordered sequence. Order matters; each entry notes what
// it assumes about its input.
func passes(v *codeVault) []Pass {
	return []Pass{
		// Fenced code content is hidden from everything until restore-code.
		{"protect-code", v.protect},
		// Runs before anything else that could read pipes or dashes.
		{"tables", ConvertTables},
		// Line-anchored; table rows are already markup.
		{"headings", convertHeadings},
		// Must precede italic so "**" is not read as two "*".
		{"bold", replacer(boldSpan, "<strong>${1}</strong>")},
		// Assumes every "**" pair is gone.
		{"italic", replacer(italicSpan, "<em>${1}</em>")},
		// Expects block tokens from protect-code.
		{"code-blocks", replacer(blockToken, "<pre><code>"+bodyTokenStart+"${1}"+bodyTokenEnd+"</code></pre>")},
		{"inline-code", replacer(inlineCode, "<code>${1}</code>")},
		{"list-items", convertListItems},
		// Sees "<li>[ ] " produced by list-items, plus any leftover "- [ ] ".
		{"checkboxes", convertCheckboxes},
		// Assumes every list line is already an <li>.
		{"list-wrap", wrapLists},
		{"paragraphs", replacer(paragraphBreak, "\n</p>\n<p>\n")},
		{"paragraph-wrap", wrapParagraph},
		{"restore-code", v.restore},
	}
}

func replacer(re *regexp.Regexp, repl string) func(string) string {
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

func convertHeadings(s string) string {
	return headingLine.ReplaceAllStringFunc(s, func(m string) string {
		sub := headingLine.FindStringSubmatch(m)
		level := strconv.Itoa(len(sub[1]))
		return "<h" + level + ">" + sub[2] + "</h" + level + ">"
	})
}

func convertListItems(s string) string {
	s = bulletLine.ReplaceAllString(s, "<li>${1}</li>")
	return numberedLine.ReplaceAllString(s, "<li>${1}</li>")
}

// convertCheckboxes matches lowercase "x" only; "[X]" stays literal.
func convertCheckboxes(s string) string {
	s = uncheckedItem.ReplaceAllString(s, "<li>"+UncheckedGlyph+" ")
	s = checkedItem.ReplaceAllString(s, "<li>"+CheckedGlyph+" ")
	s = uncheckedLoose.ReplaceAllString(s, "<li>"+UncheckedGlyph+" ${1}</li>")
	return checkedLoose.ReplaceAllString(s, "<li>"+CheckedGlyph+" ${1}</li>")
}

// wrapLists wraps each run of consecutive <li> items in a single <ul>.
// A run already opened by <ul> is left alone, which keeps the pass stable
// on its own output.
func wrapLists(s string) string {
	locs := listRun.FindAllStringIndex(s, -1)
	if locs == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(locs)*len("<ul></ul>"))
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		run := s[loc[0]:loc[1]]
		if strings.HasSuffix(strings.TrimRightFunc(s[:loc[0]], unicode.IsSpace), "<ul>") {
			b.WriteString(run)
		} else {
			b.WriteString("<ul>" + run + "</ul>")
		}
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func wrapParagraph(s string) string {
	if strings.HasPrefix(strings.TrimSpace(s), "<") {
		return s
	}
	return "<p>\n" + s + "\n</p>"
}

// codeVault holds fenced code bodies for the duration of one Rewrite call.
type codeVault struct {
	bodies []string
}

func (v *codeVault) protect(s string) string {
	return fencedCode.ReplaceAllStringFunc(s, func(m string) string {
		sub := fencedCode.FindStringSubmatch(m)
		v.bodies = append(v.bodies, sub[2])
		return blockTokenStart + strconv.Itoa(len(v.bodies)-1) + blockTokenEnd
	})
}

// restore swaps body tokens back for the original code. Tokens that did not
// come from protect (stray private-use characters in the input) are kept.
func (v *codeVault) restore(s string) string {
	return bodyToken.ReplaceAllStringFunc(s, func(m string) string {
		idx, err := strconv.Atoi(bodyToken.FindStringSubmatch(m)[1])
		if err != nil || idx < 0 || idx >= len(v.bodies) {
			return m
		}
		return v.bodies[idx]
	})
}
