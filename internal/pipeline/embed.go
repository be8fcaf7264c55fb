package pipeline

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// MaxEmbeddedImageSize caps a single embedded image at 10MB. Larger files
// keep their original src.
var MaxEmbeddedImageSize int64 = 10 << 20

// EmbedLocalImages replaces relative <img src> paths with data: URIs so
// the document does not depend on files next to it. Paths are resolved
// against sourceDir; anything that escapes it, does not exist, or is too
// large is left untouched. If sourceDir is empty, the HTML is returned
// unchanged.
//
// Only img start tags are rewritten. Every other token is copied through
// byte for byte, so markup produced by the rewriter is never normalized.
//
// Returns the rewritten HTML and the number of images embedded.
func EmbedLocalImages(htmlContent, sourceDir string) (string, int, error) {
	if sourceDir == "" || !strings.Contains(htmlContent, "<img") {
		return htmlContent, 0, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", 0, err
	}

	var out strings.Builder
	out.Grow(len(htmlContent))
	embedded := 0

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return "", 0, z.Err()
		}

		raw := z.Raw()
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.Write(raw)
			continue
		}

		// Raw is only valid until the next call to Next; Token copies.
		rawCopy := string(raw)
		tok := z.Token()
		if tok.Data != "img" {
			out.WriteString(rawCopy)
			continue
		}

		if !embedSrc(&tok, absSourceDir) {
			out.WriteString(rawCopy)
			continue
		}
		embedded++
		out.WriteString(tok.String())
	}

	return out.String(), embedded, nil
}

// embedSrc rewrites tok's src attribute in place. Returns false when the
// tag is left unchanged.
func embedSrc(tok *html.Token, sourceDir string) bool {
	for i, attr := range tok.Attr {
		if attr.Key != "src" || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(sourceDir, filepath.FromSlash(attr.Val))
		if !isPathUnderDir(absPath, sourceDir) {
			return false
		}

		uri, ok := dataURI(absPath)
		if !ok {
			return false
		}
		tok.Attr[i].Val = uri
		return true
	}
	return false
}

func dataURI(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() > MaxEmbeddedImageSize {
		return "", false
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is confined to the source directory
	if err != nil {
		return "", false
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", false
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(mediaType) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(mediaType)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String(), true
}

// isRelativePath reports whether path refers to a file relative to the
// document.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// URLs, anchors and protocol-relative references
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//", "#"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
