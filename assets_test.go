package md2html

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/assets"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultStyle, err)
	}
	if css == "" {
		t.Error("LoadStyle returned empty CSS for default style")
	}

	tmpl, err := loader.LoadTemplate(DocumentTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DocumentTemplate, err)
	}
	if !strings.Contains(tmpl, "{{.Body}}") {
		t.Error("document template should reference .Body")
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/path/to/assets")
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_CustomOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	for _, sub := range []string{"styles", "templates"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	customCSS := "/* custom override */ body { color: red; }"
	if err := os.WriteFile(filepath.Join(tmpDir, "styles", "default.css"), []byte(customCSS), 0o644); err != nil {
		t.Fatal(err)
	}
	customTmpl := "<html><head><title>{{.Title}}</title><style>{{.CSS}}</style></head><body class=\"custom\">{{.Body}}</body></html>"
	if err := os.WriteFile(filepath.Join(tmpDir, "templates", "document.html"), []byte(customTmpl), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetLoader(%q) error = %v", tmpDir, err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil || css != customCSS {
		t.Errorf("LoadStyle = %q, %v; want custom CSS", css, err)
	}

	// The converter picks up both overrides.
	conv, err := NewConverter(WithAssetLoader(loader), WithDiagramRendering(false))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: "hi"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	doc := string(res.HTML)
	if !strings.Contains(doc, `<body class="custom">`) || !strings.Contains(doc, "custom override") {
		t.Errorf("custom assets not applied:\n%s", doc)
	}
}

func TestNewAssetLoader_EmptyDirFallsBack(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle(DefaultStyle); err != nil {
		t.Errorf("LoadStyle with fallback error = %v", err)
	}
	if _, err := loader.LoadTemplate(DocumentTemplate); err != nil {
		t.Errorf("LoadTemplate with fallback error = %v", err)
	}
}

func TestAssetLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader error = %v", err)
	}

	if _, err := loader.LoadStyle("nonexistent-style"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("../escape"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestAvailableStyles(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	got := AvailableStyles(loader)
	if len(got) == 0 || !strings.Contains(strings.Join(got, ","), DefaultStyle) {
		t.Errorf("AvailableStyles() = %v, want to include %q", got, DefaultStyle)
	}

	var bare AssetLoader = stubLoader{}
	if got := AvailableStyles(bare); got != nil {
		t.Errorf("AvailableStyles(stub) = %v, want nil", got)
	}
}

type stubLoader struct{}

func (stubLoader) LoadStyle(string) (string, error)    { return "", nil }
func (stubLoader) LoadTemplate(string) (string, error) { return "", nil }

func TestWrappedAssetError(t *testing.T) {
	t.Parallel()

	original := assets.ErrStyleNotFound
	err := convertAssetError(original)

	if err.Error() != original.Error() {
		t.Errorf("Error() = %q, want original message %q", err.Error(), original.Error())
	}
	if !errors.Is(err, ErrStyleNotFound) {
		t.Error("should unwrap to the public sentinel")
	}
	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}

	other := errors.New("unrelated")
	if convertAssetError(other) != other {
		t.Error("unknown errors pass through unchanged")
	}
}

func TestDefaultConstants(t *testing.T) {
	t.Parallel()

	if DefaultStyle != "default" {
		t.Errorf("DefaultStyle = %q, want \"default\"", DefaultStyle)
	}
	if DocumentTemplate != "document" {
		t.Errorf("DocumentTemplate = %q, want \"document\"", DocumentTemplate)
	}
}
