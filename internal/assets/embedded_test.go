package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default style carries layout classes", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		for _, selector := range []string{
			".flowchart", ".mermaid-container", ".flow-container", ".phase-column",
			".box.decided", ".box.pending", ".box.future", ".box.neutral",
			".horizontal-arrow", ".vertical-arrow", ".dotted-line", "table",
		} {
			if !strings.Contains(css, selector) {
				t.Errorf("default style missing %q", selector)
			}
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tmpl, err := loader.LoadTemplate(DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "{{.Title}}", "{{.CSS}}", "{{.Body}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("document template missing %q", want)
		}
	}

	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoader_Styles(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"dark", "default"}, NewEmbeddedLoader().Styles()); diff != "" {
		t.Errorf("Styles() mismatch (-want +got):\n%s", diff)
	}
}
