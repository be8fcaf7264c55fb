package assets

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles/default.css", "/* overridden */")
	writeAsset(t, base, "styles/brand.css", "/* brand */")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "/* overridden */" {
			t.Errorf("LoadStyle(default) = %q, want custom content", got)
		}
	})

	t.Run("custom-only style", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("brand")
		if err != nil || got != "/* brand */" {
			t.Errorf("LoadStyle(brand) = (%q, %v)", got, err)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		want, _ := NewEmbeddedLoader().LoadStyle("dark")
		got, err := resolver.LoadStyle("dark")
		if err != nil || got != want {
			t.Errorf("LoadStyle(dark) should come from embedded assets, err = %v", err)
		}
	})

	t.Run("template falls back to embedded", func(t *testing.T) {
		t.Parallel()

		want, _ := NewEmbeddedLoader().LoadTemplate(DocumentTemplateName)
		got, err := resolver.LoadTemplate(DocumentTemplateName)
		if err != nil || got != want {
			t.Errorf("LoadTemplate() should come from embedded assets, err = %v", err)
		}
	})

	t.Run("validation error does not fall back", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nowhere")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("styles merged", func(t *testing.T) {
		t.Parallel()

		if diff := cmp.Diff([]string{"brand", "dark", "default"}, resolver.Styles()); diff != "" {
			t.Errorf("Styles() mismatch (-want +got):\n%s", diff)
		}
	})
}
