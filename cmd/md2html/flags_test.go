package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseConvertFlags([]string{
			"doc.md",
			"-o", "out.html",
			"-c", "work",
			"-w", "3",
			"-t", "45s",
			"--engine", "goldmark",
			"--style", "dark",
			"--css", "extra.css",
			"--asset-path", "./assets",
			"--title", "Plan",
			"--no-render",
			"--no-embed-images",
			"-q",
			"-v",
		})
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}

		want := convertFlags{
			common:  commonFlags{config: "work", quiet: true, verbose: true},
			output:  "out.html",
			workers: 3,
			title:   "Plan",
			assets:  assetFlags{style: "dark", css: "extra.css", assetPath: "./assets", noEmbed: true},
			render:  renderFlags{engine: "goldmark", timeout: "45s", noRender: true},
		}
		opts := cmp.AllowUnexported(convertFlags{}, commonFlags{}, assetFlags{}, renderFlags{})
		if diff := cmp.Diff(want, *f, opts); diff != "" {
			t.Errorf("flags mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"doc.md"}, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("positional output", func(t *testing.T) {
		t.Parallel()

		_, args, err := parseConvertFlags([]string{"doc.md", "site/"})
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}
		if len(args) != 2 || args[1] != "site/" {
			t.Errorf("args = %v, want [doc.md site/]", args)
		}
	})

	t.Run("unknown flag wraps ErrUsage", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"--page-size", "a4"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("help returns flag.ErrHelp", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"-h"})
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})
}
