// Package hints provides actionable hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to messages.
package hints

import (
	"strings"
)

// InstallRenderer is the command that makes diagram rasterization available.
const InstallRenderer = "npm install -g @mermaid-js/mermaid-cli"

// ForRendererUnavailable returns hints for a diagram that fell back to the
// HTML/CSS layout because no renderer candidate succeeded.
func ForRendererUnavailable() string {
	return format("to enable image conversion, install: " + InstallRenderer)
}

// ForRendererTimeout returns a hint about raising the per-attempt timeout.
func ForRendererTimeout() string {
	return format("for large diagrams, raise --timeout (first npx run downloads Chromium)")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one of searchedPaths is the user config
// directory, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/md2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEngine lists the accepted --engine values.
func ForEngine(engines []string) string {
	return format("valid engines: " + strings.Join(engines, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
