package diagram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MermaidCLIPackage is the npm package npx runs.
const MermaidCLIPackage = "@mermaid-js/mermaid-cli"

// Candidate is one way of invoking the renderer. The full command line is
// Name, Args, the render arguments, then Extra.
type Candidate struct {
	Name  string   `yaml:"name"`
	Args  []string `yaml:"args,omitempty"`
	Extra []string `yaml:"extra,omitempty"`
}

// String returns the candidate command line without render arguments.
func (c Candidate) String() string {
	parts := make([]string, 0, 1+len(c.Args)+len(c.Extra))
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	parts = append(parts, c.Extra...)
	return strings.Join(parts, " ")
}

// ErrInvalidCandidate indicates a candidate without an executable name.
var ErrInvalidCandidate = errors.New("invalid renderer command")

// Validate checks that the candidate names an executable.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCandidate)
	}
	return nil
}

// DefaultCandidates returns the candidate list for goos, tried in order.
// Windows needs the .cmd shims, and npx.cmd reads a config file unless
// told otherwise.
func DefaultCandidates(goos string) []Candidate {
	if goos == "windows" {
		return []Candidate{
			{Name: "npx.cmd", Args: []string{MermaidCLIPackage}, Extra: []string{"--configFile", "null"}},
			{Name: "npx", Args: []string{MermaidCLIPackage}},
			{Name: "mmdc.cmd"},
			{Name: "mmdc"},
		}
	}
	return []Candidate{
		{Name: "npx", Args: []string{MermaidCLIPackage}},
		{Name: "mmdc"},
	}
}

// Default render settings.
const (
	DefaultTheme      = "default"
	DefaultBackground = "white"
	DefaultScale      = 5
	DefaultWidth      = 1800
	DefaultHeight     = 1200
	DefaultTimeout    = 30 * time.Second
)

// Settings are passed to every candidate invocation.
type Settings struct {
	Theme      string
	Background string
	Scale      int
	Width      int
	Height     int

	// Timeout bounds a single candidate attempt.
	Timeout time.Duration
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		Theme:      DefaultTheme,
		Background: DefaultBackground,
		Scale:      DefaultScale,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Timeout:    DefaultTimeout,
	}
}

// ErrInvalidSettings indicates out-of-range render settings.
var ErrInvalidSettings = errors.New("invalid diagram settings")

// Validate checks that every setting is usable.
func (s Settings) Validate() error {
	switch {
	case s.Theme == "":
		return fmt.Errorf("%w: theme is empty", ErrInvalidSettings)
	case s.Background == "":
		return fmt.Errorf("%w: background is empty", ErrInvalidSettings)
	case s.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalidSettings, s.Scale)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidSettings, s.Timeout)
	}
	return nil
}

// args builds the render arguments for one input/output pair.
func (s Settings) args(in, out string) []string {
	return []string{
		"-i", in,
		"-o", out,
		"-t", s.Theme,
		"-b", s.Background,
		"--scale", strconv.Itoa(s.Scale),
		"--width", strconv.Itoa(s.Width),
		"--height", strconv.Itoa(s.Height),
	}
}

// command returns the full argument list for c.
func (c Candidate) command(s Settings, in, out string) []string {
	args := make([]string, 0, len(c.Args)+14+len(c.Extra))
	args = append(args, c.Args...)
	args = append(args, s.args(in, out)...)
	return append(args, c.Extra...)
}
