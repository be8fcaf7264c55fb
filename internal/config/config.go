// Package config loads the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/diagram"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxStyleLength      = 4096 // name or path
	MaxThemeLength      = 50   // "default", "forest", "dark", "neutral"
	MaxBackgroundLength = 50   // "white", "transparent", "#f0f0f0"
	MaxCommands         = 16
)

// AppDir is the directory under the user config dir searched for configs.
const AppDir = "md2html"

// Config holds all configuration for document conversion.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Style   string        `yaml:"style"`  // style name or path to a .css file (empty = default)
	Engine  string        `yaml:"engine"` // "builtin" or "goldmark" (empty = builtin)
	Assets  AssetsConfig  `yaml:"assets"`
	Diagram DiagramConfig `yaml:"diagram"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	EmbedImages *bool  `yaml:"embedImages"` // nil = true
}

// EmbedImagesEnabled reports whether local images are inlined.
func (a AssetsConfig) EmbedImagesEnabled() bool {
	return a.EmbedImages == nil || *a.EmbedImages
}

// DiagramConfig defines diagram rendering options. Zero values select the
// renderer defaults.
type DiagramConfig struct {
	Enabled    *bool               `yaml:"enabled"` // nil = true
	Timeout    string              `yaml:"timeout"` // Go duration per attempt, e.g. "45s"
	Theme      string              `yaml:"theme"`
	Background string              `yaml:"background"`
	Scale      int                 `yaml:"scale"`
	Width      int                 `yaml:"width"`
	Height     int                 `yaml:"height"`
	Commands   []diagram.Candidate `yaml:"commands"` // replaces the platform defaults
}

// RenderingEnabled reports whether the external renderer is used.
func (d DiagramConfig) RenderingEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// Settings merges the configured values over diagram.DefaultSettings.
func (d DiagramConfig) Settings() (diagram.Settings, error) {
	s := diagram.DefaultSettings()

	if d.Timeout != "" {
		timeout, err := time.ParseDuration(d.Timeout)
		if err != nil {
			return s, fmt.Errorf("%w: diagram.timeout: %v", ErrInvalidValue, err)
		}
		s.Timeout = timeout
	}
	if d.Theme != "" {
		s.Theme = d.Theme
	}
	if d.Background != "" {
		s.Background = d.Background
	}
	if d.Scale != 0 {
		s.Scale = d.Scale
	}
	if d.Width != 0 {
		s.Width = d.Width
	}
	if d.Height != 0 {
		s.Height = d.Height
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: diagram: %v", ErrInvalidValue, err)
	}
	return s, nil
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Engine != "" && !slices.Contains(pipeline.Engines(), c.Engine) {
		return fmt.Errorf("%w: engine: %q (must be one of %s)",
			ErrInvalidValue, c.Engine, strings.Join(pipeline.Engines(), ", "))
	}

	if err := validateFieldLength("diagram.theme", c.Diagram.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("diagram.background", c.Diagram.Background, MaxBackgroundLength); err != nil {
		return err
	}
	if c.Diagram.Scale < 0 || c.Diagram.Width < 0 || c.Diagram.Height < 0 {
		return fmt.Errorf("%w: diagram: scale, width and height must not be negative", ErrInvalidValue)
	}
	if _, err := c.Diagram.Settings(); err != nil {
		return err
	}

	if len(c.Diagram.Commands) > MaxCommands {
		return fmt.Errorf("%w: diagram.commands: %d entries, max %d", ErrInvalidValue, len(c.Diagram.Commands), MaxCommands)
	}
	for i, cmd := range c.Diagram.Commands {
		if err := cmd.Validate(); err != nil {
			return fmt.Errorf("diagram.commands[%d]: %w", i, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the paths LoadConfig tries for a config name, in
// order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Name: name, Tried: paths}
}

// NotFoundError lists where a named config was looked for.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
