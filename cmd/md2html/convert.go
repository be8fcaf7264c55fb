package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	// Load configuration: --config, then MD2HTML_CONFIG
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Env overrides config, CLI flags override both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeoutWithEnv(flags.render.timeout, envCfg.Timeout, cfg.Diagram.Timeout)
	if err != nil {
		return err
	}

	inputPath, output, err := resolveInputOutput(positionalArgs, flags.output, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	css, err := readCSSFile(flags.assets.css)
	if err != nil {
		return err
	}

	opts, err := buildConverterOptions(cfg, timeout)
	if err != nil {
		return err
	}
	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return converterInitError(err, cfg)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = md2html.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Engine: %s, workers: %d, files: %d\n", conv.Engine(), workers, len(files))
	}

	results := convertBatch(ctx, conv, workers, files, &conversionParams{
		css:   css,
		title: flags.title,
	})

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%d conversion(s) failed", summary.Failed)
}

// loadConfig loads the named config, preferring the flag over the
// environment. No name yields the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nf.Tried))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags onto cfg (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.noEmbed {
		disabled := false
		cfg.Assets.EmbedImages = &disabled
	}
	if flags.render.engine != "" {
		cfg.Engine = flags.render.engine
	}
	if flags.render.noRender {
		disabled := false
		cfg.Diagram.Enabled = &disabled
	}
}

// resolveInputOutput returns the input path and the output target.
// Output comes from -o, a second positional argument, or
// output.defaultDir, in that order.
func resolveInputOutput(args []string, flagOutput string, cfg *config.Config) (string, string, error) {
	switch {
	case len(args) == 0:
		return "", "", ErrNoInput
	case len(args) > 2:
		return "", "", fmt.Errorf("%w: too many arguments: %v", ErrUsage, args[2:])
	case len(args) == 2 && flagOutput != "":
		return "", "", fmt.Errorf("%w: output given both as argument and with -o", ErrUsage)
	}

	output := flagOutput
	if len(args) == 2 {
		output = args[1]
	}
	if output == "" {
		output = cfg.Output.DefaultDir
	}
	return args[0], output, nil
}

// readCSSFile reads the --css file. An empty path yields no extra CSS.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildConverterOptions translates the merged config into converter options.
func buildConverterOptions(cfg *config.Config, timeout time.Duration) ([]md2html.Option, error) {
	settings, err := cfg.Diagram.Settings()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		settings.Timeout = timeout
	}

	opts := []md2html.Option{
		md2html.WithStyle(cfg.Style),
		md2html.WithAssetPath(cfg.Assets.BasePath),
		md2html.WithImageEmbedding(cfg.Assets.EmbedImagesEnabled()),
		md2html.WithDiagramRendering(cfg.Diagram.RenderingEnabled()),
		md2html.WithDiagramSettings(md2html.DiagramSettings{
			Theme:      settings.Theme,
			Background: settings.Background,
			Scale:      settings.Scale,
			Width:      settings.Width,
			Height:     settings.Height,
			Timeout:    settings.Timeout,
		}),
	}
	if cfg.Engine != "" {
		opts = append(opts, md2html.WithEngine(cfg.Engine))
	}
	if len(cfg.Diagram.Commands) > 0 {
		cmds := make([]md2html.DiagramCommand, len(cfg.Diagram.Commands))
		for i, c := range cfg.Diagram.Commands {
			cmds[i] = md2html.DiagramCommand(c)
		}
		opts = append(opts, md2html.WithDiagramCommands(cmds...))
	}
	return opts, nil
}

// converterInitError adds a hint to converter construction errors the
// user can fix from the command line.
func converterInitError(err error, cfg *config.Config) error {
	switch {
	case errors.Is(err, md2html.ErrUnknownEngine):
		return fmt.Errorf("%w%s", err, hints.ForEngine(pipeline.Engines()))
	case errors.Is(err, md2html.ErrStyleNotFound):
		var available []string
		if loader, lerr := md2html.NewAssetLoader(cfg.Assets.BasePath); lerr == nil {
			available = md2html.AvailableStyles(loader)
		}
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(available))
	default:
		return err
	}
}
