package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	flag "github.com/spf13/pflag"
)

// ErrInvalidTimeout reports a bad --timeout, MD2HTML_TIMEOUT or config value.
var ErrInvalidTimeout = errors.New("invalid timeout")

// commands lists the recognized subcommands.
var commands = map[string]bool{
	"convert": true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether arg names a subcommand (case sensitive).
func isCommand(arg string) bool {
	return commands[arg]
}

// looksLikeMarkdown reports whether arg is a markdown file path, which
// selects the `md2html <file.md> [output]` shorthand.
func looksLikeMarkdown(arg string) bool {
	return fileutil.IsMarkdown(arg)
}

// runMain dispatches args[1:] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	switch {
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	case cmd == "help":
		return runHelp(rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "convert":
		return runConvertCmd(rest, env)
	case looksLikeMarkdown(cmd):
		return runConvertCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		fmt.Fprintln(env.Stderr, "Run 'md2html help' for usage.")
		return ExitUsage
	}
}

// runConvertCmd parses convert flags, runs the conversion under a
// signal-aware context and maps the outcome to an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'md2html help convert' for usage.")
		return ExitUsage
	}

	ctx, cancel := notifyContext(context.Background())
	defer cancel()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveTimeoutWithEnv picks the per-attempt render timeout.
// Priority: flag > env > config. Zero means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}
