// Package scripts implements the script build step: optional ESLint run,
// JavaScript bundling via the esbuild CLI, optional minified sibling and
// destination copying.
package scripts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/errors"
	"git.home.luguber.info/inful/packr/internal/execx"
	"git.home.luguber.info/inful/packr/internal/fsutil"
	"git.home.luguber.info/inful/packr/internal/lint"
	"git.home.luguber.info/inful/packr/internal/paths"
)

// Step runs the script build. The lint summary is returned as a value so
// the caller decides where it renders; the step itself holds no state
// across invocations.
type Step struct {
	Runner execx.Runner
}

// Build bundles the configured JS entry file. In watch mode the esbuild
// subprocess keeps running and rebuilding; the call blocks until the
// context is cancelled, and the minified sibling and destination copies
// are never reached (the unminified invocation does not return).
func (s *Step) Build(ctx context.Context, cfg *config.Config, configDir string, watch bool) (*lint.Summary, error) {
	slog.Info("Building scripts", "input", cfg.JsInput)

	input := filepath.Join(configDir, cfg.JsInput)
	output := filepath.Join(configDir, cfg.JsOutput)
	summary := lint.NewSummary()

	if !fsutil.Exists(input) {
		abs, _ := filepath.Abs(input)
		return summary, errors.Newf(errors.KindInputNotFound, "JavaScript input file not found: %s", abs)
	}

	if cfg.ESLint {
		if err := lint.Run(ctx, s.Runner, cfg, configDir, input, summary); err != nil {
			return summary, err
		}
	}

	args := bundleArgs(cfg, input, output, watch, false)
	slog.Debug("Running esbuild", "format", cfg.Format, "watch", watch)

	if watch {
		err := s.Runner.Stream(ctx, execx.Cmd{Name: "esbuild", Args: args})
		if err != nil {
			if ctx.Err() != nil {
				// Operator interrupt ended the watch; not a build failure.
				return summary, nil
			}
			if execx.IsExit(err) {
				return summary, errors.Wrap(err, errors.KindBundle, "esbuild failed")
			}
			return summary, errors.Wrap(err, errors.KindBundleSpawn, "failed to run esbuild")
		}
		return summary, nil
	}

	if err := s.bundle(ctx, args); err != nil {
		return summary, err
	}
	slog.Debug("JavaScript written", "path", output)

	minOutput := ""
	if cfg.Minify {
		minOutput = paths.MinSibling(output)
		// The watch flag is deliberately absent from the minified
		// invocation.
		if err := s.bundle(ctx, bundleArgs(cfg, input, minOutput, false, true)); err != nil {
			return summary, err
		}
		slog.Debug("Minified JavaScript written", "path", minOutput)
	}

	if cfg.JsDestination != "" {
		if err := copyToDestination(cfg, configDir, output, minOutput); err != nil {
			return summary, err
		}
	}

	slog.Info("Scripts built successfully")
	return summary, nil
}

// bundle runs one captured esbuild invocation.
func (s *Step) bundle(ctx context.Context, args []string) error {
	res, err := s.Runner.Run(ctx, execx.Cmd{Name: "esbuild", Args: args})
	if err != nil {
		return errors.Wrap(err, errors.KindBundleSpawn, "failed to run esbuild")
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.KindBundle, "esbuild failed:\n%s", res.Stderr)
	}
	return nil
}

// bundleArgs assembles the esbuild argument vector per the fixed CLI
// contract.
func bundleArgs(cfg *config.Config, input, outfile string, watch, minified bool) []string {
	args := []string{input, "--bundle"}
	if minified {
		args = append(args, "--minify", "--minify-syntax", "--minify-whitespace")
	}
	args = append(args,
		"--target="+cfg.Target,
		"--outfile="+outfile,
		"--legal-comments=none",
		"--format="+cfg.Format,
	)
	if cfg.Sourcemap {
		args = append(args, "--sourcemap")
	}
	if watch {
		args = append(args, "--watch")
	}
	return args
}

// copyToDestination mirrors the bundler's outputs into js_destination.
// Unlike the style step, the minified file and sourcemaps were produced
// by an external process, so their presence is checked before copying.
func copyToDestination(cfg *config.Config, configDir, output, minOutput string) error {
	destDir := filepath.Join(configDir, cfg.JsDestination)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindDestinationCopy, "failed to create JS destination folder")
	}

	copies := []string{output}
	if minOutput != "" && fsutil.Exists(minOutput) {
		copies = append(copies, minOutput)
	}
	if cfg.Sourcemap {
		maps := []string{paths.MapSibling(output)}
		if minOutput != "" {
			maps = append(maps, paths.MapSibling(minOutput))
		}
		for _, m := range maps {
			if fsutil.Exists(m) {
				copies = append(copies, m)
			}
		}
	}

	for _, src := range copies {
		dst := paths.InDir(destDir, src)
		if err := fsutil.CopyFile(src, dst); err != nil {
			return errors.Wrap(err, errors.KindDestinationCopy, "failed to copy JS to destination")
		}
		slog.Debug("JS copied", "path", dst)
	}
	return nil
}
