// Package pipeline orchestrates one packr build: styles, then scripts,
// strictly sequential, then the lint summary. In watch mode it also keeps
// styles fresh while esbuild's own watch loop owns the scripts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/execx"
	"git.home.luguber.info/inful/packr/internal/scripts"
	"git.home.luguber.info/inful/packr/internal/styles"
)

// Pipeline wires the two build steps to their external collaborators.
type Pipeline struct {
	Compiler styles.Compiler
	Runner   execx.Runner
	// Out receives the rendered lint summary (stdout in production).
	Out io.Writer
}

// New returns a pipeline using the given SCSS compiler and process runner.
func New(compiler styles.Compiler, runner execx.Runner, out io.Writer) *Pipeline {
	return &Pipeline{Compiler: compiler, Runner: runner, Out: out}
}

// Run executes one build. In watch mode the call blocks until ctx is
// cancelled: esbuild keeps rebuilding scripts and the SCSS watcher keeps
// rebuilding styles.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config, configDir string, watch bool) error {
	runID := uuid.NewString()[:8]
	log := slog.With("run_id", runID)
	log.Info("Starting build", "config_dir", configDir, "watch", watch)
	log.Debug("Effective configuration", "config", cfg.String())

	styleStep := &styles.Step{Compiler: p.Compiler}
	if err := styleStep.Build(cfg, configDir); err != nil {
		return fmt.Errorf("styles: %w", err)
	}

	if watch {
		sw, err := newStyleWatcher(styleStep, cfg, configDir)
		if err != nil {
			log.Warn("SCSS watcher unavailable, styles will not rebuild on change", "error", err)
		} else {
			go sw.run(ctx)
		}
	}

	scriptStep := &scripts.Step{Runner: p.Runner}
	summary, err := scriptStep.Build(ctx, cfg, configDir, watch)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}

	summary.Render(p.Out)
	log.Info("Build complete", "mode", mode(watch))
	return nil
}

func mode(watch bool) string {
	if watch {
		return "watch"
	}
	return "single"
}
