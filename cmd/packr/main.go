// Command packr is a front-end build orchestrator: it compiles SCSS to
// CSS in-process and bundles JavaScript through the esbuild CLI, driven by
// a .packr.json configuration.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/errors"
	"git.home.luguber.info/inful/packr/internal/execx"
	"git.home.luguber.info/inful/packr/internal/pipeline"
	"git.home.luguber.info/inful/packr/internal/styles"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:".packr.json"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Watch bool `short:"w" help:"Keep esbuild running and rebuild on file changes"`
	} `cmd:"" default:"1" help:"Build styles and scripts from the configuration"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write a sample configuration file"`
}

func main() {
	kctx := kong.Parse(&CLI)
	setupLogging(CLI.Verbose)

	switch kctx.Command() {
	case "build":
		if err := runBuild(CLI.Config, CLI.Build.Watch, CLI.Verbose); err != nil {
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runBuild(configPath string, watch, verbose bool) error {
	cfg, configDir, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return err
	}
	if cfg.Verbose && !verbose {
		setupLogging(true)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	compiler, err := styles.NewDartSassCompiler()
	if err != nil {
		err = errors.Wrap(err, errors.KindScssCompile, "failed to start dart-sass")
		slog.Error("Styles failed", "error", err)
		return err
	}
	defer func() {
		if err := compiler.Close(); err != nil {
			slog.Warn("Failed to shut down dart-sass", "error", err)
		}
	}()

	p := pipeline.New(compiler, execx.OSRunner{}, os.Stdout)
	if err := p.Run(ctx, cfg, configDir, watch); err != nil {
		slog.Error("Build failed", "error", err)
		return err
	}
	return nil
}
