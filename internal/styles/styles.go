package styles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/errors"
	"git.home.luguber.info/inful/packr/internal/fsutil"
	"git.home.luguber.info/inful/packr/internal/paths"
)

// Step runs the style build: compile SCSS, validate, write the unminified
// output, then optionally the sourcemap stub, the minified sibling and the
// destination copies. Each stage is a hard dependency on the previous one
// succeeding; writes are not transactional.
type Step struct {
	Compiler Compiler
}

// Build compiles the configured SCSS entry file into the configured CSS
// output(s).
func (s *Step) Build(cfg *config.Config, configDir string) error {
	slog.Info("Building styles", "input", cfg.ScssInput)

	input := filepath.Join(configDir, cfg.ScssInput)
	output := filepath.Join(configDir, cfg.ScssOutput)

	if !fsutil.Exists(input) {
		abs, _ := filepath.Abs(input)
		return errors.Newf(errors.KindInputNotFound, "SCSS input file not found: %s", abs)
	}

	compiled, err := s.Compiler.Compile(input)
	if err != nil {
		return errors.Wrap(err, errors.KindScssCompile, "SCSS compilation failed")
	}

	sheet, err := ParseStylesheet(compiled)
	if err != nil {
		return errors.Wrap(err, errors.KindCssParse, "CSS parsing failed")
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.Wrap(err, errors.KindOutputDir, "failed to create output directory")
	}

	rendered, err := sheet.Print(false)
	if err != nil {
		return errors.Wrap(err, errors.KindCssWrite, "CSS print error")
	}
	if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
		return errors.Wrap(err, errors.KindCssWrite, "failed to write CSS")
	}
	slog.Debug("CSS written", "path", output)

	if cfg.Sourcemap {
		if err := writeSourcemapStub(output, input); err != nil {
			return err
		}
	}

	minOutput := ""
	if cfg.Minify {
		minOutput = paths.MinSibling(output)
		minified, err := sheet.Print(true)
		if err != nil {
			return errors.Wrap(err, errors.KindCssWrite, "CSS print error")
		}
		if err := os.WriteFile(minOutput, []byte(minified), 0o644); err != nil {
			return errors.Wrap(err, errors.KindCssWrite, "failed to write minified CSS")
		}
		slog.Debug("Minified CSS written", "path", minOutput)

		if cfg.Sourcemap {
			if err := writeSourcemapStub(minOutput, input); err != nil {
				return err
			}
		}
	}

	if cfg.CssDestination != "" {
		if err := copyToDestination(cfg, configDir, output, minOutput); err != nil {
			return err
		}
	}

	slog.Info("Styles built successfully")
	return nil
}

// writeSourcemapStub writes the fixed-shape placeholder sourcemap beside
// output. The shape is reproduced byte-for-byte: version 3, the output's
// base name, the input as sole source, empty mappings.
func writeSourcemapStub(output, input string) error {
	stub := fmt.Sprintf(
		`{"version":3,"file":%q,"sources":[%q],"names":[],"mappings":""}`,
		filepath.Base(output), filepath.Base(input))
	mapPath := paths.MapSibling(output)
	if err := os.WriteFile(mapPath, []byte(stub), 0o644); err != nil {
		return errors.Wrap(err, errors.KindCssWrite, "failed to write CSS sourcemap")
	}
	slog.Debug("CSS sourcemap written", "path", mapPath)
	return nil
}

// copyToDestination mirrors the produced artifacts into css_destination.
// The minified file and the sourcemaps are copied only when they were
// produced. Any copy failure fails the whole step.
func copyToDestination(cfg *config.Config, configDir, output, minOutput string) error {
	destDir := filepath.Join(configDir, cfg.CssDestination)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindDestinationCopy, "failed to create CSS destination folder")
	}

	copies := []string{output}
	if minOutput != "" {
		copies = append(copies, minOutput)
	}
	if cfg.Sourcemap {
		copies = append(copies, paths.MapSibling(output))
		if minOutput != "" {
			copies = append(copies, paths.MapSibling(minOutput))
		}
	}

	for _, src := range copies {
		dst := paths.InDir(destDir, src)
		if err := fsutil.CopyFile(src, dst); err != nil {
			return errors.Wrap(err, errors.KindDestinationCopy, "failed to copy CSS to destination")
		}
		slog.Debug("CSS copied", "path", dst)
	}
	return nil
}
