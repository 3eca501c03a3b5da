// Package styles implements the style build step: SCSS compilation via
// Dart Sass, CSS validation and printing, sourcemap stubs and destination
// copying.
package styles

import (
	"os"
	"path/filepath"

	"github.com/bep/godartsass/v2"
)

// Compiler compiles one SCSS entry file to CSS text. The build step
// depends on this interface so tests run without a dart-sass binary.
type Compiler interface {
	Compile(inputPath string) (string, error)
}

// DartSassCompiler is the real Compiler backed by the dart-sass embedded
// protocol. The transpiler process is started lazily on first use and
// reused across compilations.
type DartSassCompiler struct {
	transpiler *godartsass.Transpiler
}

// NewDartSassCompiler starts a dart-sass transpiler. The binary is located
// via godartsass's default lookup (sass / sass-embedded on PATH).
func NewDartSassCompiler() (*DartSassCompiler, error) {
	t, err := godartsass.Start(godartsass.Options{})
	if err != nil {
		return nil, err
	}
	return &DartSassCompiler{transpiler: t}, nil
}

func (c *DartSassCompiler) Compile(inputPath string) (string, error) {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return "", err
	}

	res, err := c.transpiler.Execute(godartsass.Args{
		Source:       string(src),
		IncludePaths: []string{filepath.Dir(inputPath)},
		OutputStyle:  godartsass.OutputStyleExpanded,
	})
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// Close shuts down the transpiler process.
func (c *DartSassCompiler) Close() error {
	return c.transpiler.Close()
}
