package scripts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/errors"
	"git.home.luguber.info/inful/packr/internal/execx"
	"git.home.luguber.info/inful/packr/internal/fsutil"
)

func baseConfig() *config.Config {
	return &config.Config{
		JsInput:  "a.js",
		JsOutput: "dist/a.js",
		Target:   "es2020",
		Format:   "iife",
	}
}

func setup(t *testing.T, cfg *config.Config) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfg.JsInput), []byte("console.log(1)"), 0o644))
	return dir
}

func TestBundleArgumentVector(t *testing.T) {
	cfg := baseConfig()
	dir := setup(t, cfg)

	fake := &execx.FakeRunner{Results: []execx.Result{{}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.NoError(t, err)

	require.Len(t, fake.RunCalls, 1)
	call := fake.RunCalls[0]
	assert.Equal(t, "esbuild", call.Name)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.js"),
		"--bundle",
		"--target=es2020",
		"--outfile=" + filepath.Join(dir, "dist/a.js"),
		"--legal-comments=none",
		"--format=iife",
	}, call.Args)
}

func TestMinifiedInvocation(t *testing.T) {
	cfg := baseConfig()
	cfg.Minify = true
	cfg.Sourcemap = true
	dir := setup(t, cfg)

	fake := &execx.FakeRunner{Results: []execx.Result{{}, {}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.NoError(t, err)

	require.Len(t, fake.RunCalls, 2)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.js"),
		"--bundle",
		"--minify",
		"--minify-syntax",
		"--minify-whitespace",
		"--target=es2020",
		"--outfile=" + filepath.Join(dir, "dist/a.min.js"),
		"--legal-comments=none",
		"--format=iife",
		"--sourcemap",
	}, fake.RunCalls[1].Args)
}

func TestWatchFlagOnlyOnUnminifiedInvocation(t *testing.T) {
	cfg := baseConfig()
	cfg.Minify = true
	dir := setup(t, cfg)

	fake := &execx.FakeRunner{}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, true)
	require.NoError(t, err)

	// Watch mode streams the unminified invocation and blocks there; the
	// minified invocation never runs.
	require.Len(t, fake.StreamCalls, 1)
	assert.Contains(t, fake.StreamCalls[0].Args, "--watch")
	assert.Empty(t, fake.RunCalls, "minified build must be unreachable in watch mode")
}

func TestBundleFailureSurfacesStderr(t *testing.T) {
	cfg := baseConfig()
	dir := setup(t, cfg)

	fake := &execx.FakeRunner{Results: []execx.Result{{
		Stderr:   []byte("error: Could not resolve \"left-pad\""),
		ExitCode: 1,
	}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBundle), "err = %v", err)
	assert.Contains(t, err.Error(), "left-pad")
}

func TestBundleSpawnFailure(t *testing.T) {
	cfg := baseConfig()
	dir := setup(t, cfg)

	fake := &execx.FakeRunner{RunErr: fmt.Errorf("esbuild: executable file not found")}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	assert.True(t, errors.IsKind(err, errors.KindBundleSpawn), "err = %v", err)
}

func TestInputNotFound(t *testing.T) {
	cfg := baseConfig()
	dir := t.TempDir() // no a.js

	fake := &execx.FakeRunner{}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInputNotFound), "err = %v", err)
	assert.Empty(t, fake.RunCalls, "nothing may be spawned when the input is missing")
}

func TestESLintRunsBeforeBundler(t *testing.T) {
	cfg := baseConfig()
	cfg.ESLint = true
	dir := setup(t, cfg)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultESLintConfig), []byte(`{}`), 0o644))

	fake := &execx.FakeRunner{Results: []execx.Result{{}, {}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.NoError(t, err)

	require.Len(t, fake.RunCalls, 2)
	assert.Equal(t, "npx", fake.RunCalls[0].Name)
	assert.Equal(t, "eslint", fake.RunCalls[0].Args[0])
	assert.Equal(t, "esbuild", fake.RunCalls[1].Name)
}

func TestLintFailureStopsBundling(t *testing.T) {
	cfg := baseConfig()
	cfg.ESLint = true
	dir := setup(t, cfg)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultESLintConfig), []byte(`{}`), 0o644))

	fake := &execx.FakeRunner{Results: []execx.Result{
		{Stderr: []byte("SyntaxError in config"), ExitCode: 1},
	}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindLintFailed), "err = %v", err)
	require.Len(t, fake.RunCalls, 1, "esbuild must not run after a lint failure")
}

func TestDestinationCopy(t *testing.T) {
	cfg := baseConfig()
	cfg.Minify = true
	cfg.JsDestination = "public/js"
	dir := setup(t, cfg)

	// Simulate the bundler's outputs; the fake runner writes nothing.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist/a.js"), []byte("bundled"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist/a.min.js"), []byte("min"), 0o644))

	fake := &execx.FakeRunner{Results: []execx.Result{{}, {}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.NoError(t, err)

	assert.True(t, fsutil.Exists(filepath.Join(dir, "public/js/a.js")))
	assert.True(t, fsutil.Exists(filepath.Join(dir, "public/js/a.min.js")))
}

func TestDestinationCopySkipsUnproducedMin(t *testing.T) {
	cfg := baseConfig()
	cfg.Minify = false
	cfg.JsDestination = "public/js"
	dir := setup(t, cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist/a.js"), []byte("bundled"), 0o644))

	fake := &execx.FakeRunner{Results: []execx.Result{{}}}
	step := &Step{Runner: fake}
	_, err := step.Build(context.Background(), cfg, dir, false)
	require.NoError(t, err)

	assert.True(t, fsutil.Exists(filepath.Join(dir, "public/js/a.js")))
	assert.False(t, fsutil.Exists(filepath.Join(dir, "public/js/a.min.js")))
}
