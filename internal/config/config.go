// Package config loads the packr build configuration: a JSON (or YAML)
// file describing the SCSS and JS entry points plus build options, with
// PACKR_* environment variables taking precedence over file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/packr/internal/errors"
)

// DefaultPath is the config file packr looks for when --config is not given.
const DefaultPath = ".packr.json"

// DefaultESLintConfig is the lint config file name used when eslint_config
// is not set.
const DefaultESLintConfig = ".eslintrc.json"

// Config is the fully resolved build configuration. All relative paths are
// anchored at the directory containing the config file. The struct is not
// mutated after Load returns.
type Config struct {
	ScssInput  string `json:"scss_input" yaml:"scss_input"`
	ScssOutput string `json:"scss_output" yaml:"scss_output"`
	JsInput    string `json:"js_input" yaml:"js_input"`
	JsOutput   string `json:"js_output" yaml:"js_output"`

	CssDestination string `json:"css_destination" yaml:"css_destination"`
	JsDestination  string `json:"js_destination" yaml:"js_destination"`

	Minify    bool   `json:"minify" yaml:"minify"`
	Target    string `json:"target" yaml:"target"`
	Verbose   bool   `json:"verbose" yaml:"verbose"`
	Sourcemap bool   `json:"sourcemap" yaml:"sourcemap"`
	Format    string `json:"format" yaml:"format"`

	ESLint       bool   `json:"eslint" yaml:"eslint"`
	ESLintConfig string `json:"eslint_config" yaml:"eslint_config"`
}

// rawConfig mirrors Config with pointers for the defaulted fields so an
// explicit `"minify": false` is distinguishable from an absent field.
type rawConfig struct {
	ScssInput  string `json:"scss_input" yaml:"scss_input"`
	ScssOutput string `json:"scss_output" yaml:"scss_output"`
	JsInput    string `json:"js_input" yaml:"js_input"`
	JsOutput   string `json:"js_output" yaml:"js_output"`

	CssDestination string `json:"css_destination" yaml:"css_destination"`
	JsDestination  string `json:"js_destination" yaml:"js_destination"`

	Minify    *bool   `json:"minify" yaml:"minify"`
	Target    *string `json:"target" yaml:"target"`
	Verbose   *bool   `json:"verbose" yaml:"verbose"`
	Sourcemap *bool   `json:"sourcemap" yaml:"sourcemap"`
	Format    *string `json:"format" yaml:"format"`

	ESLint       *bool  `json:"eslint" yaml:"eslint"`
	ESLintConfig string `json:"eslint_config" yaml:"eslint_config"`
}

// Load reads, decodes and resolves the configuration at configPath. It
// returns the config together with the directory that anchors every
// relative path in it.
func Load(configPath string) (*Config, string, error) {
	loadEnvFiles()

	dir, err := configDir(configPath)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.KindConfigRead, "read config file %s", configPath)
	}

	var raw rawConfig
	if isYAMLPath(configPath) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, "", errors.Wrapf(err, errors.KindConfigParse, "parse config file %s", configPath)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, "", errors.Wrapf(err, errors.KindConfigParse, "parse config file %s", configPath)
		}
	}

	cfg := resolve(raw)
	if err := validate(cfg); err != nil {
		return nil, "", err
	}

	applyEnvOverrides(cfg)

	return cfg, dir, nil
}

// resolve fills in defaults for absent optional fields.
func resolve(raw rawConfig) *Config {
	cfg := &Config{
		ScssInput:      raw.ScssInput,
		ScssOutput:     raw.ScssOutput,
		JsInput:        raw.JsInput,
		JsOutput:       raw.JsOutput,
		CssDestination: raw.CssDestination,
		JsDestination:  raw.JsDestination,
		Minify:         true,
		Target:         "es2020",
		Format:         "iife",
		ESLintConfig:   raw.ESLintConfig,
	}
	if raw.Minify != nil {
		cfg.Minify = *raw.Minify
	}
	if raw.Target != nil {
		cfg.Target = *raw.Target
	}
	if raw.Verbose != nil {
		cfg.Verbose = *raw.Verbose
	}
	if raw.Sourcemap != nil {
		cfg.Sourcemap = *raw.Sourcemap
	}
	if raw.Format != nil {
		cfg.Format = *raw.Format
	}
	if raw.ESLint != nil {
		cfg.ESLint = *raw.ESLint
	}
	return cfg
}

func validate(cfg *Config) error {
	required := []struct {
		name  string
		value string
	}{
		{"scss_input", cfg.ScssInput},
		{"scss_output", cfg.ScssOutput},
		{"js_input", cfg.JsInput},
		{"js_output", cfg.JsOutput},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errors.Newf(errors.KindConfigParse, "missing required field %s", f.name)
		}
	}
	return nil
}

// applyEnvOverrides applies PACKR_* variables over file values and defaults.
// A single post-parse pass: env wins regardless of whether the field was
// present in the file.
func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("PACKR_MINIFY"); ok {
		cfg.Minify = v == "true"
	}
	if v, ok := os.LookupEnv("PACKR_TARGET"); ok {
		cfg.Target = v
	}
	if v, ok := os.LookupEnv("PACKR_VERBOSE"); ok {
		cfg.Verbose = v == "true"
	}
	if v, ok := os.LookupEnv("PACKR_SOURCEMAP"); ok {
		cfg.Sourcemap = v == "true"
	}
	if v, ok := os.LookupEnv("PACKR_FORMAT"); ok {
		cfg.Format = v
	}
	if v, ok := os.LookupEnv("PACKR_ESLINT"); ok {
		cfg.ESLint = v == "true"
	}
	if v, ok := os.LookupEnv("PACKR_ESLINT_CONFIG"); ok {
		cfg.ESLintConfig = v
	}
}

// configDir resolves the directory anchoring the config's relative paths.
// A root or empty path has no usable parent and is rejected.
func configDir(configPath string) (string, error) {
	if configPath == "" {
		return "", errors.New(errors.KindConfigDirectory, "config path is empty")
	}
	cleaned := filepath.Clean(configPath)
	if cleaned == string(os.PathSeparator) || cleaned == "." {
		return "", errors.Newf(errors.KindConfigDirectory, "config path %q has no parent directory", configPath)
	}
	return filepath.Dir(configPath), nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// String renders the effective configuration for verbose logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"scss=%s->%s js=%s->%s minify=%t target=%s format=%s sourcemap=%t eslint=%t",
		c.ScssInput, c.ScssOutput, c.JsInput, c.JsOutput,
		c.Minify, c.Target, c.Format, c.Sourcemap, c.ESLint)
}
