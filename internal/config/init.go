package config

import (
	"fmt"
	"os"
)

const sampleConfig = `{
  "scss_input": "assets/scss/main.scss",
  "scss_output": "dist/css/main.css",
  "js_input": "assets/js/main.js",
  "js_output": "dist/js/main.js",
  "minify": true,
  "target": "es2020",
  "format": "iife",
  "sourcemap": false,
  "eslint": false
}
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
