package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads PACKR_* (and any other) variables from .env files in
// the working directory before overrides are read. godotenv does not
// overwrite variables already present in the process environment. Missing
// files are not an error.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "file", path)
			return
		}
	}
}
