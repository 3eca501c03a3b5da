package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/errors"
	"git.home.luguber.info/inful/packr/internal/execx"
)

// fileResult is one entry of ESLint's --format=json output.
type fileResult struct {
	FilePath string    `json:"filePath"`
	Messages []message `json:"messages"`
}

// message is a single diagnostic. Pointer fields: ESLint emits null ruleId
// for parse errors, and a diagnostic is only summarized when all four
// fields are present.
type message struct {
	RuleID  *string `json:"ruleId"`
	Message *string `json:"message"`
	Line    *int    `json:"line"`
	Column  *int    `json:"column"`
}

// ResolveConfigPath resolves the ESLint config file for a build. An
// override must be relative and free of parent-directory traversal; the
// canonicalized result must stay inside the config directory even when
// symlinks are involved.
func ResolveConfigPath(configDir, override string) (string, error) {
	var candidate string
	if override != "" {
		if strings.Contains(override, "..") || filepath.IsAbs(override) {
			return "", errors.Newf(errors.KindInvalidLintConfigPath,
				"invalid eslint config path %q: potential traversal attempt", override)
		}
		candidate = filepath.Join(configDir, override)
	} else {
		candidate = filepath.Join(configDir, config.DefaultESLintConfig)
	}

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", errors.Wrapf(err, errors.KindInvalidLintConfigPath,
			"resolve eslint config path %s", candidate)
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.KindInvalidLintConfigPath,
			"resolve eslint config path %s", candidate)
	}

	dirResolved, err := filepath.EvalSymlinks(configDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.KindInvalidLintConfigPath,
			"resolve config directory %s", configDir)
	}
	dirResolved, err = filepath.Abs(dirResolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.KindInvalidLintConfigPath,
			"resolve config directory %s", configDir)
	}

	rel, err := filepath.Rel(dirResolved, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.KindLintConfigOutsideAllowedDirectory,
			"eslint config path %s points outside the config directory", resolved)
	}

	return resolved, nil
}

// Run invokes ESLint non-interactively against input with a zero-tolerance
// warning threshold and JSON output, filling summary from its diagnostics.
//
// Exit code 1 with a "too many warnings" stderr is advisory (warnings
// surface via the summary only); exit code 1 otherwise is a hard failure
// carrying the stderr text.
func Run(ctx context.Context, runner execx.Runner, cfg *config.Config, configDir, input string, summary *Summary) error {
	configPath, err := ResolveConfigPath(configDir, cfg.ESLintConfig)
	if err != nil {
		return err
	}

	slog.Info("Running ESLint", "input", input, "config", configPath)

	res, err := runner.Run(ctx, execx.Cmd{
		Name: "npx",
		Args: []string{
			"eslint",
			"--max-warnings=0",
			"--format=json",
			"--no-eslintrc",
			"-c", configPath,
			input,
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.KindLintSpawn, "failed to run eslint")
	}

	collectDiagnostics(res.Stdout, summary)

	if res.ExitCode == 1 {
		stderr := string(res.Stderr)
		if !strings.Contains(stderr, "too many warnings") {
			return errors.Newf(errors.KindLintFailed, "eslint found errors:\n%s", stderr)
		}
	}

	if !summary.Empty() {
		slog.Warn("ESLint warnings found (see summary below)", "files", len(summary.Files()))
	}
	return nil
}

// collectDiagnostics parses ESLint's JSON stdout. Malformed JSON and
// diagnostics missing any of ruleId, message, line or column are skipped
// silently; the exit code alone decides lint failure.
func collectDiagnostics(stdout []byte, summary *Summary) {
	if len(stdout) == 0 {
		return
	}
	var results []fileResult
	if err := json.Unmarshal(stdout, &results); err != nil {
		return
	}
	for _, file := range results {
		if file.FilePath == "" {
			continue
		}
		for _, m := range file.Messages {
			if m.RuleID == nil || m.Message == nil || m.Line == nil || m.Column == nil {
				continue
			}
			warning := fmt.Sprintf("Line %d, Column %d: %s - %s", *m.Line, *m.Column, *m.RuleID, *m.Message)
			summary.Add(file.FilePath, warning)
		}
	}
}
