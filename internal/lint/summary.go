// Package lint runs ESLint over the script entry point and aggregates its
// JSON diagnostics into a per-file warning summary.
package lint

import (
	"fmt"
	"io"
	"sort"
)

// Summary maps file paths to their ordered warning descriptions for one
// script-build invocation. It is created per run, returned by the script
// step and discarded after rendering.
type Summary struct {
	warnings map[string][]string
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{warnings: make(map[string][]string)}
}

// Add appends a warning description for a file, preserving order of
// addition within the file.
func (s *Summary) Add(file, warning string) {
	s.warnings[file] = append(s.warnings[file], warning)
}

// Empty reports whether no warnings were collected.
func (s *Summary) Empty() bool {
	return len(s.warnings) == 0
}

// Files returns the file paths with warnings in sorted order. Sorting keeps
// the rendering deterministic; map iteration order is not.
func (s *Summary) Files() []string {
	files := make([]string, 0, len(s.warnings))
	for f := range s.warnings {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Warnings returns the warnings recorded for a file.
func (s *Summary) Warnings(file string) []string {
	return s.warnings[file]
}

// TotalWarnings returns the warning count across all files.
func (s *Summary) TotalWarnings() int {
	total := 0
	for _, w := range s.warnings {
		total += len(w)
	}
	return total
}

// Render writes the human-readable summary. An empty summary writes
// nothing.
func (s *Summary) Render(w io.Writer) {
	if s.Empty() {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ESLint Warning Summary:")
	fmt.Fprintln(w, "=====================")

	for _, file := range s.Files() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "File: %s\n", file)
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range s.warnings[file] {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total files with warnings: %d\n", len(s.warnings))
	fmt.Fprintf(w, "Total warnings: %d\n", s.TotalWarnings())
}
