// Package smells flags a fixed catalogue of Dockerfile anti-patterns using
// line-based keyword matching. This is deliberately not a Dockerfile parser:
// there is no continuation-line joining and no build-arg expansion, so a RUN
// split across trailing backslashes counts as multiple lines.
//
// Every check trims surrounding whitespace from a line before matching its
// instruction keyword, so indented instructions are matched the same as
// column-zero ones.
package smells

import "strings"

// File is the detector's view of a single Dockerfile.
type File struct {
	// Content is the raw file text, used for file-wide substring checks.
	Content string
	// Lines holds each line with surrounding whitespace trimmed.
	Lines []string
	// HasDockerignore is supplied by the caller from the sibling file check.
	HasDockerignore bool
}

// NewFile splits raw Dockerfile text into the detector's line view.
func NewFile(content string, hasDockerignore bool) *File {
	raw := strings.Split(content, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return &File{Content: content, Lines: lines, HasDockerignore: hasDockerignore}
}

// Detect runs the full check catalogue in order and returns the findings.
// The result is never empty: a file with no findings yields exactly the
// clean marker.
func Detect(content string, hasDockerignore bool) []Finding {
	f := NewFile(content, hasDockerignore)

	var findings []Finding
	for _, check := range DefaultChecks() {
		if finding := check.Run(f); finding != nil {
			findings = append(findings, *finding)
		}
	}

	if len(findings) == 0 {
		findings = []Finding{{
			Severity: SeverityOK,
			Rule:     "clean",
			Message:  "no smells detected",
		}}
	}

	return findings
}
