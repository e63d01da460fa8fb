// Package remedy rewrites a Dockerfile in place to remove detected smells.
// The rewrite reduces the file to a fixed slot schema and drops anything it
// does not recognize, so the .bak written beside the original is the source
// of truth for recovery.
package remedy

import (
	"fmt"
	"os"
	"strings"

	"github.com/harborworks/dockhand/pkg/format"
	"github.com/harborworks/dockhand/pkg/manifest"
)

// Options controls the fixed values substituted during a rewrite.
type Options struct {
	// User replaces the identity when the original declared USER root.
	User string
	// BaseTag replaces the latest tag in the FROM line.
	BaseTag string
	// Healthcheck is the instruction body of the emitted HEALTHCHECK line.
	Healthcheck string
}

// DefaultOptions returns the stock rewrite values.
func DefaultOptions() Options {
	return Options{
		User:        "appuser",
		BaseTag:     "stable",
		Healthcheck: "CMD curl --fail http://localhost || exit 1",
	}
}

// Remediate backs up the Dockerfile at path to <path>.bak and replaces it
// with the rewritten form. The backup is written before the live file is
// touched; if the backup write fails the original is left unmodified. An
// existing backup is overwritten. Returns the backup path.
func Remediate(path string, opts Options) (string, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", manifest.ErrIOUnavailable, path, err)
	}

	backupPath := path + ".bak"
	if err := os.WriteFile(backupPath, original, format.FileUserReadWrite); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backupPath, err)
	}

	rewritten := Rewrite(string(original), opts)
	if err := os.WriteFile(path, []byte(rewritten), format.FileUserReadWrite); err != nil {
		// The backup already exists at this point and remains the recovery path.
		return backupPath, fmt.Errorf("rewriting %s: %w", path, err)
	}

	return backupPath, nil
}

// Rewrite reduces Dockerfile text to at most one instance per slot, emitted
// in the fixed order FROM, USER, RUN, WORKDIR, COPY, EXPOSE, HEALTHCHECK,
// CMD. Single-value slots are last-one-wins; all RUN argument texts are
// collapsed into one line joined with " && " in original order. WORKDIR,
// COPY and HEALTHCHECK are always emitted with fixed values. The transform
// is idempotent on its own output.
func Rewrite(content string, opts Options) string {
	var from, user, expose, cmdLine string
	var runs []string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "FROM"):
			from = line
		case strings.HasPrefix(line, "USER"):
			user = line
		case strings.HasPrefix(line, "RUN"):
			if args := strings.TrimSpace(strings.TrimPrefix(line, "RUN")); args != "" {
				runs = append(runs, args)
			}
		case strings.HasPrefix(line, "EXPOSE"):
			expose = line
		case strings.HasPrefix(line, "CMD"):
			cmdLine = line
		}
	}

	var out []string
	if from != "" {
		out = append(out, strings.ReplaceAll(from, ":latest", ":"+opts.BaseTag))
	}
	if user != "" {
		if strings.HasPrefix(user, "USER root") {
			user = "USER " + opts.User
		}
		out = append(out, user)
	}
	if len(runs) > 0 {
		out = append(out, "RUN "+strings.Join(runs, " && "))
	}
	out = append(out, "WORKDIR /app", "COPY . .")
	if expose != "" {
		out = append(out, expose)
	}
	out = append(out, "HEALTHCHECK "+opts.Healthcheck)
	if cmdLine != "" {
		out = append(out, cmdLine)
	}

	return strings.Join(out, "\n") + "\n"
}
