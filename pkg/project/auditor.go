// Package project drives analysis and remediation over a whole extracted
// project tree, composing the manifest locator, the smell detector, the
// compose advisor and the Dockerfile remediator.
package project

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/harborworks/dockhand/pkg/compose"
	"github.com/harborworks/dockhand/pkg/manifest"
	"github.com/harborworks/dockhand/pkg/remedy"
	"github.com/harborworks/dockhand/pkg/smells"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Auditor analyzes and remediates one project tree per call. It holds no
// state between calls; reusing one Auditor across projects is safe as long
// as the caller serializes remediation of any single path.
type Auditor struct {
	// MaxManifestSize caps how large a manifest may be before it is
	// skipped. Zero means no cap.
	MaxManifestSize int64
	// Remedy controls Dockerfile rewriting.
	Remedy remedy.Options
	// Baseline holds finding fingerprints to suppress from reports.
	Baseline map[string]bool
}

// NewAuditor builds an Auditor from a human-readable size cap such as
// "1MiB", as accepted by go-units.
func NewAuditor(maxManifestSize string, opts remedy.Options) (*Auditor, error) {
	var limit int64
	if maxManifestSize != "" {
		parsed, err := units.RAMInBytes(maxManifestSize)
		if err != nil {
			return nil, fmt.Errorf("invalid max manifest size %q: %w", maxManifestSize, err)
		}
		limit = parsed
	}
	return &Auditor{MaxManifestSize: limit, Remedy: opts}, nil
}

// FileReport holds the ordered findings for one Dockerfile.
type FileReport struct {
	Path     string           `json:"path"`
	Findings []smells.Finding `json:"findings"`
}

// Report aggregates the analysis of one project tree. Files keeps discovery
// order: root Dockerfile first, then subdirectory Dockerfiles.
type Report struct {
	Valid       bool                 `json:"valid"`
	Files       []FileReport         `json:"files"`
	Suggestions []compose.Suggestion `json:"suggestions,omitempty"`
	// ComposeErr records a compose parse failure; Dockerfile analysis
	// is unaffected by it.
	ComposeErr error `json:"-"`
}

// RemediationResult is the per-path outcome of a remediation walk.
type RemediationResult struct {
	Path       string
	BackupPath string
	Err        error
}

// Analyze locates manifests under root, runs the smell detector over every
// discovered Dockerfile and the compose advisor over a root compose file.
// Subdirectory Dockerfiles are only analyzed when a compose file exists.
func (a *Auditor) Analyze(root string) (*Report, error) {
	set, err := manifest.Locate(root)
	if err != nil {
		return nil, err
	}

	report := &Report{Valid: set.Valid()}

	for _, path := range set.Dockerfiles() {
		a.analyzeDockerfile(report, path)
	}

	if set.ComposePath != "" {
		data, err := a.readManifest(set.ComposePath)
		if err != nil {
			report.ComposeErr = err
			log.Error().Err(err).Str("path", set.ComposePath).Msg("Skipping compose file")
		} else if data != nil {
			suggestions, err := compose.Advise(data)
			if err != nil {
				report.ComposeErr = err
				log.Error().Err(err).Str("path", set.ComposePath).Msg("Failed parsing compose file")
			} else {
				report.Suggestions = suggestions
			}
		}
	}

	a.logReport(report)
	return report, nil
}

// Remediate rewrites every discovered Dockerfile in place. One failure does
// not abort the remaining paths; the caller gets a result per path.
func (a *Auditor) Remediate(root string) ([]RemediationResult, error) {
	set, err := manifest.Locate(root)
	if err != nil {
		return nil, err
	}

	var results []RemediationResult
	for _, path := range set.Dockerfiles() {
		backupPath, err := remedy.Remediate(path, a.Remedy)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Remediation failed")
		} else {
			log.Info().Str("path", path).Str("backup", backupPath).Msg("Dockerfile rewritten")
		}
		results = append(results, RemediationResult{Path: path, BackupPath: backupPath, Err: err})
	}

	return results, nil
}

func (a *Auditor) analyzeDockerfile(report *Report, path string) {
	data, err := a.readManifest(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable Dockerfile")
		return
	}
	if data == nil {
		return
	}

	findings := smells.Detect(string(data), manifest.HasDockerignore(path))
	findings = a.applyBaseline(findings)
	report.Files = append(report.Files, FileReport{Path: path, Findings: findings})
}

// readManifest reads a manifest, enforcing the size cap. A nil byte slice
// with nil error means the file was skipped as oversized.
func (a *Auditor) readManifest(path string) ([]byte, error) {
	if a.MaxManifestSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", manifest.ErrIOUnavailable, path, err)
		}
		if info.Size() > a.MaxManifestSize {
			log.Warn().
				Str("path", path).
				Str("size", units.BytesSize(float64(info.Size()))).
				Str("limit", units.BytesSize(float64(a.MaxManifestSize))).
				Msg("Manifest exceeds size limit, skipped")
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", manifest.ErrIOUnavailable, path, err)
	}
	return data, nil
}

// applyBaseline drops findings whose fingerprint is listed in the baseline.
// A file whose findings are all suppressed reports the clean marker, keeping
// the clean-or-findings invariant intact.
func (a *Auditor) applyBaseline(findings []smells.Finding) []smells.Finding {
	if len(a.Baseline) == 0 {
		return findings
	}

	kept := findings[:0]
	for _, f := range findings {
		if !a.Baseline[f.Fingerprint()] {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return []smells.Finding{{
			Severity: smells.SeverityOK,
			Rule:     "clean",
			Message:  "no smells detected",
		}}
	}
	return kept
}

func (a *Auditor) logReport(report *Report) {
	for _, file := range report.Files {
		for _, finding := range file.Findings {
			var event *zerolog.Event
			switch finding.Severity {
			case smells.SeverityError:
				event = log.Error()
			case smells.SeverityOK:
				event = log.Info()
			default:
				event = log.Warn()
			}
			event.
				Str("path", file.Path).
				Str("rule", finding.Rule).
				Str("fingerprint", finding.Fingerprint()).
				Msg(finding.Message)
		}
	}
	for _, suggestion := range report.Suggestions {
		log.Info().Str("service", suggestion.Service).Msg(suggestion.Message)
	}
}

// LoadBaseline reads a baseline file with one finding fingerprint per line.
// A missing path yields an empty baseline only when the path is empty.
func LoadBaseline(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}
	baseline := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			baseline[line] = true
		}
	}
	return baseline, nil
}

// IsIOUnavailable reports whether err is the locator/reader IO failure.
func IsIOUnavailable(err error) bool {
	return errors.Is(err, manifest.ErrIOUnavailable)
}
