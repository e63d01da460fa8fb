package smells

import (
	"fmt"
	"strings"
)

// Check is one smell rule. Run returns nil when the Dockerfile is clean with
// respect to this rule.
type Check struct {
	Name string
	Run  func(f *File) *Finding
}

// DefaultChecks returns the smell catalogue in evaluation order. Every check
// runs regardless of earlier results.
func DefaultChecks() []Check {
	return []Check{
		{
			Name: "latest-tag",
			Run: func(f *File) *Finding {
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "FROM") && strings.Contains(line, ":latest") {
						return warn("latest-tag", "base image uses the :latest tag, pin a specific version")
					}
				}
				return nil
			},
		},
		{
			Name: "run-layers",
			Run: func(f *File) *Finding {
				count := 0
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "RUN") {
						count++
					}
				}
				if count > 3 {
					return warn("run-layers", fmt.Sprintf("%d RUN instructions create excess layers, combine them with &&", count))
				}
				return nil
			},
		},
		{
			Name: "copy-context",
			Run: func(f *File) *Finding {
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "COPY . /app") {
						return warn("copy-context", "COPY . /app copies the entire build context, copy only what the image needs")
					}
				}
				return nil
			},
		},
		{
			Name: "add-over-copy",
			Run: func(f *File) *Finding {
				// The archive exemption is file-wide: one archive-extracting
				// ADD suppresses the warning for every ADD in the file.
				if strings.Contains(f.Content, "tar.gz") {
					return nil
				}
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "ADD") {
						return warn("add-over-copy", "ADD used for a plain file copy, prefer COPY")
					}
				}
				return nil
			},
		},
		{
			Name: "root-user",
			Run: func(f *File) *Finding {
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "USER root") {
						return &Finding{
							Severity: SeverityError,
							Rule:     "root-user",
							Message:  "container is configured to run as root",
						}
					}
				}
				return nil
			},
		},
		{
			Name: "no-healthcheck",
			Run: func(f *File) *Finding {
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "HEALTHCHECK") {
						return nil
					}
				}
				return warn("no-healthcheck", "no HEALTHCHECK instruction, orchestrators cannot probe container health")
			},
		},
		{
			Name: "single-stage",
			Run: func(f *File) *Finding {
				count := 0
				for _, line := range f.Lines {
					if strings.HasPrefix(line, "FROM") {
						count++
					}
				}
				// More than one FROM is already multi-stage, zero FROM lines
				// is not a buildable file either way.
				if count == 1 {
					return warn("single-stage", "single FROM stage, a multi-stage build would shrink the final image")
				}
				return nil
			},
		},
		{
			Name: "no-dockerignore",
			Run: func(f *File) *Finding {
				if !f.HasDockerignore {
					return warn("no-dockerignore", "no .dockerignore alongside the Dockerfile, the full build context is sent to the builder")
				}
				return nil
			},
		},
	}
}

func warn(rule, message string) *Finding {
	return &Finding{Severity: SeverityWarning, Rule: rule, Message: message}
}
