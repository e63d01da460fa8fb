// Package manifest discovers container build manifests in an extracted
// project tree. Matching is exact and case-sensitive on the lowercase names
// "dockerfile" and "docker-compose.yaml"; whether the host filesystem folds
// case on top of that is left to the platform.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DockerfileName   = "dockerfile"
	ComposeName      = "docker-compose.yaml"
	DockerignoreName = ".dockerignore"
)

// ErrIOUnavailable indicates the project root is missing or unreadable.
var ErrIOUnavailable = errors.New("project path missing or unreadable")

// Set is the read-only view of the manifests discovered under a project root.
// Empty string fields mean the manifest is absent. SubdirDockerfiles keeps
// directory-listing order.
type Set struct {
	Root              string
	ComposePath       string
	RootDockerfile    string
	SubdirDockerfiles []string
}

// Locate inspects root for a Dockerfile and a compose file, and checks every
// first-level subdirectory for its own Dockerfile. It performs only reads.
func Locate(root string) (*Set, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIOUnavailable, root, err)
	}

	set := &Set{Root: root}

	if p := filepath.Join(root, DockerfileName); fileExists(p) {
		set.RootDockerfile = p
	}
	if p := filepath.Join(root, ComposeName); fileExists(p) {
		set.ComposePath = p
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := filepath.Join(root, entry.Name(), DockerfileName)
		if fileExists(p) {
			set.SubdirDockerfiles = append(set.SubdirDockerfiles, p)
		}
	}

	return set, nil
}

// HasDockerignore reports whether a .dockerignore sits next to the given
// Dockerfile.
func HasDockerignore(dockerfilePath string) bool {
	return fileExists(filepath.Join(filepath.Dir(dockerfilePath), DockerignoreName))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
