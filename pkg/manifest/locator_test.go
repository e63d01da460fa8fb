package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine:3.20\n"), 0o600))
}

func TestLocate_RootDockerfileOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dockerfile"))

	set, err := Locate(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "dockerfile"), set.RootDockerfile)
	assert.Empty(t, set.ComposePath)
	assert.Empty(t, set.SubdirDockerfiles)
	assert.True(t, set.Valid())
}

func TestLocate_ComposeWithSubdirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docker-compose.yaml"))
	writeFile(t, filepath.Join(root, "api", "dockerfile"))
	writeFile(t, filepath.Join(root, "web", "dockerfile"))
	// subdirectory without a Dockerfile is silently skipped
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o750))

	set, err := Locate(root)
	require.NoError(t, err)

	assert.Empty(t, set.RootDockerfile)
	assert.Equal(t, filepath.Join(root, "docker-compose.yaml"), set.ComposePath)
	assert.Equal(t, []string{
		filepath.Join(root, "api", "dockerfile"),
		filepath.Join(root, "web", "dockerfile"),
	}, set.SubdirDockerfiles)
}

func TestLocate_MissingRoot(t *testing.T) {
	set, err := Locate(filepath.Join(t.TempDir(), "does-not-exist"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIOUnavailable)
	assert.Nil(t, set)
}

func TestLocate_IgnoresDirectoriesNamedLikeManifests(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dockerfile"), 0o750))

	set, err := Locate(root)
	require.NoError(t, err)
	assert.Empty(t, set.RootDockerfile)
}

func TestLocate_OnlyOneLevelDeep(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "svc", "nested", "dockerfile"))

	set, err := Locate(root)
	require.NoError(t, err)
	assert.Empty(t, set.SubdirDockerfiles)
	assert.False(t, set.Valid())
}

func TestValid_TruthTable(t *testing.T) {
	tests := []struct {
		name  string
		set   Set
		valid bool
	}{
		{"empty", Set{}, false},
		{"root dockerfile", Set{RootDockerfile: "/p/dockerfile"}, true},
		{"subdir dockerfile", Set{SubdirDockerfiles: []string{"/p/api/dockerfile"}}, true},
		{"compose only", Set{ComposePath: "/p/docker-compose.yaml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.set.Valid())
		})
	}
}

func TestDockerfiles_RootFirst(t *testing.T) {
	set := Set{
		ComposePath:       "/p/docker-compose.yaml",
		RootDockerfile:    "/p/dockerfile",
		SubdirDockerfiles: []string{"/p/a/dockerfile", "/p/b/dockerfile"},
	}
	assert.Equal(t, []string{"/p/dockerfile", "/p/a/dockerfile", "/p/b/dockerfile"}, set.Dockerfiles())
}

func TestDockerfiles_SubdirsRequireCompose(t *testing.T) {
	set := Set{
		RootDockerfile:    "/p/dockerfile",
		SubdirDockerfiles: []string{"/p/a/dockerfile"},
	}
	assert.Equal(t, []string{"/p/dockerfile"}, set.Dockerfiles())
}

func TestHasDockerignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dockerfile"))
	assert.False(t, HasDockerignore(filepath.Join(root, "dockerfile")))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".dockerignore"), []byte("*.log\n"), 0o600))
	assert.True(t, HasDockerignore(filepath.Join(root, "dockerfile")))
}
