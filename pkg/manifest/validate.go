package manifest

// Valid reports whether the project looks like a containerized project.
// It is false only when no Dockerfile was found anywhere and no root compose
// file exists. A lone compose file counts as valid since compose services
// may reference pre-built images.
func (s *Set) Valid() bool {
	return s.RootDockerfile != "" || len(s.SubdirDockerfiles) > 0 || s.ComposePath != ""
}

// Dockerfiles returns the discovery set both analysis and remediation walk,
// in order: the root Dockerfile first, then subdirectory Dockerfiles.
// Subdirectory Dockerfiles are only part of the set when a root compose
// file exists, since they are discovered on behalf of its services.
func (s *Set) Dockerfiles() []string {
	var paths []string
	if s.RootDockerfile != "" {
		paths = append(paths, s.RootDockerfile)
	}
	if s.ComposePath != "" {
		paths = append(paths, s.SubdirDockerfiles...)
	}
	return paths
}
