package validate

import (
	"github.com/harborworks/dockhand/internal/cmd/flags"
	"github.com/harborworks/dockhand/pkg/manifest"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewValidateCmd() *cobra.Command {
	var path string

	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check whether a project directory looks like a containerized project",
		Long:    "A project is valid when it contains a Dockerfile at the root or in a first-level subdirectory, or a root docker-compose.yaml. A lone compose file is valid since its services may reference pre-built images.",
		Example: `dockhand validate --path ./extracted-project`,
		Run: func(cmd *cobra.Command, args []string) {
			set, err := manifest.Locate(path)
			if err != nil {
				log.Fatal().Stack().Err(err).Str("path", path).Msg("Cannot read project directory")
			}

			if !set.Valid() {
				log.Fatal().Str("path", path).Msg("No Dockerfile or compose file found, not a containerized project")
			}

			log.Info().
				Str("path", path).
				Bool("compose", set.ComposePath != "").
				Bool("root_dockerfile", set.RootDockerfile != "").
				Int("subdir_dockerfiles", len(set.SubdirDockerfiles)).
				Msg("Project structure is valid")
		},
	}

	flags.AddPathFlag(validateCmd, &path)

	return validateCmd
}
