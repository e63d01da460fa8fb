package remediate

import (
	"github.com/harborworks/dockhand/internal/cmd/flags"
	"github.com/harborworks/dockhand/pkg/config"
	"github.com/harborworks/dockhand/pkg/project"
	"github.com/harborworks/dockhand/pkg/remedy"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewRemediateCmd() *cobra.Command {
	var (
		path    string
		user    string
		baseTag string
	)

	remediateCmd := &cobra.Command{
		Use:     "remediate",
		Short:   "Rewrite the project's Dockerfiles to remove detected smells",
		Long:    "Rewrites every discovered Dockerfile to a normalized form: pinned base tag, non-root user, collapsed RUN instructions and a default healthcheck. The original is preserved next to each file as <dockerfile>.bak and is the source of truth for recovery. One failing file does not stop the others.",
		Example: `dockhand remediate --path ./extracted-project --user svc`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.BindCommandFlags(cmd, map[string]string{
				"user":     "remediation.user",
				"base-tag": "remediation.base_tag",
			}); err != nil {
				return
			}

			opts := remedy.Options{
				User:        config.GetString("remediation.user"),
				BaseTag:     config.GetString("remediation.base_tag"),
				Healthcheck: config.GetString("remediation.healthcheck"),
			}

			auditor, err := project.NewAuditor(config.GetString("analysis.max_manifest_size"), opts)
			if err != nil {
				log.Fatal().Err(err).Msg("Invalid configuration")
			}

			results, err := auditor.Remediate(path)
			if err != nil {
				log.Fatal().Stack().Err(err).Str("path", path).Msg("Remediation failed")
			}

			if len(results) == 0 {
				log.Warn().Str("path", path).Msg("No Dockerfiles found to remediate")
				return
			}

			failed := 0
			for _, result := range results {
				if result.Err != nil {
					failed++
				}
			}

			if failed == len(results) {
				log.Fatal().Int("failed", failed).Msg("Every Dockerfile failed to remediate")
			}

			log.Info().
				Int("rewritten", len(results)-failed).
				Int("failed", failed).
				Msg("Remediation complete")
		},
	}

	flags.AddPathFlag(remediateCmd, &path)
	remediateCmd.Flags().StringVar(&user, "user", "appuser", "Non-root identity substituted for USER root")
	remediateCmd.Flags().StringVar(&baseTag, "base-tag", "stable", "Tag substituted for :latest in FROM lines")

	return remediateCmd
}
