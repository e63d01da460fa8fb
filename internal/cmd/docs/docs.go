package docs

import (
	"github.com/harborworks/dockhand/pkg/docs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewDocsCmd(rootCmd *cobra.Command) *cobra.Command {
	var outputDir string

	docsCmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate markdown documentation for the CLI",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			if err := docs.Generate(rootCmd, outputDir); err != nil {
				log.Fatal().Err(err).Msg("Failed generating documentation")
			}
			log.Info().Str("dir", outputDir).Msg("Documentation generated")
		},
	}

	docsCmd.Flags().StringVar(&outputDir, "output", "docs", "Output directory for generated markdown")

	return docsCmd
}
