package flags

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// AddPathFlag adds the required --path flag pointing to the extracted
// project directory.
func AddPathFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "path", "p", "", "Path to the extracted project directory")
	if err := cmd.MarkFlagRequired("path"); err != nil {
		log.Fatal().Stack().Err(err).Msg("Unable to require path flag")
	}
}
