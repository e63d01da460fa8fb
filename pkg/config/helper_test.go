package config

import (
	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("user", "appuser", "")
	cmd.Flags().Bool("strict", false, "")
	return cmd
}
