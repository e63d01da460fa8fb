package docs

import (
	"os"
	"path/filepath"

	"github.com/harborworks/dockhand/pkg/format"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Generate writes one markdown file per command of the CLI tree into
// outputDir. Command trees get their own directory with an index.md.
func Generate(rootCmd *cobra.Command, outputDir string) error {
	if err := os.MkdirAll(outputDir, format.DirUserGroupRead); err != nil {
		return err
	}
	return generateDocs(rootCmd, outputDir)
}

func generateDocs(cmd *cobra.Command, dir string) error {
	var filename string

	if len(cmd.Commands()) > 0 {
		dir = filepath.Join(dir, cmd.Name())
		if err := os.MkdirAll(dir, format.DirUserGroupRead); err != nil {
			return err
		}
		filename = filepath.Join(dir, "index.md")
	} else {
		filename = filepath.Join(dir, cmd.Name()+".md")
	}

	// #nosec G304 - Creating docs markdown file at controlled internal path during docs generation
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := doc.GenMarkdown(cmd, f); err != nil {
		return err
	}

	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := generateDocs(c, dir); err != nil {
			return err
		}
	}

	return nil
}
