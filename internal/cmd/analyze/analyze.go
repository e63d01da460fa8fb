package analyze

import (
	"encoding/json"
	"os"

	"github.com/harborworks/dockhand/internal/cmd/flags"
	"github.com/harborworks/dockhand/pkg/config"
	"github.com/harborworks/dockhand/pkg/format"
	"github.com/harborworks/dockhand/pkg/project"
	"github.com/harborworks/dockhand/pkg/remedy"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewAnalyzeCmd() *cobra.Command {
	var (
		path            string
		maxManifestSize string
		baselinePath    string
		reportFile      string
	)

	analyzeCmd := &cobra.Command{
		Use:     "analyze",
		Short:   "Detect Dockerfile smells and compose shortcomings in a project",
		Long:    "Locate the project's Dockerfiles and compose file, run the smell catalogue over every Dockerfile and emit per-service compose suggestions. Findings are logged and can additionally be written to a JSON report.",
		Example: `dockhand analyze --path ./extracted-project --report-file report.json`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.BindCommandFlags(cmd, map[string]string{
				"max-manifest-size": "analysis.max_manifest_size",
				"baseline":          "analysis.baseline",
			}); err != nil {
				return
			}

			auditor, err := project.NewAuditor(config.GetString("analysis.max_manifest_size"), remedy.DefaultOptions())
			if err != nil {
				log.Fatal().Err(err).Msg("Invalid analysis configuration")
			}

			if baseline := config.GetString("analysis.baseline"); baseline != "" {
				auditor.Baseline, err = project.LoadBaseline(baseline)
				if err != nil {
					log.Fatal().Err(err).Msg("Failed loading baseline file")
				}
				log.Info().Int("fingerprints", len(auditor.Baseline)).Msg("Baseline loaded")
			}

			report, err := auditor.Analyze(path)
			if err != nil {
				log.Fatal().Stack().Err(err).Str("path", path).Msg("Analysis failed")
			}

			if !report.Valid {
				log.Warn().Str("path", path).Msg("Project does not look like a containerized project")
			}

			if reportFile != "" {
				writeReport(report, reportFile)
			}

			log.Info().
				Int("dockerfiles", len(report.Files)).
				Int("suggestions", len(report.Suggestions)).
				Msg("Analysis complete")
		},
	}

	flags.AddPathFlag(analyzeCmd, &path)
	analyzeCmd.Flags().StringVar(&maxManifestSize, "max-manifest-size", "1MiB",
		"Maximum manifest size to analyze. Larger files are skipped. Format: https://pkg.go.dev/github.com/docker/go-units#RAMInBytes")
	analyzeCmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file with one finding fingerprint per line to suppress")
	analyzeCmd.Flags().StringVar(&reportFile, "report-file", "", "Write the analysis report as JSON to this file")

	return analyzeCmd
}

func writeReport(report *project.Report, path string) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed encoding report")
		return
	}
	if err := os.WriteFile(path, data, format.FileUserReadWrite); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed writing report file")
		return
	}
	log.Info().Str("path", path).Msg("Report written")
}
