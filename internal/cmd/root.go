package cmd

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/harborworks/dockhand/internal/cmd/analyze"
	"github.com/harborworks/dockhand/internal/cmd/docs"
	"github.com/harborworks/dockhand/internal/cmd/remediate"
	"github.com/harborworks/dockhand/internal/cmd/validate"
	"github.com/harborworks/dockhand/pkg/config"
	"github.com/harborworks/dockhand/pkg/format"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version information - set via ldflags during build
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	rootCmd = &cobra.Command{
		Use:     "dockhand",
		Short:   "Analyze and remediate Dockerfiles and compose files",
		Long:    "Dockhand inspects an extracted project directory for Dockerfile and docker-compose manifests, flags anti-patterns, suggests compose improvements and can rewrite Dockerfiles in place with a backup.",
		Example: "dockhand analyze --path ./my-project",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfigFile(cmd)
			initLogger(cmd)
			setGlobalLogLevel(cmd)
		},
	}
	JsonLogoutput bool
	LogFile       string
	LogColor      bool
	LogDebug      bool
	LogLevel      string
	ConfigFile    string
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyze.NewAnalyzeCmd())
	rootCmd.AddCommand(validate.NewValidateCmd())
	rootCmd.AddCommand(remediate.NewRemediateCmd())
	rootCmd.AddCommand(docs.NewDocsCmd(rootCmd))
	rootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file path (YAML). Example: ~/.config/dockhand/dockhand.yaml")
	rootCmd.PersistentFlags().BoolVarP(&JsonLogoutput, "json", "", false, "Use JSON as log output format")
	rootCmd.PersistentFlags().StringVarP(&LogFile, "logfile", "l", "", "Log output to a file")
	rootCmd.PersistentFlags().BoolVarP(&LogDebug, "verbose", "v", false, "Enable debug logging (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Set log level globally (debug, info, warn, error). Example: --log-level=warn")
	rootCmd.PersistentFlags().BoolVar(&LogColor, "color", true, "Enable colored log output (auto-disabled when using --logfile)")

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}

type CustomWriter struct {
	Writer *os.File
}

func (cw *CustomWriter) Write(p []byte) (n int, err error) {
	originalLen := len(p)

	if bytes.HasSuffix(p, []byte("\n")) {
		p = bytes.TrimSuffix(p, []byte("\n"))
	}

	// necessary as to: https://github.com/rs/zerolog/blob/master/log.go#L474
	newlineChars := []byte("\n")
	if runtime.GOOS == "windows" {
		newlineChars = []byte("\n\r")
	}

	modified := append(p, newlineChars...)

	written, err := cw.Writer.Write(modified)
	if err != nil {
		return 0, err
	}

	if written != len(modified) {
		return 0, io.ErrShortWrite
	}

	return originalLen, nil
}

func initLogger(cmd *cobra.Command) {
	defaultOut := &CustomWriter{Writer: os.Stdout}
	colorEnabled := LogColor

	if LogFile != "" {
		// #nosec G304 - User-provided log file path via --logfile flag, user controls their own filesystem
		runLogFile, err := os.OpenFile(
			LogFile,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			format.FileUserReadWrite,
		)
		if err != nil {
			panic(err)
		}
		defaultOut = &CustomWriter{Writer: runLogFile}

		rootFlags := cmd.Root().PersistentFlags()
		if !rootFlags.Changed("color") {
			colorEnabled = false
		}
	}

	if JsonLogoutput {
		log.Logger = zerolog.New(defaultOut).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{
			Out:        defaultOut,
			TimeFormat: time.RFC3339,
			NoColor:    !colorEnabled,
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}
}

func setGlobalLogLevel(cmd *cobra.Command) {
	if LogLevel != "" {
		switch LogLevel {
		case "trace":
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
			log.Trace().Msg("Log level set to trace (explicit)")
		case "debug":
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			log.Debug().Msg("Log level set to debug (explicit)")
		case "info":
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		case "warn":
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case "error":
			zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Warn().Str("logLevelSpecified", LogLevel).Msg("Invalid log level, defaulting to info")
		}
		return
	}

	if LogDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("Log level set to debug (-v)")
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// loadConfigFile loads the configuration from a file if specified
func loadConfigFile(cmd *cobra.Command) {
	_, err := config.LoadConfig(ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration file")
	}
}
