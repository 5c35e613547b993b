package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pap/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PAP"

type RootConfig struct {
	ConfigFile      string
	LogLevel        string
	RegistryBackend string
	RegistryURL     string
	RegistryFile    string
	UserAgent       string
	HTTPTimeoutSec  int
	VersionScheme   string
}

func Execute() {
	root := newRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error().
			Err(err).
			Str("kind", string(types.KindOf(err))).
			Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "pap",
		Short:         "Install Minecraft server mods and plugins from Modrinth",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.RegistryBackend, "registry-backend", string(types.RegistryBackendHTTP), "Registry backend (http or file)")
	flags.StringVar(&cfg.RegistryURL, "registry-url", "", "Registry API base URL")
	flags.StringVar(&cfg.RegistryFile, "registry-file", "", "Registry snapshot file for the file backend")
	flags.StringVar(&cfg.UserAgent, "user-agent", "", "User-Agent sent with every registry request")
	flags.IntVar(&cfg.HTTPTimeoutSec, "http-timeout", 60, "Registry request timeout in seconds")
	flags.StringVar(&cfg.VersionScheme, "version-scheme", string(types.VersionSchemeDeb), "Game version ordering scheme (deb or pep440)")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("registry.backend", flags.Lookup("registry-backend"))
	_ = viper.BindPFlag("registry.url", flags.Lookup("registry-url"))
	_ = viper.BindPFlag("registry.file", flags.Lookup("registry-file"))
	_ = viper.BindPFlag("registry.user_agent", flags.Lookup("user-agent"))
	_ = viper.BindPFlag("registry.timeout", flags.Lookup("http-timeout"))
	_ = viper.BindPFlag("version_scheme", flags.Lookup("version-scheme"))

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newResolveCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("pap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/pap")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch types.KindOf(err) {
	case types.ErrKindAmbiguousLoader:
		return 2
	case types.ErrKindUnsupported,
		types.ErrKindIncompatiblePlatform,
		types.ErrKindNoCompatibleVersion,
		types.ErrKindLoaderNotOffered,
		types.ErrKindIncompatibleLoader:
		return 4
	case types.ErrKindUnknownVersion, types.ErrKindNoInstallableArtifact:
		return 5
	case types.ErrKindHashMismatch:
		return 6
	}
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
