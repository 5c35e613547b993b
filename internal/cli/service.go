package cli

import (
	"github.com/spf13/viper"

	"pap/internal/app"
)

// newAppService builds the service from the persistent flags, which are
// bound to viper so config file and PAP_* environment values apply too.
func newAppService(outputDir string) (app.Service, error) {
	return app.NewService(app.Config{
		Registry: app.RegistryConfig{
			Backend:      viper.GetString("registry.backend"),
			BaseURL:      viper.GetString("registry.url"),
			UserAgent:    viper.GetString("registry.user_agent"),
			TimeoutSec:   viper.GetInt("registry.timeout"),
			SnapshotFile: viper.GetString("registry.file"),
		},
		OutputDir:     outputDir,
		VersionScheme: viper.GetString("version_scheme"),
	})
}
