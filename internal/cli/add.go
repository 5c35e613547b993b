package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pap/internal/app"
	"pap/internal/types"
)

type addOptions struct {
	Version   string
	Loader    string
	OutputDir string
}

func newAddCommand() *cobra.Command {
	opts := addOptions{}
	cmd := &cobra.Command{
		Use:   "add <project> [minecraft-version]",
		Short: "Download a project version and verify its digest",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", types.Latest, "Project version id or \"latest\"")
	cmd.Flags().StringVar(&opts.Loader, "loader", "", "Loader to target (inferred when the project has only one)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", ".", "Directory the artifact is written to")

	_ = viper.BindPFlag("loader", cmd.Flags().Lookup("loader"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runAdd(ctx context.Context, cmd *cobra.Command, args []string, opts addOptions) error {
	service, err := newAppService(resolveString(cmd, opts.OutputDir, "output", "output"))
	if err != nil {
		return err
	}
	result, err := service.Add(ctx, app.AddRequest{
		ResolveRequest: resolveRequestFrom(cmd, args, opts.Version, opts.Loader),
	})
	if err != nil {
		return err
	}
	fmt.Printf("added: %s %s (%s) -> %s\n", result.Project.DisplayName(), result.Version.Label(), result.Loader, result.Path)
	return nil
}

func resolveRequestFrom(cmd *cobra.Command, args []string, version string, loader string) app.ResolveRequest {
	return app.ResolveRequest{
		ProjectID:   positionalOr(args, 0, "project"),
		GameVersion: positionalOr(args, 1, "minecraft_version"),
		Version:     version,
		Loader:      resolveString(cmd, loader, "loader", "loader"),
	}
}
