package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pap/internal/types"
)

type resolveOptions struct {
	Version string
	Loader  string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <project> [minecraft-version]",
		Short: "Show which version and file add would install",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", types.Latest, "Project version id or \"latest\"")
	cmd.Flags().StringVar(&opts.Loader, "loader", "", "Loader to target (inferred when the project has only one)")

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, args []string, opts resolveOptions) error {
	service, err := newAppService("")
	if err != nil {
		return err
	}
	result, err := service.Resolve(ctx, resolveRequestFrom(cmd, args, opts.Version, opts.Loader))
	if err != nil {
		return err
	}
	digest := result.Artifact.Digest()
	fmt.Printf("project:  %s\n", result.Project.DisplayName())
	fmt.Printf("version:  %s (%s)\n", result.Version.Label(), result.Version.ID)
	fmt.Printf("loader:   %s\n", result.Loader)
	fmt.Printf("file:     %s\n", result.Artifact.Filename)
	fmt.Printf("url:      %s\n", result.Artifact.URL)
	fmt.Printf("%-9s %s\n", digest.Algorithm+":", digest.Value)
	return nil
}
