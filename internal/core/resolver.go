package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pap/internal/ports"
	"pap/internal/types"
)

// VersionResolver picks the one project version that satisfies a game
// version selector and a version selector.
type VersionResolver struct {
	Versions ports.VersionFetcher
	Scheme   types.VersionScheme
}

func NewVersionResolver(versions ports.VersionFetcher, scheme types.VersionScheme) VersionResolver {
	return VersionResolver{
		Versions: versions,
		Scheme:   scheme,
	}
}

// Resolve validates the selectors against the project before fetching any
// version, then either fetches the literal version or searches for the
// newest compatible one.
//
// The latest search walks the project's versions newest first and stops as
// soon as a version targets only game versions strictly older than the
// requested one. This assumes the version history never moves back to older
// game versions; a non-monotonic history can make it report
// no-compatible-version while an older match exists.
func (r VersionResolver) Resolve(ctx context.Context, project types.ProjectDescriptor, gameVersion string, versionSelector string) (types.VersionDescriptor, error) {
	if r.Versions == nil {
		return types.VersionDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a version fetcher")
	}
	if err := CheckServerSide(project); err != nil {
		return types.VersionDescriptor{}, err
	}
	if !types.IsLatest(gameVersion) && !project.SupportsGameVersion(gameVersion) {
		return types.VersionDescriptor{}, types.NewKindError(types.ErrKindIncompatiblePlatform, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("project %s does not support Minecraft version %s", project.DisplayName(), gameVersion)))
	}
	if !types.IsLatest(versionSelector) && !project.HasVersion(versionSelector) {
		return types.VersionDescriptor{}, types.NewKindError(types.ErrKindUnknownVersion, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("project version %s does not exist for %s", versionSelector, project.DisplayName())))
	}

	if !types.IsLatest(versionSelector) {
		return r.resolveLiteral(ctx, gameVersion, versionSelector)
	}
	if types.IsLatest(gameVersion) {
		return r.resolveNewest(ctx, project)
	}
	return r.resolveLatestCompatible(ctx, project, gameVersion)
}

// CheckServerSide rejects projects that cannot run on a dedicated server.
func CheckServerSide(project types.ProjectDescriptor) error {
	if project.ServerSide.Supported() {
		return nil
	}
	return types.NewKindError(types.ErrKindUnsupported, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("project %s does not support server side", project.DisplayName())))
}

func (r VersionResolver) resolveLiteral(ctx context.Context, gameVersion string, id string) (types.VersionDescriptor, error) {
	version, err := r.Versions.Version(ctx, id)
	if err != nil {
		return types.VersionDescriptor{}, err
	}
	if !types.IsLatest(gameVersion) && !version.SupportsGameVersion(gameVersion) {
		return types.VersionDescriptor{}, types.NewKindError(types.ErrKindIncompatiblePlatform, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("project version %s does not support Minecraft version %s", version.Label(), gameVersion)))
	}
	log.Ctx(ctx).Debug().Str("version", version.Label()).Msg("resolved literal version")
	return version, nil
}

func (r VersionResolver) resolveNewest(ctx context.Context, project types.ProjectDescriptor) (types.VersionDescriptor, error) {
	if len(project.Versions) == 0 {
		return types.VersionDescriptor{}, types.NewKindError(types.ErrKindNoCompatibleVersion, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version: project %s lists no versions", project.DisplayName())))
	}
	newest := project.Versions[len(project.Versions)-1]
	version, err := r.Versions.Version(ctx, newest)
	if err != nil {
		return types.VersionDescriptor{}, err
	}
	log.Ctx(ctx).Debug().Str("version", version.Label()).Msg("resolved newest version")
	return version, nil
}

func (r VersionResolver) resolveLatestCompatible(ctx context.Context, project types.ProjectDescriptor, gameVersion string) (types.VersionDescriptor, error) {
	cache := newVersionCache(r.Scheme)
	earlyExit := cache.comparable(gameVersion)
	if !earlyExit {
		log.Ctx(ctx).Debug().
			Str("game_version", gameVersion).
			Str("scheme", string(cache.scheme)).
			Msg("game version is not comparable, scanning every version")
	}

	fetched := 0
	for i := len(project.Versions) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return types.VersionDescriptor{}, err
		}
		version, err := r.Versions.Version(ctx, project.Versions[i])
		if err != nil {
			return types.VersionDescriptor{}, err
		}
		fetched++
		if version.SupportsGameVersion(gameVersion) {
			log.Ctx(ctx).Debug().
				Str("version", version.Label()).
				Int("fetched", fetched).
				Msg("resolved latest compatible version")
			return version, nil
		}
		if earlyExit && cache.allOlderThan(version.GameVersions, gameVersion) {
			log.Ctx(ctx).Debug().
				Str("version", version.Label()).
				Int("fetched", fetched).
				Msg("version predates target, stopping search")
			return types.VersionDescriptor{}, types.NewKindError(types.ErrKindNoCompatibleVersion, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no compatible version of %s for Minecraft version %s", project.DisplayName(), gameVersion)))
		}
	}
	return types.VersionDescriptor{}, types.NewKindError(types.ErrKindNoCompatibleVersion, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("no compatible version of %s found", project.DisplayName())))
}
