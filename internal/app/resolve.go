package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pap/internal/core"
	"pap/internal/types"
)

// Resolve fetches the project once and settles the loader, version and
// artifact without downloading anything.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	req, err := normalizeResolveRequest(req)
	if err != nil {
		return ResolveResult{}, err
	}
	if s.Registry == nil || s.LoaderPolicy == nil {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service requires a registry and a loader policy")
	}
	assert.NotEmpty(ctx, req.GameVersion, "game version selector must be set")
	assert.NotEmpty(ctx, req.Version, "version selector must be set")

	project, err := s.Registry.Project(ctx, req.ProjectID)
	if err != nil {
		return ResolveResult{}, err
	}
	if err := core.CheckServerSide(project); err != nil {
		return ResolveResult{}, err
	}
	loader, err := s.LoaderPolicy.Infer(project, req.Loader)
	if err != nil {
		return ResolveResult{}, err
	}

	resolver := core.NewVersionResolver(s.Registry, s.Scheme)
	version, err := resolver.Resolve(ctx, project, req.GameVersion, req.Version)
	if err != nil {
		return ResolveResult{}, err
	}
	loader, err = s.LoaderPolicy.Check(project, version, loader)
	if err != nil {
		return ResolveResult{}, err
	}
	artifact, err := core.SelectArtifact(version)
	if err != nil {
		return ResolveResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("project", project.DisplayName()).
		Str("version", version.Label()).
		Str("loader", loader).
		Str("file", artifact.Filename).
		Msg("resolved")
	return ResolveResult{
		Project:  project,
		Version:  version,
		Loader:   loader,
		Artifact: artifact,
	}, nil
}

func normalizeResolveRequest(req ResolveRequest) (ResolveRequest, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if req.ProjectID == "" {
		return ResolveRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project id is required")
	}
	req.GameVersion = strings.TrimSpace(req.GameVersion)
	if req.GameVersion == "" {
		req.GameVersion = types.Latest
	}
	req.Version = strings.TrimSpace(req.Version)
	if req.Version == "" {
		req.Version = types.Latest
	}
	req.Loader = strings.TrimSpace(req.Loader)
	return req, nil
}
