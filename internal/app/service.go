package app

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pap/internal/adapters"
	"pap/internal/core"
	"pap/internal/policies"
	"pap/internal/ports"
	"pap/internal/types"
)

type Service struct {
	Registry     ports.RegistryPort
	Store        ports.ArtifactStorePort
	LoaderPolicy ports.LoaderPolicyPort
	Scheme       types.VersionScheme
}

func NewService(cfg Config) (Service, error) {
	scheme := types.VersionScheme(strings.ToLower(strings.TrimSpace(cfg.VersionScheme)))
	if scheme == "" {
		scheme = types.VersionSchemeDeb
	}
	if err := core.ValidateVersionScheme(scheme); err != nil {
		return Service{}, err
	}
	registry, err := newRegistry(cfg.Registry)
	if err != nil {
		return Service{}, err
	}
	return Service{
		Registry:     registry,
		Store:        adapters.NewArtifactDirAdapter(strings.TrimSpace(cfg.OutputDir)),
		LoaderPolicy: policies.NewLoaderPolicy(),
		Scheme:       scheme,
	}, nil
}

func newRegistry(cfg RegistryConfig) (ports.RegistryPort, error) {
	backend := types.RegistryBackend(strings.ToLower(strings.TrimSpace(cfg.Backend)))
	if backend == "" {
		backend = types.RegistryBackendHTTP
	}
	switch backend {
	case types.RegistryBackendHTTP:
		return adapters.NewRegistryHTTPAdapter(cfg.BaseURL, cfg.UserAgent, cfg.TimeoutSec), nil
	case types.RegistryBackendFile:
		path := strings.TrimSpace(cfg.SnapshotFile)
		if path == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("registry snapshot file is required for file backend")
		}
		return adapters.NewRegistrySnapshotFileAdapter(path), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported registry backend %q", cfg.Backend))
	}
}
