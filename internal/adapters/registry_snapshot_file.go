package adapters

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pap/internal/ports"
	"pap/internal/types"
)

// RegistrySnapshotFileAdapter serves projects, versions and artifacts from a
// YAML snapshot on disk. Artifact URLs are file:// URLs or paths relative to
// the snapshot file.
type RegistrySnapshotFileAdapter struct {
	Path   string
	cached types.RegistrySnapshotFile
	loaded bool
}

func NewRegistrySnapshotFileAdapter(path string) *RegistrySnapshotFileAdapter {
	return &RegistrySnapshotFileAdapter{Path: path}
}

func (a *RegistrySnapshotFileAdapter) Project(ctx context.Context, id string) (types.ProjectDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.ProjectDescriptor{}, err
	}
	snapshot, err := a.load()
	if err != nil {
		return types.ProjectDescriptor{}, err
	}
	trimmed := strings.TrimSpace(id)
	if project, ok := snapshot.Projects[trimmed]; ok {
		if project.ID == "" {
			project.ID = trimmed
		}
		return project, nil
	}
	for key, project := range snapshot.Projects {
		if project.Slug != "" && project.Slug == trimmed {
			if project.ID == "" {
				project.ID = key
			}
			return project, nil
		}
	}
	return types.ProjectDescriptor{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("registry has no project %s", trimmed))
}

func (a *RegistrySnapshotFileAdapter) Version(ctx context.Context, id string) (types.VersionDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.VersionDescriptor{}, err
	}
	snapshot, err := a.load()
	if err != nil {
		return types.VersionDescriptor{}, err
	}
	trimmed := strings.TrimSpace(id)
	version, ok := snapshot.Versions[trimmed]
	if !ok {
		return types.VersionDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("registry has no version %s", trimmed))
	}
	if version.ID == "" {
		version.ID = trimmed
	}
	return version, nil
}

func (a *RegistrySnapshotFileAdapter) Stream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := a.artifactPath(rawURL)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifact not found in snapshot").
			WithCause(err)
	}
	return file, nil
}

func (a *RegistrySnapshotFileAdapter) artifactPath(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact url is empty")
	}
	if strings.HasPrefix(trimmed, "file://") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid artifact url").
				WithCause(err)
		}
		return parsed.Path, nil
	}
	if strings.Contains(trimmed, "://") {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("snapshot registry cannot stream %s", trimmed))
	}
	if filepath.IsAbs(trimmed) {
		return trimmed, nil
	}
	return filepath.Join(filepath.Dir(a.Path), trimmed), nil
}

func (a *RegistrySnapshotFileAdapter) load() (types.RegistrySnapshotFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.RegistrySnapshotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("registry snapshot file not found").
			WithCause(err)
	}
	var snapshot types.RegistrySnapshotFile
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return types.RegistrySnapshotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid registry snapshot format").
			WithCause(err)
	}
	if snapshot.Projects == nil {
		snapshot.Projects = map[string]types.ProjectDescriptor{}
	}
	if snapshot.Versions == nil {
		snapshot.Versions = map[string]types.VersionDescriptor{}
	}
	a.cached = snapshot
	a.loaded = true
	return snapshot, nil
}

var _ ports.RegistryPort = (*RegistrySnapshotFileAdapter)(nil)
