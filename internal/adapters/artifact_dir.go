package adapters

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pap/internal/ports"
	"pap/internal/shared"
)

// ArtifactDirAdapter writes downloaded artifacts into a single directory.
type ArtifactDirAdapter struct {
	Dir string
}

func NewArtifactDirAdapter(dir string) ArtifactDirAdapter {
	if dir == "" {
		dir = "."
	}
	return ArtifactDirAdapter{Dir: dir}
}

func (a ArtifactDirAdapter) Create(name string) (io.WriteCloser, string, error) {
	if !shared.IsPlainFileName(name) {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact file name must not contain a path: " + name)
	}
	dir := a.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create artifact file").
			WithCause(err)
	}
	return file, path, nil
}

var _ ports.ArtifactStorePort = ArtifactDirAdapter{}
