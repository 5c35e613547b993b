package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pap/internal/types"
)

// SelectArtifact returns the first file in registry order whose name ends
// with the artifact suffix. Later matches are ignored.
func SelectArtifact(version types.VersionDescriptor) (types.FileDescriptor, error) {
	for _, file := range version.Files {
		if strings.HasSuffix(file.Filename, types.ArtifactSuffix) {
			return file, nil
		}
	}
	return types.FileDescriptor{}, types.NewKindError(types.ErrKindNoInstallableArtifact, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("project version %s has no %s file", version.Label(), types.ArtifactSuffix)))
}
