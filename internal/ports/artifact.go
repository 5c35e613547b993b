package ports

import "io"

type ArtifactStorePort interface {
	// Create opens name for writing, truncating any existing file, and
	// returns the path it will be written to.
	Create(name string) (io.WriteCloser, string, error)
}
