package ports

import (
	"context"
	"io"

	"pap/internal/types"
)

// RegistryPort is the outbound surface of the package registry. Each call is
// a single blocking request; failures are terminal for the operation.
type RegistryPort interface {
	Project(ctx context.Context, id string) (types.ProjectDescriptor, error)
	Version(ctx context.Context, id string) (types.VersionDescriptor, error)
	// Stream returns the unbuffered artifact body. Callers close it.
	Stream(ctx context.Context, url string) (io.ReadCloser, error)
}

// VersionFetcher is the subset of RegistryPort the resolver needs.
type VersionFetcher interface {
	Version(ctx context.Context, id string) (types.VersionDescriptor, error)
}

// StreamOpener is the subset of RegistryPort the downloader needs.
type StreamOpener interface {
	Stream(ctx context.Context, url string) (io.ReadCloser, error)
}
