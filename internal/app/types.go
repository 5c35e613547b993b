package app

import "pap/internal/types"

type RegistryConfig struct {
	Backend      string
	BaseURL      string
	UserAgent    string
	TimeoutSec   int
	SnapshotFile string
}

type Config struct {
	Registry      RegistryConfig
	OutputDir     string
	VersionScheme string
}

type ResolveRequest struct {
	ProjectID   string
	GameVersion string
	Version     string
	Loader      string
}

type ResolveResult struct {
	Project  types.ProjectDescriptor
	Version  types.VersionDescriptor
	Loader   string
	Artifact types.FileDescriptor
}

type AddRequest struct {
	ResolveRequest
}

type AddResult struct {
	ResolveResult
	Path   string
	Bytes  int64
	Digest types.Digest
}
