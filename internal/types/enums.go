package types

type ServerSide string

const (
	ServerSideRequired    ServerSide = "required"
	ServerSideOptional    ServerSide = "optional"
	ServerSideUnsupported ServerSide = "unsupported"
	ServerSideUnknown     ServerSide = "unknown"
)

// Supported reports whether the project can run on a dedicated server.
// Unknown is treated as supported; only an explicit "unsupported" rejects.
func (s ServerSide) Supported() bool {
	return s != ServerSideUnsupported
}

type VersionScheme string

const (
	VersionSchemeDeb    VersionScheme = "deb"
	VersionSchemePep440 VersionScheme = "pep440"
)

type RegistryBackend string

const (
	RegistryBackendHTTP RegistryBackend = "http"
	RegistryBackendFile RegistryBackend = "file"
)

// Latest is the selector sentinel accepted for both the game version and
// the project version.
const Latest = "latest"

func IsLatest(selector string) bool {
	return selector == Latest
}

// ArtifactSuffix identifies the installable file within a version.
const ArtifactSuffix = ".jar"
