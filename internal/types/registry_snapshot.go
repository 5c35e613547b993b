package types

// RegistrySnapshotFile is the on-disk form of an offline registry. Projects
// are keyed by id or slug, versions by version id.
type RegistrySnapshotFile struct {
	Projects map[string]ProjectDescriptor `yaml:"projects"`
	Versions map[string]VersionDescriptor `yaml:"versions"`
}
