package types

import "strings"

type ProjectDescriptor struct {
	ID           string     `json:"id" yaml:"id"`
	Slug         string     `json:"slug" yaml:"slug,omitempty"`
	Title        string     `json:"title" yaml:"title,omitempty"`
	ServerSide   ServerSide `json:"server_side" yaml:"server_side"`
	Loaders      []string   `json:"loaders" yaml:"loaders"`
	GameVersions []string   `json:"game_versions" yaml:"game_versions"`
	Versions     []string   `json:"versions" yaml:"versions"`
}

func (p ProjectDescriptor) SupportsGameVersion(gameVersion string) bool {
	return containsString(p.GameVersions, gameVersion)
}

func (p ProjectDescriptor) HasVersion(id string) bool {
	return containsString(p.Versions, id)
}

// OffersLoader matches case-insensitively and returns the registry spelling.
func (p ProjectDescriptor) OffersLoader(loader string) (string, bool) {
	return matchLoader(p.Loaders, loader)
}

// DisplayName prefers the slug, then the id.
func (p ProjectDescriptor) DisplayName() string {
	if strings.TrimSpace(p.Slug) != "" {
		return p.Slug
	}
	return p.ID
}

type VersionDescriptor struct {
	ID            string           `json:"id" yaml:"id"`
	ProjectID     string           `json:"project_id" yaml:"project_id,omitempty"`
	VersionNumber string           `json:"version_number" yaml:"version_number"`
	GameVersions  []string         `json:"game_versions" yaml:"game_versions"`
	Loaders       []string         `json:"loaders" yaml:"loaders"`
	Files         []FileDescriptor `json:"files" yaml:"files"`
}

func (v VersionDescriptor) SupportsGameVersion(gameVersion string) bool {
	return containsString(v.GameVersions, gameVersion)
}

func (v VersionDescriptor) SupportsLoader(loader string) bool {
	_, ok := matchLoader(v.Loaders, loader)
	return ok
}

// Label is the human readable version number, falling back to the id.
func (v VersionDescriptor) Label() string {
	if strings.TrimSpace(v.VersionNumber) != "" {
		return v.VersionNumber
	}
	return v.ID
}

type FileDescriptor struct {
	Filename string            `json:"filename" yaml:"filename"`
	URL      string            `json:"url" yaml:"url"`
	Primary  bool              `json:"primary" yaml:"primary,omitempty"`
	Size     int64             `json:"size" yaml:"size,omitempty"`
	Hashes   map[string]string `json:"hashes" yaml:"hashes"`
}

type Digest struct {
	Algorithm string
	Value     string
}

func (d Digest) IsZero() bool {
	return d.Algorithm == "" || d.Value == ""
}

// DigestPreference lists the hash algorithms used for verification, strongest first.
var DigestPreference = []string{"sha512", "sha256", "sha1"}

// Digest returns the strongest declared digest, or a zero Digest when the
// registry declared none we can verify.
func (f FileDescriptor) Digest() Digest {
	for _, algorithm := range DigestPreference {
		value := strings.TrimSpace(f.Hashes[algorithm])
		if value != "" {
			return Digest{Algorithm: algorithm, Value: value}
		}
	}
	return Digest{}
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func matchLoader(loaders []string, loader string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(loader))
	if needle == "" {
		return "", false
	}
	for _, candidate := range loaders {
		if strings.ToLower(candidate) == needle {
			return candidate, true
		}
	}
	return "", false
}
