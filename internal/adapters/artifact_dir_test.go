package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactDirAdapterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mods")
	adapter := NewArtifactDirAdapter(dir)

	out, path, err := adapter.Create("mod.jar")
	require.NoError(t, err)
	_, err = out.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	assert.Equal(t, filepath.Join(dir, "mod.jar"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestArtifactDirAdapterRejectsPaths(t *testing.T) {
	adapter := NewArtifactDirAdapter(t.TempDir())
	for _, name := range []string{"", "..", "../escape.jar", "nested/mod.jar", `nested\mod.jar`} {
		_, _, err := adapter.Create(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestNewArtifactDirAdapterDefaultsToWorkingDirectory(t *testing.T) {
	assert.Equal(t, ".", NewArtifactDirAdapter("").Dir)
}
