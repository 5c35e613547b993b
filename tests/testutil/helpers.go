// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"crypto/sha512"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// SHA512Hex returns the lowercase hex sha512 digest the registry would
// declare for data.
func SHA512Hex(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}

// RequireFileDigest asserts that the file at path exists and hashes to want.
func RequireFileDigest(t *testing.T, path string, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, SHA512Hex(data), "digest of %s", path)
}
