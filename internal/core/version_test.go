package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pap/internal/types"
)

// ---------------------------------------------------------------------------
// versionCache
// ---------------------------------------------------------------------------

func TestVersionCacheDefaultsToDeb(t *testing.T) {
	cache := newVersionCache("")
	assert.Equal(t, types.VersionSchemeDeb, cache.scheme)
}

func TestVersionCacheDebVersion(t *testing.T) {
	cache := newVersionCache(types.VersionSchemeDeb)

	v1, err := cache.debVersion("1.20.1")
	require.NoError(t, err)

	// Second call should hit cache
	v2, err := cache.debVersion("1.20.1")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestVersionCachePepVersionInvalid(t *testing.T) {
	cache := newVersionCache(types.VersionSchemePep440)
	_, err := cache.pepVersion("not-a-pep440!!!")
	require.Error(t, err)
}

func TestVersionCacheCompareDeb(t *testing.T) {
	cache := newVersionCache(types.VersionSchemeDeb)

	tests := []struct {
		a, b string
		want int
	}{
		{"1.19", "1.20", -1},
		{"1.20", "1.20", 0},
		{"1.20.1", "1.20", 1},
		{"1.9", "1.10", -1},
		{"1.20.1", "1.20.1-rc1", 1},
		{"1.20.1-rc1", "1.20", 1},
		{"1.20-pre1", "1.20", -1},
		{"1.20-pre1", "1.19.4", 1},
		{"1.20-pre2", "1.20-rc1", -1},
		{"1.20-rc1", "1.20-rc1", 0},
	}
	for _, tt := range tests {
		got, ok := cache.compare(tt.a, tt.b)
		require.True(t, ok, "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}
}

func TestVersionCacheComparePep440(t *testing.T) {
	cache := newVersionCache(types.VersionSchemePep440)

	got, ok := cache.compare("1.19.4", "1.20")
	require.True(t, ok)
	assert.Equal(t, -1, got)

	got, ok = cache.compare("1.20.1", "1.20")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	got, ok = cache.compare("1.20.1rc1", "1.20.1")
	require.True(t, ok)
	assert.Equal(t, -1, got)
}

func TestDebUpstream(t *testing.T) {
	assert.Equal(t, "1.20.1~rc1", debUpstream("1.20.1-rc1"))
	assert.Equal(t, "1.20.1", debUpstream("1.20.1"))
}

func TestVersionCacheCompareNotComparable(t *testing.T) {
	cache := newVersionCache(types.VersionSchemeDeb)
	_, ok := cache.compare("b1.7.3", "1.0")
	assert.False(t, ok)
	// Cached failure stays a failure
	assert.False(t, cache.comparable("b1.7.3"))
}

// ---------------------------------------------------------------------------
// allOlderThan
// ---------------------------------------------------------------------------

func TestAllOlderThan(t *testing.T) {
	cache := newVersionCache(types.VersionSchemeDeb)

	tests := []struct {
		name   string
		values []string
		target string
		want   bool
	}{
		{name: "all older", values: []string{"1.18", "1.19.4"}, target: "1.20", want: true},
		{name: "one equal", values: []string{"1.19", "1.20"}, target: "1.20", want: false},
		{name: "one newer", values: []string{"1.19", "1.21"}, target: "1.20", want: false},
		{name: "unparsable counts as not older", values: []string{"1.18", "b1.7.3"}, target: "1.20", want: false},
		{name: "empty set", values: nil, target: "1.20", want: false},
		{name: "release is not older than its candidate", values: []string{"1.20.1"}, target: "1.20.1-rc1", want: false},
		{name: "candidate is older than release", values: []string{"1.20.1-rc1"}, target: "1.20.1", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cache.allOlderThan(tt.values, tt.target))
		})
	}
}

func TestValidateVersionScheme(t *testing.T) {
	require.NoError(t, ValidateVersionScheme(""))
	require.NoError(t, ValidateVersionScheme(types.VersionSchemeDeb))
	require.NoError(t, ValidateVersionScheme(types.VersionSchemePep440))
	err := ValidateVersionScheme("semver")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version scheme")
}
