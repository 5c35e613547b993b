package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"pap/internal/types"
)

// versionCache memoizes parsed game versions for one resolution so the
// newest-first scan parses each string at most once.
type versionCache struct {
	scheme types.VersionScheme
	deb    map[string]debversion.Version
	pep    map[string]pep440.Version
	failed map[string]struct{}
}

func newVersionCache(scheme types.VersionScheme) *versionCache {
	if scheme == "" {
		scheme = types.VersionSchemeDeb
	}
	return &versionCache{
		scheme: scheme,
		deb:    map[string]debversion.Version{},
		pep:    map[string]pep440.Version{},
		failed: map[string]struct{}{},
	}
}

// ValidateVersionScheme rejects unknown ordering schemes.
func ValidateVersionScheme(scheme types.VersionScheme) error {
	switch scheme {
	case "", types.VersionSchemeDeb, types.VersionSchemePep440:
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported version scheme %q", scheme))
	}
}

// debVersion returns a parsed Debian version, caching the result under the
// original string.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(debUpstream(value))
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// debUpstream maps a game version onto a Debian upstream version. Minecraft
// only uses '-' before pre-release and release candidate suffixes
// ("1.20-pre1", "1.20.1-rc1"); as a tilde they sort below the release
// instead of being read as a Debian revision.
func debUpstream(value string) string {
	return strings.ReplaceAll(value, "-", "~")
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// comparable reports whether value parses under the cache's scheme.
func (c *versionCache) comparable(value string) bool {
	if _, bad := c.failed[value]; bad {
		return false
	}
	var err error
	switch c.scheme {
	case types.VersionSchemePep440:
		_, err = c.pepVersion(value)
	default:
		_, err = c.debVersion(value)
	}
	if err != nil {
		c.failed[value] = struct{}{}
		return false
	}
	return true
}

// compare returns -1, 0, or 1 comparing a and b. ok is false when either
// side does not parse.
func (c *versionCache) compare(a string, b string) (int, bool) {
	if !c.comparable(a) || !c.comparable(b) {
		return 0, false
	}
	switch c.scheme {
	case types.VersionSchemePep440:
		return c.pep[a].Compare(c.pep[b]), true
	default:
		return c.deb[a].Compare(c.deb[b]), true
	}
}

// allOlderThan reports whether every value is strictly older than target.
// A value that does not parse is never considered older, and an empty set
// is not older either.
func (c *versionCache) allOlderThan(values []string, target string) bool {
	if len(values) == 0 {
		return false
	}
	for _, value := range values {
		cmp, ok := c.compare(value, target)
		if !ok || cmp >= 0 {
			return false
		}
	}
	return true
}
