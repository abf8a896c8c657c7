package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"ioc-usage/internal/types"
)

// DefaultGitHubOrg hosts the site forks of EPICS base and the modules.
const DefaultGitHubOrg = "slac-epics"

// unknownField marks version metadata the loader could not determine.
const unknownField = "?"

// modulePathPatterns recognize the site layouts under which tagged module
// releases are installed. Matched in order; the first hit wins.
var modulePathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/cds/group/pcds/epics/(?P<base>[^/]+)/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/cds/group/pcds/package/epics/(?P<base>[^/]+)/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/cds/group/pcds/epics/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/cds/group/pcds/epics-dev/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/cds/group/pcds/package/epics/(?P<base>[^/]+)/module/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/afs/slac/g/lcls/epics/(?P<base>[^/]+)/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
	regexp.MustCompile(`^/afs/slac\.stanford\.edu/g/lcls/vol8/epics/(?P<base>[^/]+)/modules/(?P<name>[^/]+)/(?P<tag>[^/]+)/?`),
}

// NormalizeSitePath rewrites the legacy /reg/g/pcds mount prefix to its
// current /cds/group/pcds alias so that both spellings index identically.
func NormalizeSitePath(path string) string {
	if strings.HasPrefix(path, "/reg/g/pcds/") || path == "/reg/g/pcds" {
		return "/cds/group/pcds" + strings.TrimPrefix(path, "/reg/g/pcds")
	}
	return path
}

// VersionFromPath extracts (module, base, tag) from a site module install
// path. The second return value reports whether any layout matched.
func VersionFromPath(path string) (types.VersionInfo, bool) {
	cleaned := NormalizeSitePath(strings.TrimSpace(path))
	for _, pattern := range modulePathPatterns {
		match := pattern.FindStringSubmatch(cleaned)
		if match == nil {
			continue
		}
		info := types.VersionInfo{Name: unknownField, Base: unknownField, Tag: unknownField}
		for i, group := range pattern.SubexpNames() {
			switch group {
			case "name":
				info.Name = match[i]
			case "base":
				info.Base = match[i]
			case "tag":
				info.Tag = match[i]
			}
		}
		return info, true
	}
	return types.VersionInfo{}, false
}

// ModuleURL returns the link to a module's tagged release.
func ModuleURL(org string, name string, tag string) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", org, name, tag)
}

// BaseVersionURL returns the link for an EPICS base version tag. Site tags
// carry a suffix after the first dash; when that suffix has fewer than two
// dots it names a maintenance branch rather than a release, so the link
// points at the branch instead of a tag.
func BaseVersionURL(org string, base string) string {
	parts := strings.Split(base, "-")
	if len(parts) >= 2 && strings.Count(parts[1], ".") < 2 {
		branch := strings.TrimRight(base, "0.")
		return fmt.Sprintf("https://github.com/%s/epics-base/tree/%s.branch", org, branch)
	}
	return fmt.Sprintf("https://github.com/%s/epics-base/releases/tag/%s", org, base)
}

// SortBaseTags orders EPICS base version tags newest first by parsing the
// tag (without its leading R) as a Debian-style version. Tags that do not
// parse sort after all parseable ones, lexicographically.
func SortBaseTags(tags []string) {
	parsed := make(map[string]debversion.Version, len(tags))
	for _, tag := range tags {
		if v, err := debversion.NewVersion(strings.TrimPrefix(tag, "R")); err == nil {
			parsed[tag] = v
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		vi, oki := parsed[tags[i]]
		vj, okj := parsed[tags[j]]
		if oki && okj {
			if cmp := vi.Compare(vj); cmp != 0 {
				return cmp > 0
			}
			return tags[i] < tags[j]
		}
		if oki != okj {
			return oki
		}
		return tags[i] < tags[j]
	})
}
