package core

import (
	"context"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ioc-usage/internal/shared"
	"ioc-usage/internal/types"
)

// Aggregator folds loader records into cross-indexed usage statistics. Each
// Aggregate call owns its own index tables; an Aggregator carries no state
// between runs and is safe to reuse.
type Aggregator struct {
	Policy    types.InvalidRecordPolicy
	GitHubOrg string
}

func NewAggregator(policy types.InvalidRecordPolicy) Aggregator {
	return Aggregator{Policy: policy, GitHubOrg: DefaultGitHubOrg}
}

// depAccum accumulates one module during a run. Release files are tracked
// per version only; the module-level set is derived at snapshot time.
type depAccum struct {
	name      string
	variables map[string]struct{}
	byIOCName map[string]struct{}
	byVersion map[string]*versionAccum
}

type versionAccum struct {
	info         types.VersionInfo
	releaseFiles map[string]struct{}
}

// Aggregate consumes the loader records and returns the rendering-ready
// statistics snapshot. Under the fail policy the first malformed record
// aborts the run; under the skip policy offending records are dropped and
// reported in Statistics.Issues. Zero records is not an error.
func (a Aggregator) Aggregate(ctx context.Context, records []types.IOCRecord) (types.Statistics, error) {
	deps := map[string]*depAccum{}
	appsByBase := map[string]map[string]struct{}{}
	iocsByBase := map[string]map[string]struct{}{}
	iocNames := map[string]struct{}{}
	releaseFiles := map[string]struct{}{}
	baseURLs := map[string]string{}
	varToModule := map[string]string{}
	var issues []types.DataIssue

	for _, rec := range records {
		recIssues := ValidateRecord(rec)
		if len(recIssues) > 0 {
			if a.Policy != types.InvalidRecordPolicySkip {
				return types.Statistics{}, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(recIssues[0].String())
			}
			issues = append(issues, recIssues...)
			log.Ctx(ctx).Warn().
				Str("ioc", rec.Name).
				Str("release_file", rec.ReleaseFile).
				Int("issues", len(recIssues)).
				Msg("skipping record with data quality issues")
			continue
		}

		release := NormalizeSitePath(rec.ReleaseFile)
		base := rec.BaseVersion.Tag
		addToSet(appsByBase, base, release)
		addToSet(iocsByBase, base, rec.Name)
		iocNames[rec.Name] = struct{}{}
		releaseFiles[release] = struct{}{}
		if rec.BaseVersion.URL != "" && baseURLs[base] == "" {
			baseURLs[base] = rec.BaseVersion.URL
		}

		for _, variable := range shared.SortedKeys(rec.Dependencies) {
			info := a.versionInfo(rec.Dependencies[variable])
			if owner, seen := varToModule[variable]; seen && owner != info.Name {
				// Alias sets are per-module and non-exclusive; a shared
				// variable name is only worth a warning.
				log.Ctx(ctx).Warn().
					Str("variable", variable).
					Str("module", info.Name).
					Str("previous_module", owner).
					Msg("variable name aliases more than one module")
			} else {
				varToModule[variable] = info.Name
			}

			dep := deps[info.Name]
			if dep == nil {
				dep = &depAccum{
					name:      info.Name,
					variables: map[string]struct{}{},
					byIOCName: map[string]struct{}{},
					byVersion: map[string]*versionAccum{},
				}
				deps[info.Name] = dep
			}
			dep.variables[variable] = struct{}{}
			dep.byIOCName[rec.Name] = struct{}{}

			ver := dep.byVersion[info.Tag]
			if ver == nil {
				ver = &versionAccum{info: info, releaseFiles: map[string]struct{}{}}
				dep.byVersion[info.Tag] = ver
			} else {
				ver.info = mergeVersionInfo(ver.info, info)
			}
			ver.releaseFiles[release] = struct{}{}
		}
	}

	return a.snapshot(ctx, deps, appsByBase, iocsByBase, iocNames, releaseFiles, baseURLs, issues), nil
}

// versionInfo resolves one dependency reference to version metadata,
// deriving the release URLs when the loader did not supply them. Records
// reaching this point passed validation, so a missing module implies a
// resolvable install path.
func (a Aggregator) versionInfo(ref types.DependencyRef) types.VersionInfo {
	info := types.VersionInfo{
		Name: ref.Module,
		Base: ref.Base,
		Tag:  ref.VersionTag,
		URL:  ref.VersionURL,
	}
	if info.Name == "" {
		if parsed, ok := VersionFromPath(ref.Path); ok {
			info.Name = parsed.Name
			info.Tag = parsed.Tag
			if info.Base == "" {
				info.Base = parsed.Base
			}
		}
	}
	if info.Base == "" {
		info.Base = unknownField
	}
	if info.URL == "" {
		info.URL = ModuleURL(a.org(), info.Name, info.Tag)
	}
	if info.Base != unknownField {
		info.BaseURL = BaseVersionURL(a.org(), info.Base)
	}
	return info
}

func (a Aggregator) org() string {
	if a.GitHubOrg == "" {
		return DefaultGitHubOrg
	}
	return a.GitHubOrg
}

// mergeVersionInfo fills unknown fields of an existing version entity from a
// later sighting of the same (module, tag) pair. Known fields are never
// overwritten, so two RELEASE files pinning the same version stay one entity.
func mergeVersionInfo(existing types.VersionInfo, incoming types.VersionInfo) types.VersionInfo {
	if existing.Base == unknownField && incoming.Base != unknownField {
		existing.Base = incoming.Base
		existing.BaseURL = incoming.BaseURL
	}
	if existing.URL == "" {
		existing.URL = incoming.URL
	}
	return existing
}

func (a Aggregator) snapshot(
	ctx context.Context,
	deps map[string]*depAccum,
	appsByBase map[string]map[string]struct{},
	iocsByBase map[string]map[string]struct{},
	iocNames map[string]struct{},
	releaseFiles map[string]struct{},
	baseURLs map[string]string,
	issues []types.DataIssue,
) types.Statistics {
	stats := types.Statistics{
		NumIOCs:           len(iocNames),
		NumReleaseFiles:   len(releaseFiles),
		NumModules:        len(deps),
		AppsByBaseVersion: map[string][]string{},
		IOCsByBaseVersion: map[string][]string{},
		BaseVersionURLs:   map[string]string{},
		Issues:            issues,
	}

	for base, apps := range appsByBase {
		stats.AppsByBaseVersion[base] = shared.SortedStrings(apps)
	}
	for base, iocs := range iocsByBase {
		stats.IOCsByBaseVersion[base] = shared.SortedStrings(iocs)
	}
	stats.BaseVersions = shared.SortedKeys(stats.AppsByBaseVersion)
	SortBaseTags(stats.BaseVersions)
	stats.NumBaseVersions = len(stats.BaseVersions)
	for _, base := range stats.BaseVersions {
		if url := baseURLs[base]; url != "" {
			stats.BaseVersionURLs[base] = url
			continue
		}
		stats.BaseVersionURLs[base] = BaseVersionURL(a.org(), base)
	}

	for _, name := range shared.SortedKeys(deps) {
		acc := deps[name]
		assert.NotEmpty(ctx, acc.name, "dependency name must be set")
		dep := types.Dependency{
			Name:      acc.name,
			Variables: shared.SortedStrings(acc.variables),
			ByIOCName: shared.SortedStrings(acc.byIOCName),
		}

		// The module-level release-file set is strictly the union of its
		// versions' sets, never tracked on its own.
		union := map[string]struct{}{}
		for _, tag := range shared.SortedKeys(acc.byVersion) {
			ver := acc.byVersion[tag]
			dep.ByVersion = append(dep.ByVersion, types.VersionUsage{
				Version:      ver.info,
				ReleaseFiles: shared.SortedStrings(ver.releaseFiles),
			})
			for release := range ver.releaseFiles {
				union[release] = struct{}{}
			}
		}
		dep.ByReleaseFile = shared.SortedStrings(union)

		sort.SliceStable(dep.ByVersion, func(i, j int) bool {
			ci, cj := len(dep.ByVersion[i].ReleaseFiles), len(dep.ByVersion[j].ReleaseFiles)
			if ci != cj {
				return ci > cj
			}
			return dep.ByVersion[i].Version.Tag < dep.ByVersion[j].Version.Tag
		})

		stats.NumVersions += len(dep.ByVersion)
		stats.Deps = append(stats.Deps, dep)
	}

	sort.SliceStable(stats.Deps, func(i, j int) bool {
		ci, cj := len(stats.Deps[i].ByReleaseFile), len(stats.Deps[j].ByReleaseFile)
		if ci != cj {
			return ci > cj
		}
		return stats.Deps[i].Name < stats.Deps[j].Name
	})

	log.Ctx(ctx).Debug().
		Int("iocs", stats.NumIOCs).
		Int("release_files", stats.NumReleaseFiles).
		Int("modules", stats.NumModules).
		Int("versions", stats.NumVersions).
		Int("base_versions", stats.NumBaseVersions).
		Msg("statistics aggregated")
	return stats
}

func addToSet(sets map[string]map[string]struct{}, key string, member string) {
	set := sets[key]
	if set == nil {
		set = map[string]struct{}{}
		sets[key] = set
	}
	set[member] = struct{}{}
}
