package core

import (
	"bytes"
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ioc-usage/internal/types"
)

func record(name string, release string, base string, deps map[string]types.DependencyRef) types.IOCRecord {
	return types.IOCRecord{
		Name:         name,
		ReleaseFile:  release,
		BaseVersion:  types.BaseVersionRef{Tag: base},
		Dependencies: deps,
	}
}

// sharedPinRecords builds the canonical three-IOC case: ioc1 and ioc2 share
// release file R1 pinning module A v1.2, ioc3 uses R2 pinning A v1.3 under a
// different variable name.
func sharedPinRecords() []types.IOCRecord {
	return []types.IOCRecord{
		record("ioc1", "/epics/apps/r1/RELEASE", "R3.15.5", map[string]types.DependencyRef{
			"A_VER": {Module: "A", VersionTag: "1.2", Base: "R3.15.5"},
		}),
		record("ioc2", "/epics/apps/r1/RELEASE", "R3.15.5", map[string]types.DependencyRef{
			"A_VER": {Module: "A", VersionTag: "1.2", Base: "R3.15.5"},
		}),
		record("ioc3", "/epics/apps/r2/RELEASE", "R3.15.5", map[string]types.DependencyRef{
			"MODA": {Module: "A", VersionTag: "1.3", Base: "R3.15.5"},
		}),
	}
}

func TestAggregateSharedReleaseFile(t *testing.T) {
	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), sharedPinRecords())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.NumIOCs)
	assert.Equal(t, 2, stats.NumReleaseFiles)
	assert.Equal(t, 1, stats.NumModules)
	assert.Equal(t, 2, stats.NumVersions)
	assert.Equal(t, 1, stats.NumBaseVersions)

	require.Len(t, stats.Deps, 1)
	dep := stats.Deps[0]
	assert.Equal(t, "A", dep.Name)
	if diff := cmp.Diff([]string{"A_VER", "MODA"}, dep.Variables); diff != "" {
		t.Fatalf("unexpected variables (-want +got):\n%s", diff)
	}
	assert.Len(t, dep.ByReleaseFile, 2)
	if diff := cmp.Diff([]string{"ioc1", "ioc2", "ioc3"}, dep.ByIOCName); diff != "" {
		t.Fatalf("unexpected ioc names (-want +got):\n%s", diff)
	}

	// Both versions are pinned by one release file each; the tie breaks by
	// tag, so v1.2 (shared by two IOCs) renders first.
	require.Len(t, dep.ByVersion, 2)
	assert.Equal(t, "1.2", dep.ByVersion[0].Version.Tag)
	assert.Equal(t, "1.3", dep.ByVersion[1].Version.Tag)
	assert.Len(t, dep.ByVersion[0].ReleaseFiles, 1)
	assert.Len(t, dep.ByVersion[1].ReleaseFiles, 1)

	// The shared release file counts once per base-version set.
	assert.Len(t, stats.AppsByBaseVersion["R3.15.5"], 2)
	assert.Len(t, stats.IOCsByBaseVersion["R3.15.5"], 3)
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.NumIOCs)
	assert.Equal(t, 0, stats.NumReleaseFiles)
	assert.Equal(t, 0, stats.NumModules)
	assert.Equal(t, 0, stats.NumVersions)
	assert.Equal(t, 0, stats.NumBaseVersions)
	assert.Empty(t, stats.Deps)
	assert.Empty(t, stats.AppsByBaseVersion)
	assert.Empty(t, stats.IOCsByBaseVersion)
	assert.Empty(t, stats.Issues)
}

func TestAggregateDeterministicOrdering(t *testing.T) {
	records := sharedPinRecords()
	permuted := []types.IOCRecord{records[2], records[0], records[1]}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	first, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), permuted)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("aggregation is input-order dependent (-first +second):\n%s", diff)
	}
}

func TestByReleaseFileIsUnionOfVersionSets(t *testing.T) {
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39", Base: "R7.0.2-2.0"},
		}),
		record("ioc2", "/apps/b/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.32", Base: "R7.0.2-2.0"},
		}),
		record("ioc3", "/apps/b/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.32", Base: "R7.0.2-2.0"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, stats.Deps, 1)
	dep := stats.Deps[0]
	union := map[string]struct{}{}
	for _, usage := range dep.ByVersion {
		for _, release := range usage.ReleaseFiles {
			union[release] = struct{}{}
		}
	}
	assert.Len(t, dep.ByReleaseFile, len(union))
	for _, release := range dep.ByReleaseFile {
		assert.Contains(t, union, release)
	}
}

func TestAggregateModuleOrdering(t *testing.T) {
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN":  {Module: "asyn", VersionTag: "R4.39"},
			"CALC":  {Module: "calc", VersionTag: "R3.7"},
			"MOTOR": {Module: "motor", VersionTag: "R7.1"},
		}),
		record("ioc2", "/apps/b/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)

	names := make([]string, 0, len(stats.Deps))
	for _, dep := range stats.Deps {
		names = append(names, dep.Name)
	}
	// asyn leads on release-file count; calc and motor tie and order by name.
	if diff := cmp.Diff([]string{"asyn", "calc", "motor"}, names); diff != "" {
		t.Fatalf("unexpected module order (-want +got):\n%s", diff)
	}
}

func TestAggregateFailPolicy(t *testing.T) {
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	_, err := agg.Aggregate(context.Background(), records)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestAggregateSkipPolicy(t *testing.T) {
	records := []types.IOCRecord{
		record("ioc-bad", "/apps/bad/RELEASE", "", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
		record("ioc-good", "/apps/good/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
	}

	var logged bytes.Buffer
	logger := zerolog.New(&logged)
	ctx := logger.WithContext(context.Background())

	agg := NewAggregator(types.InvalidRecordPolicySkip)
	stats, err := agg.Aggregate(ctx, records)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.NumIOCs)
	require.Len(t, stats.Issues, 1)
	assert.Equal(t, types.IssueKindMalformedInput, stats.Issues[0].Kind)
	assert.Equal(t, "ioc-bad", stats.Issues[0].IOCName)
	assert.Equal(t, "/apps/bad/RELEASE", stats.Issues[0].ReleaseFile)
	assert.Contains(t, logged.String(), "skipping record with data quality issues")
}

func TestAggregatePathDependency(t *testing.T) {
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "R3.15.5-1.0", map[string]types.DependencyRef{
			"ASYN": {Path: "/reg/g/pcds/epics/R3.15.5-1.0/modules/asyn/R4.32-1.0.0"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, stats.Deps, 1)
	dep := stats.Deps[0]
	assert.Equal(t, "asyn", dep.Name)
	require.Len(t, dep.ByVersion, 1)
	version := dep.ByVersion[0].Version
	assert.Equal(t, "R4.32-1.0.0", version.Tag)
	assert.Equal(t, "R3.15.5-1.0", version.Base)
	assert.Equal(t, "https://github.com/slac-epics/asyn/releases/tag/R4.32-1.0.0", version.URL)
}

func TestAggregateVersionMetadataMerge(t *testing.T) {
	// Two sightings of the same (module, tag): one from a bare path layout
	// without base information, one with the base declared. They must stay a
	// single version entity with the known base filled in.
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "R3.15.5-1.0", map[string]types.DependencyRef{
			"ASYN": {Path: "/cds/group/pcds/epics/modules/asyn/R4.32-1.0.0"},
		}),
		record("ioc2", "/apps/b/RELEASE", "R3.15.5-1.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.32-1.0.0", Base: "R3.15.5-1.0"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, stats.Deps, 1)
	dep := stats.Deps[0]
	require.Len(t, dep.ByVersion, 1)
	assert.Equal(t, "R3.15.5-1.0", dep.ByVersion[0].Version.Base)
	assert.Len(t, dep.ByVersion[0].ReleaseFiles, 2)
	assert.Equal(t, 1, stats.NumVersions)
}

func TestAggregateSharedVariableName(t *testing.T) {
	// The same variable name referencing two different modules is logged,
	// not rejected; each module keeps the alias in its own set.
	records := []types.IOCRecord{
		record("ioc1", "/apps/a/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"DEP_VER": {Module: "asyn", VersionTag: "R4.39"},
		}),
		record("ioc2", "/apps/b/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"DEP_VER": {Module: "calc", VersionTag: "R3.7"},
		}),
	}

	var logged bytes.Buffer
	logger := zerolog.New(&logged)
	ctx := logger.WithContext(context.Background())

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(ctx, records)
	require.NoError(t, err)

	require.Len(t, stats.Deps, 2)
	for _, dep := range stats.Deps {
		assert.Equal(t, []string{"DEP_VER"}, dep.Variables)
	}

	assert.Contains(t, logged.String(), "variable name aliases more than one module")
	assert.Contains(t, logged.String(), "DEP_VER")
}

func TestAggregateNormalizesReleaseFilePaths(t *testing.T) {
	// The same RELEASE file spelled through the legacy and current mount
	// prefixes must index as one file.
	records := []types.IOCRecord{
		record("ioc1", "/reg/g/pcds/epics/ioc/common/gmd/R1.4.0/configure/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
		record("ioc2", "/cds/group/pcds/epics/ioc/common/gmd/R1.4.0/configure/RELEASE", "R7.0.2-2.0", map[string]types.DependencyRef{
			"ASYN": {Module: "asyn", VersionTag: "R4.39"},
		}),
	}

	agg := NewAggregator(types.InvalidRecordPolicyFail)
	stats, err := agg.Aggregate(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.NumReleaseFiles)
	assert.Len(t, stats.AppsByBaseVersion["R7.0.2-2.0"], 1)
}
