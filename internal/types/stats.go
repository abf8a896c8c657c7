package types

import "fmt"

// VersionInfo identifies one tagged release of a module. Identity is
// (Name, Tag); Base and the URLs are display metadata.
type VersionInfo struct {
	Name    string `json:"name"`
	Base    string `json:"base"`
	Tag     string `json:"tag"`
	URL     string `json:"url,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// VersionUsage pairs a version with the RELEASE files that pin it.
type VersionUsage struct {
	Version      VersionInfo `json:"version"`
	ReleaseFiles []string    `json:"release_files"`
}

// Dependency is one module with its usage cross-indexes. ByReleaseFile is
// always the union of the per-version release-file sets in ByVersion.
// ByVersion is ordered by pinning RELEASE-file count descending, version tag
// ascending on ties.
type Dependency struct {
	Name          string         `json:"name"`
	Variables     []string       `json:"variables"`
	ByReleaseFile []string       `json:"by_release_file"`
	ByIOCName     []string       `json:"by_ioc_name"`
	ByVersion     []VersionUsage `json:"by_version"`
}

// DataIssue records a data-quality problem found in the loader output, with
// enough context to locate the offending record.
type DataIssue struct {
	Kind        IssueKind `json:"kind"`
	IOCName     string    `json:"ioc_name,omitempty"`
	ReleaseFile string    `json:"release_file,omitempty"`
	Detail      string    `json:"detail"`
}

func (i DataIssue) String() string {
	return fmt.Sprintf("%s: ioc=%s release_file=%s: %s", i.Kind, i.IOCName, i.ReleaseFile, i.Detail)
}

// Statistics is the rendering-ready aggregation result. Its field names are
// a contract with the report template and downstream tooling; collections are
// sorted so both rendering and JSON encoding are deterministic. Deps is
// ordered by RELEASE-file count descending, module name ascending on ties.
type Statistics struct {
	NumIOCs           int                 `json:"num_iocs"`
	NumReleaseFiles   int                 `json:"num_release_files"`
	NumModules        int                 `json:"num_modules"`
	NumVersions       int                 `json:"num_versions"`
	NumBaseVersions   int                 `json:"num_base_versions"`
	Deps              []Dependency        `json:"deps"`
	AppsByBaseVersion map[string][]string `json:"apps_by_base_version"`
	IOCsByBaseVersion map[string][]string `json:"iocs_by_base_version"`

	// BaseVersions lists the base-version tags in render order, newest
	// first, so templates do not have to order the maps themselves.
	BaseVersions []string `json:"base_versions"`

	// BaseVersionURLs links each base-version tag to its release or branch
	// page, taken from the loader when provided and derived otherwise.
	BaseVersionURLs map[string]string `json:"base_version_urls"`

	Issues []DataIssue `json:"issues,omitempty"`
}
