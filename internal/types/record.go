package types

// IOCRecord is one entry of the dependency loader's output: a deployed IOC,
// the RELEASE file its application is built from, the EPICS base version that
// RELEASE file references, and the module dependencies it declares keyed by
// the build variable name that references them.
type IOCRecord struct {
	Name         string                   `json:"name" yaml:"name"`
	ReleaseFile  string                   `json:"release_file" yaml:"release_file"`
	BaseVersion  BaseVersionRef           `json:"base_version" yaml:"base_version"`
	Dependencies map[string]DependencyRef `json:"dependencies" yaml:"dependencies"`
}

type BaseVersionRef struct {
	Tag string `json:"tag" yaml:"tag"`
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// DependencyRef names one module dependency declared by a RELEASE file.
// Loaders that already parsed the module install path fill Module and
// VersionTag directly; loaders that only know the raw path set Path and leave
// the rest empty, in which case the path is resolved at aggregation time.
type DependencyRef struct {
	Module     string `json:"module,omitempty" yaml:"module,omitempty"`
	VersionTag string `json:"version_tag,omitempty" yaml:"version_tag,omitempty"`
	VersionURL string `json:"version_url,omitempty" yaml:"version_url,omitempty"`
	Base       string `json:"base,omitempty" yaml:"base,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
}
