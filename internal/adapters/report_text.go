package adapters

import (
	"fmt"
	"strings"

	"ioc-usage/internal/types"
)

// TextSummaryAdapter writes the console summary in the site's established
// format, one line per module with an indented per-version breakdown when a
// module has more than one version in use.
type TextSummaryAdapter struct{}

func NewTextSummaryAdapter() TextSummaryAdapter {
	return TextSummaryAdapter{}
}

func (a TextSummaryAdapter) Summarize(stats types.Statistics) string {
	var b strings.Builder
	for _, dep := range stats.Deps {
		fmt.Fprintf(&b,
			"%s is used by %d release files (applications) and %d IOCs with a total of %d versions in use\n",
			dep.Name, len(dep.ByReleaseFile), len(dep.ByIOCName), len(dep.ByVersion),
		)
		if len(dep.ByVersion) > 1 {
			for _, usage := range dep.ByVersion {
				fmt.Fprintf(&b, "    %dx %s %s %s\n",
					len(usage.ReleaseFiles), usage.Version.Name, usage.Version.Base, usage.Version.Tag)
			}
		}
	}
	fmt.Fprintf(&b, "\n%d dependencies with a total of %d distinct versions\n",
		stats.NumModules, stats.NumVersions)
	return b.String()
}
