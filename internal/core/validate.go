package core

import (
	"fmt"
	"strings"

	"ioc-usage/internal/shared"
	"ioc-usage/internal/types"
)

// ValidateRecord checks one loader record against the input shape contract.
// It never repairs anything; every violation is reported with the IOC and
// RELEASE-file context needed to track it down.
func ValidateRecord(rec types.IOCRecord) []types.DataIssue {
	var issues []types.DataIssue
	malformed := func(detail string) {
		issues = append(issues, types.DataIssue{
			Kind:        types.IssueKindMalformedInput,
			IOCName:     rec.Name,
			ReleaseFile: rec.ReleaseFile,
			Detail:      detail,
		})
	}

	if strings.TrimSpace(rec.Name) == "" {
		malformed("ioc name is empty")
	}
	if strings.TrimSpace(rec.ReleaseFile) == "" {
		malformed("release file path is missing")
	}
	if strings.TrimSpace(rec.BaseVersion.Tag) == "" {
		malformed("base version tag is missing")
	}

	for _, variable := range shared.SortedKeys(rec.Dependencies) {
		ref := rec.Dependencies[variable]
		switch {
		case ref.Module == "" && ref.Path == "":
			malformed(fmt.Sprintf("dependency %q names no module", variable))
		case ref.Module == "":
			if _, ok := VersionFromPath(ref.Path); !ok {
				issues = append(issues, types.DataIssue{
					Kind:        types.IssueKindInconsistentReference,
					IOCName:     rec.Name,
					ReleaseFile: rec.ReleaseFile,
					Detail:      fmt.Sprintf("dependency %q: unrecognized module path %q", variable, ref.Path),
				})
			}
		case ref.VersionTag == "":
			malformed(fmt.Sprintf("dependency %q (%s) has no version tag", variable, ref.Module))
		}
	}
	return issues
}
