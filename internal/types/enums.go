package types

type InvalidRecordPolicy string

const (
	InvalidRecordPolicyFail InvalidRecordPolicy = "fail"
	InvalidRecordPolicySkip InvalidRecordPolicy = "skip"
)

type IssueKind string

const (
	IssueKindMalformedInput        IssueKind = "malformed-input"
	IssueKindInconsistentReference IssueKind = "inconsistent-reference"
)
