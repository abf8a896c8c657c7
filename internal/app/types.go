package app

import "ioc-usage/internal/types"

type ReportRequest struct {
	InputPath    string
	OutputPath   string
	TemplatePath string
	StatsPath    string
	GitHubOrg    string
	SkipInvalid  bool
}

type ReportResult struct {
	OutputPath  string
	NumIOCs     int
	NumModules  int
	NumVersions int
	Issues      []types.DataIssue
}

type SummaryRequest struct {
	InputPath   string
	GitHubOrg   string
	SkipInvalid bool
}

type SummaryResult struct {
	Text   string
	Issues []types.DataIssue
}

type ValidateRequest struct {
	InputPath string
}

type ValidateResult struct {
	NumRecords int
	Issues     []types.DataIssue
}
